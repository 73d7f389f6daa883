package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const salesOrderDoc = `<QBXML><QBXMLMsgsRs><SalesOrderQueryRs statusCode="0" statusSeverity="Info">
	<SalesOrderRet>
		<RefNumber>SO-500</RefNumber>
		<TxnDate>2023-07-10</TxnDate>
		<DueDate>2023-08-10</DueDate>
		<CustomerRef><FullName>Globex</FullName></CustomerRef>
		<BillAddress><Addr1>9 Corp Way</Addr1><City>Metropolis</City></BillAddress>
		<ShipAddress><Addr1>2 Dock Rd</Addr1><City>Peoria</City></ShipAddress>
		<Subtotal>150.00</Subtotal>
		<SalesTaxTotal>12.00</SalesTaxTotal>
		<TotalAmount>162.00</TotalAmount>
		<SalesOrderLineRet>
			<Desc>Sprocket</Desc><Quantity>3</Quantity><Rate>50.00</Rate><Amount>150.00</Amount>
			<ItemRef><FullName>Sprockets</FullName></ItemRef>
		</SalesOrderLineRet>
		<SalesOrderLineGroupRet>
			<Desc>Bundle</Desc><Quantity>1</Quantity><TotalAmount>80.00</TotalAmount>
			<ItemGroupRef><FullName>Bundles:A</FullName></ItemGroupRef>
		</SalesOrderLineGroupRet>
	</SalesOrderRet>
</SalesOrderQueryRs></QBXMLMsgsRs></QBXML>`

func TestSalesOrderFlatten_HeaderMapping(t *testing.T) {
	records, status, err := SalesOrderAdapter{}.Flatten(salesOrderDoc)
	require.NoError(t, err)
	assert.Equal(t, "0", status.StatusCode)
	require.Len(t, records, 2)

	for _, rec := range records {
		assert.Equal(t, "SO-500", rec["SO Number"])
		assert.Equal(t, "Globex", rec["Customer Name"])
		assert.Equal(t, "2023-07-10", rec["Transaction Date"])
		assert.Equal(t, "2023-08-10", rec["Due Date"])
		assert.Equal(t, "9 Corp Way, Metropolis", rec["Bill To"])
		assert.Equal(t, "2 Dock Rd, Peoria", rec["Ship To"])
		assert.Equal(t, "150.00", rec["Subtotal"])
		assert.Equal(t, "12.00", rec["Sales Tax Total"])
		assert.Equal(t, "162.00", rec["Total Amount"])
	}
}

func TestSalesOrderFlatten_GroupAfterSimpleLines(t *testing.T) {
	records, _, err := SalesOrderAdapter{}.Flatten(salesOrderDoc)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Sprocket", records[0]["Line Description"])
	assert.Equal(t, "50.00", records[0]["Rate"])

	assert.Equal(t, "Bundle", records[1]["Line Description"])
	assert.Equal(t, "", records[1]["Rate"])
	assert.Equal(t, "80.00", records[1]["Amount"])
}

func TestSalesOrderFlatten_NoLines(t *testing.T) {
	doc := `<QBXML><QBXMLMsgsRs><SalesOrderQueryRs>
		<SalesOrderRet><RefNumber>SO-501</RefNumber></SalesOrderRet>
	</SalesOrderQueryRs></QBXMLMsgsRs></QBXML>`

	records, _, err := SalesOrderAdapter{}.Flatten(doc)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "SO-501", records[0]["SO Number"])
	assert.Equal(t, "", records[0]["Line Description"])
}
