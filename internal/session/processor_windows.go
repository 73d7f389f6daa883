// =============================================================================
// QBXML to CSV Export - QBXMLRP2 COM Bridge (Windows)
// =============================================================================
//
// Production RequestProcessor backed by the QBXMLRP2.RequestProcessor COM
// object that ships with the QuickBooks Desktop SDK. Only built on Windows;
// other platforms get the stub in processor_stub.go.
//
// =============================================================================

//go:build windows

package session

import (
	"fmt"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// comProcessor drives the QBXMLRP2.RequestProcessor dispatch interface.
type comProcessor struct {
	dispatch *ole.IDispatch
}

// NewProcessor initializes COM and instantiates QBXMLRP2.RequestProcessor.
// The returned cleanup releases the COM object and uninitializes COM; call
// it after Session.Close.
func NewProcessor() (RequestProcessor, func(), error) {
	if err := ole.CoInitialize(0); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize COM: %w", err)
	}

	unknown, err := oleutil.CreateObject("QBXMLRP2.RequestProcessor")
	if err != nil {
		ole.CoUninitialize()
		return nil, nil, fmt.Errorf("failed to create QBXMLRP2.RequestProcessor (is the QuickBooks SDK installed?): %w", err)
	}

	dispatch, err := unknown.QueryInterface(ole.IID_IDispatch)
	unknown.Release()
	if err != nil {
		ole.CoUninitialize()
		return nil, nil, fmt.Errorf("failed to query IDispatch: %w", err)
	}

	cleanup := func() {
		dispatch.Release()
		ole.CoUninitialize()
	}
	return &comProcessor{dispatch: dispatch}, cleanup, nil
}

func (p *comProcessor) OpenConnection(appID, appName string) error {
	_, err := oleutil.CallMethod(p.dispatch, "OpenConnection", appID, appName)
	return err
}

func (p *comProcessor) BeginSession(companyFile string, openMode int) (string, error) {
	result, err := oleutil.CallMethod(p.dispatch, "BeginSession", companyFile, openMode)
	if err != nil {
		return "", err
	}
	defer result.Clear()
	return result.ToString(), nil
}

func (p *comProcessor) ProcessRequest(ticket, request string) (string, error) {
	result, err := oleutil.CallMethod(p.dispatch, "ProcessRequest", ticket, request)
	if err != nil {
		return "", err
	}
	defer result.Clear()
	return result.ToString(), nil
}

func (p *comProcessor) EndSession(ticket string) error {
	_, err := oleutil.CallMethod(p.dispatch, "EndSession", ticket)
	return err
}

func (p *comProcessor) CloseConnection() error {
	_, err := oleutil.CallMethod(p.dispatch, "CloseConnection")
	return err
}
