package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeProcessor records the call sequence and can be told to fail at any
// lifecycle step.
type fakeProcessor struct {
	calls []string

	openErr    error
	beginErr   error
	processErr error
	endErr     error
	closeErr   error

	response string
}

func (f *fakeProcessor) OpenConnection(appID, appName string) error {
	f.calls = append(f.calls, "OpenConnection")
	return f.openErr
}

func (f *fakeProcessor) BeginSession(companyFile string, openMode int) (string, error) {
	f.calls = append(f.calls, "BeginSession")
	if f.beginErr != nil {
		return "", f.beginErr
	}
	return "TICKET-1", nil
}

func (f *fakeProcessor) ProcessRequest(ticket, request string) (string, error) {
	f.calls = append(f.calls, "ProcessRequest")
	if f.processErr != nil {
		return "", f.processErr
	}
	return f.response, nil
}

func (f *fakeProcessor) EndSession(ticket string) error {
	f.calls = append(f.calls, "EndSession")
	return f.endErr
}

func (f *fakeProcessor) CloseConnection() error {
	f.calls = append(f.calls, "CloseConnection")
	return f.closeErr
}

func TestSessionLifecycle(t *testing.T) {
	fp := &fakeProcessor{response: "<QBXML/>"}

	s, err := Open(fp, "Test App", "", OpenModeDoNotCare, zap.NewNop())
	require.NoError(t, err)

	resp, err := s.Query(context.Background(), "<request/>")
	require.NoError(t, err)
	assert.Equal(t, "<QBXML/>", resp)

	s.Close()
	assert.Equal(t, []string{
		"OpenConnection", "BeginSession", "ProcessRequest", "EndSession", "CloseConnection",
	}, fp.calls)
}

func TestOpen_ConnectionFailure(t *testing.T) {
	fp := &fakeProcessor{openErr: errors.New("quickbooks not running")}

	_, err := Open(fp, "Test App", "", OpenModeDoNotCare, zap.NewNop())
	require.Error(t, err)
	assert.Equal(t, []string{"OpenConnection"}, fp.calls, "nothing to tear down")
}

// A failed BeginSession must still close the connection that was opened.
func TestOpen_BeginFailureClosesConnection(t *testing.T) {
	fp := &fakeProcessor{beginErr: errors.New("company file locked")}

	_, err := Open(fp, "Test App", "company.qbw", OpenModeDoNotCare, zap.NewNop())
	require.Error(t, err)
	assert.Equal(t, []string{"OpenConnection", "BeginSession", "CloseConnection"}, fp.calls)
}

func TestClose_Idempotent(t *testing.T) {
	fp := &fakeProcessor{}

	s, err := Open(fp, "Test App", "", OpenModeDoNotCare, zap.NewNop())
	require.NoError(t, err)

	s.Close()
	s.Close()
	s.Close()
	assert.Equal(t, []string{"OpenConnection", "BeginSession", "EndSession", "CloseConnection"}, fp.calls)
}

// Teardown errors are swallowed; both steps still run.
func TestClose_BestEffort(t *testing.T) {
	fp := &fakeProcessor{
		endErr:   errors.New("session already gone"),
		closeErr: errors.New("connection already gone"),
	}

	s, err := Open(fp, "Test App", "", OpenModeDoNotCare, zap.NewNop())
	require.NoError(t, err)

	s.Close()
	assert.Equal(t, []string{"OpenConnection", "BeginSession", "EndSession", "CloseConnection"}, fp.calls)
}

func TestQuery_RequestFailure(t *testing.T) {
	boom := errors.New("request rejected")
	fp := &fakeProcessor{processErr: boom}

	s, err := Open(fp, "Test App", "", OpenModeDoNotCare, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Query(context.Background(), "<request/>")
	assert.ErrorIs(t, err, boom)
}

func TestQuery_CanceledContext(t *testing.T) {
	fp := &fakeProcessor{}

	s, err := Open(fp, "Test App", "", OpenModeDoNotCare, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Query(ctx, "<request/>")
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, fp.calls, "ProcessRequest", "no request goes out on a dead context")
}
