// =============================================================================
// QBXML to CSV Export - Session Module
// =============================================================================
//
// This module owns the channel boundary to QuickBooks. The request processor
// lifecycle is:
//
//   OpenConnection -> BeginSession -> ProcessRequest* -> EndSession -> CloseConnection
//
// Teardown is unconditional: once a connection or session is acquired it is
// released on every exit path (normal completion, error, interruption), and
// teardown failures are suppressed so they never mask the original error.
//
// The RequestProcessor interface keeps the core testable off-Windows; the
// production implementation drives the QBXMLRP2 COM object (see
// processor_windows.go).
//
// =============================================================================

package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// OpenModeDoNotCare accepts whichever mode the company file is already open
// in (qbFileOpenDoNotCare in the QBXMLRP2 type library).
const OpenModeDoNotCare = 2

// RequestProcessor is the opaque request/response conduit to QuickBooks.
// Calls are synchronous and possibly slow; any timeout policy belongs to the
// implementation, not to this package.
type RequestProcessor interface {
	// OpenConnection establishes the application-level connection. appID is
	// conventionally empty; appName is what QuickBooks shows the user.
	OpenConnection(appID, appName string) error

	// BeginSession opens the company file and returns a session ticket.
	// An empty companyFile means the file currently open in QuickBooks.
	BeginSession(companyFile string, openMode int) (ticket string, err error)

	// ProcessRequest executes one qbXML request document and returns the
	// response document.
	ProcessRequest(ticket, request string) (string, error)

	// EndSession releases the session ticket.
	EndSession(ticket string) error

	// CloseConnection tears down the application-level connection.
	CloseConnection() error
}

// Session is an open connection + session pair. Obtain one with Open and
// release it with Close (typically via defer).
type Session struct {
	rp     RequestProcessor
	ticket string
	log    *zap.Logger
	closed bool
}

// Open acquires a connection and begins a session. If BeginSession fails the
// already-opened connection is closed before returning, so the caller never
// holds a half-acquired channel.
func Open(rp RequestProcessor, appName, companyFile string, openMode int, log *zap.Logger) (*Session, error) {
	if err := rp.OpenConnection("", appName); err != nil {
		return nil, fmt.Errorf("failed to open QuickBooks connection: %w", err)
	}

	ticket, err := rp.BeginSession(companyFile, openMode)
	if err != nil {
		if cerr := rp.CloseConnection(); cerr != nil {
			log.Debug("close connection after failed begin", zap.Error(cerr))
		}
		return nil, fmt.Errorf("failed to begin QuickBooks session: %w", err)
	}

	log.Debug("session opened",
		zap.String("app_name", appName),
		zap.String("company_file", companyFile),
	)

	return &Session{rp: rp, ticket: ticket, log: log}, nil
}

// Query executes one request/response exchange. The context is consulted
// before issuing the request; the exchange itself is a single synchronous
// call that cannot be interrupted mid-flight.
func (s *Session) Query(ctx context.Context, request string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.log.Debug("sending qbxml request", zap.String("request", request))

	response, err := s.rp.ProcessRequest(s.ticket, request)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}

	s.log.Debug("received qbxml response", zap.Int("bytes", len(response)))
	return response, nil
}

// Close ends the session and closes the connection, best effort. It is safe
// to call multiple times; only the first call does anything. Teardown errors
// are logged and swallowed.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true

	if err := s.rp.EndSession(s.ticket); err != nil {
		s.log.Debug("end session", zap.Error(err))
	}
	if err := s.rp.CloseConnection(); err != nil {
		s.log.Debug("close connection", zap.Error(err))
	}
}
