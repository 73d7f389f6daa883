// =============================================================================
// QBXML to CSV Export - Processor Stub (non-Windows)
// =============================================================================

//go:build !windows

package session

import "errors"

// ErrUnsupportedPlatform is returned when the COM bridge is requested on a
// platform without QuickBooks Desktop.
var ErrUnsupportedPlatform = errors.New("the QuickBooks COM bridge is only available on Windows")

// NewProcessor is unavailable off-Windows. Dry runs and tests work anywhere;
// talking to QuickBooks requires a Windows build.
func NewProcessor() (RequestProcessor, func(), error) {
	return nil, nil, ErrUnsupportedPlatform
}
