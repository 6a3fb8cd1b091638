//go:build !windows

package automation

// newSessionPlatform reports automation as unavailable on platforms
// without a COM runtime.
func newSessionPlatform() (Session, error) {
	return nil, ErrUnavailable
}
