package browser

import "sync"

var (
	sharedMu sync.Mutex
	shared   *Session
)

// Shared returns the lazily created process-wide session, initializing it on
// first use. It is a convenience for callers that do not manage their own
// session lifecycle; the collector takes a caller-owned session instead.
func Shared() (*Session, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared == nil {
		shared = NewSession(DefaultOptions())
	}
	if err := shared.Initialize(); err != nil {
		return nil, err
	}
	return shared, nil
}

// CloseShared tears down the shared session if one was ever created.
func CloseShared() error {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared == nil {
		return nil
	}
	err := shared.Close()
	shared = nil
	return err
}
