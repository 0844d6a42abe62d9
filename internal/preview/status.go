package preview

import "sync"

// buildStatus tracks the latest rebuild result for error display.
type buildStatus struct {
	mu           sync.RWMutex
	lastError    error
	lastID       string
	hasGoodBuild bool
}

func (bs *buildStatus) setError(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = err
}

func (bs *buildStatus) setSuccess(id string) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = nil
	bs.lastID = id
	bs.hasGoodBuild = true
}

func (bs *buildStatus) get() (lastErr error, hasGoodBuild bool) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.lastError, bs.hasGoodBuild
}
