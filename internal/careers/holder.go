package careers

import "sync/atomic"

// Holder publishes the live engine. Reloads store a fresh engine; readers
// take one snapshot per request.
type Holder struct {
	current  atomic.Pointer[Engine]
	checksum atomic.Pointer[string]
}

// NewHolder returns a holder serving e.
func NewHolder(e *Engine, checksum string) *Holder {
	h := &Holder{}
	h.Store(e, checksum)
	return h
}

// Engine returns the current engine.
func (h *Holder) Engine() *Engine {
	return h.current.Load()
}

// Checksum identifies the dataset behind the current engine.
func (h *Holder) Checksum() string {
	if cs := h.checksum.Load(); cs != nil {
		return *cs
	}
	return ""
}

// Store replaces the current engine.
func (h *Holder) Store(e *Engine, checksum string) {
	h.current.Store(e)
	h.checksum.Store(&checksum)
}
