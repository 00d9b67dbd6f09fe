package models

import (
	"sync"

	"github.com/google/uuid"
)

// History is the append-only, insertion-ordered list of results for one session.
// Oldest entries come first.
type History struct {
	mu      sync.RWMutex
	entries []GenerationResult
}

func NewHistory(entries ...GenerationResult) *History {
	h := &History{}
	h.entries = append(h.entries, entries...)
	return h
}

func (h *History) Append(r GenerationResult) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, r)
}

// Entries returns a copy of the history, oldest first.
func (h *History) Entries() []GenerationResult {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]GenerationResult, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

func (h *History) Latest() (GenerationResult, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.entries) == 0 {
		return GenerationResult{}, false
	}
	return h.entries[len(h.entries)-1], true
}

func (h *History) Find(id uuid.UUID) (GenerationResult, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, e := range h.entries {
		if e.ID == id {
			return e, true
		}
	}
	return GenerationResult{}, false
}

// Session is one user's interaction context. Nothing in it is shared with other sessions.
type Session struct {
	ID      string
	History *History
}

func NewSession(id string) *Session {
	return &Session{ID: id, History: NewHistory()}
}
