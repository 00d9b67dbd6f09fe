package repositories

import (
	"context"
	"log"
	"sync"
	"time"

	"coldmail/job-application-helper/internal/models"
)

type memoryEntry struct {
	session  *models.Session
	lastSeen time.Time
}

// MemorySessionRepository is the default single-process store.
type MemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*memoryEntry
	ttl      time.Duration
	now      func() time.Time

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewMemorySessionRepository keeps sessions in process memory. Sessions idle for
// longer than ttl are dropped by the sweeper started with StartSweeper.
func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &MemorySessionRepository{
		sessions: make(map[string]*memoryEntry),
		ttl:      ttl,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
}

// Get implements SessionRepository. An unknown id yields a fresh session that is
// not stored until it is saved.
func (r *MemorySessionRepository) Get(_ context.Context, id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[id]
	if !ok {
		return models.NewSession(id), nil
	}
	entry.lastSeen = r.now()

	return entry.session, nil
}

// Save implements SessionRepository. Stored sessions are shared with callers, so
// saving the same pointer only refreshes the idle timer. A different copy of a
// stored session has its new entries appended to the stored history.
func (r *MemorySessionRepository) Save(_ context.Context, sess *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[sess.ID]
	if !ok {
		r.sessions[sess.ID] = &memoryEntry{session: sess, lastSeen: r.now()}
		return nil
	}

	if entry.session != sess {
		for _, result := range sess.History.Entries() {
			if _, found := entry.session.History.Find(result.ID); !found {
				entry.session.History.Append(result)
			}
		}
	}
	entry.lastSeen = r.now()
	return nil
}

// Delete implements SessionRepository.
func (r *MemorySessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

func (r *MemorySessionRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops every session idle for longer than the ttl and reports how many went.
func (r *MemorySessionRepository) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, entry := range r.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep on every tick until ctx is done or Close is called.
func (r *MemorySessionRepository) StartSweeper(ctx context.Context, interval time.Duration) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Printf("🧹 Session sweeper started (ttl=%s, every %s)\n", r.ttl, interval)

		for {
			select {
			case <-ctx.Done():
				log.Println("🧹 Session sweeper stopped")
				return
			case <-r.stopChan:
				log.Println("🧹 Session sweeper stopped")
				return
			case <-ticker.C:
				if n := r.Sweep(); n > 0 {
					log.Printf("🧹 Expired %d idle sessions\n", n)
				}
			}
		}
	}()
}

// Close implements SessionRepository.
func (r *MemorySessionRepository) Close() error {
	r.stopOnce.Do(func() { close(r.stopChan) })
	r.wg.Wait()
	return nil
}
