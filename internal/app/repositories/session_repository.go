package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/yigit/unidb/internal/app/models"
	"github.com/yigit/unidb/internal/app/registry"
	"github.com/yigit/unidb/internal/pkg/apperrors"
)

// workspace is one browser session's set of module registries
type workspace struct {
	mu       sync.Mutex
	states   map[string]registry.State
	lastSeen time.Time
}

// SessionRepository keeps every session's registries in memory
type SessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*workspace
	now      func() time.Time
	onChange func(count int)
}

// NewSessionRepository creates an empty in-memory session store
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]*workspace),
		now:      time.Now,
	}
}

// OnChange registers fn to receive the live session count whenever a session
// is created or evicted. fn runs under the store lock and must not call back in.
func (r *SessionRepository) OnChange(fn func(count int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = fn
}

func (r *SessionRepository) notify() {
	if r.onChange != nil {
		r.onChange(len(r.sessions))
	}
}

// workspace returns the session's workspace, creating it on first use
func (r *SessionRepository) workspace(sessionID string) *workspace {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws, ok := r.sessions[sessionID]
	if !ok {
		ws = &workspace{states: make(map[string]registry.State)}
		r.sessions[sessionID] = ws
		r.notify()
	}
	ws.lastSeen = r.now()
	return ws
}

func (ws *workspace) state(module models.Module) registry.State {
	s, ok := ws.states[module.Name]
	if !ok {
		s = registry.New(module)
		ws.states[module.Name] = s
	}
	return s
}

// Load returns the module's registry for a session; unseen modules start empty
func (r *SessionRepository) Load(ctx context.Context, sessionID string, module models.Module) (registry.State, error) {
	if err := ctx.Err(); err != nil {
		return registry.State{}, err
	}
	if sessionID == "" {
		return registry.State{}, apperrors.ErrSessionRequired
	}

	ws := r.workspace(sessionID)
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.state(module), nil
}

// Update applies fn to the module's registry and stores the result.
// The read-transition-write runs under the session lock. When fn fails the
// stored state is left untouched and the current state is returned with the error.
func (r *SessionRepository) Update(ctx context.Context, sessionID string, module models.Module, fn func(registry.State) (registry.State, error)) (registry.State, error) {
	if err := ctx.Err(); err != nil {
		return registry.State{}, err
	}
	if sessionID == "" {
		return registry.State{}, apperrors.ErrSessionRequired
	}

	ws := r.workspace(sessionID)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	current := ws.state(module)
	next, err := fn(current)
	if err != nil {
		return current, err
	}
	ws.states[module.Name] = next
	return next, nil
}

// Sweep drops sessions idle for longer than idle and returns how many went
func (r *SessionRepository) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	removed := 0
	for id, ws := range r.sessions {
		if ws.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.notify()
	}
	return removed
}

// Count returns the number of live sessions
func (r *SessionRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// RunSweeper evicts idle sessions every interval until ctx is done.
// onSweep, if set, receives the removed and remaining counts.
func (r *SessionRepository) RunSweeper(ctx context.Context, interval, idle time.Duration, onSweep func(removed, remaining int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := r.Sweep(idle)
			if onSweep != nil {
				onSweep(removed, r.Count())
			}
		}
	}
}
