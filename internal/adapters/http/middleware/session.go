package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionCookieName is the console session cookie.
const SessionCookieName = "karting_session"

// SessionTTL is how long an idle session is kept.
const SessionTTL = 24 * time.Hour

// SecureCookies marks the session cookie Secure. Set in production.
var SecureCookies bool

type contextKey string

const sessionContextKey contextKey = "session"

type sessionEntry[T any] struct {
	state    T
	lastSeen time.Time
}

// SessionStore keeps per-browser state in memory. There are no accounts;
// a session only identifies one browser so its view state stays separate.
type SessionStore[T any] struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry[T]
	newState func() T
	now      func() time.Time
}

// NewSessionStore creates a store that builds fresh state with newState.
func NewSessionStore[T any](newState func() T) *SessionStore[T] {
	return &SessionStore[T]{
		sessions: make(map[string]*sessionEntry[T]),
		newState: newState,
		now:      time.Now,
	}
}

// Get returns the state for token and refreshes its idle timer.
// PRE: token is non-empty
// POST: Returns the state if present and not expired
func (ss *SessionStore[T]) Get(token string) (T, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	entry, ok := ss.sessions[token]
	if !ok {
		var zero T
		return zero, false
	}
	now := ss.now()
	if now.Sub(entry.lastSeen) > SessionTTL {
		delete(ss.sessions, token)
		var zero T
		return zero, false
	}
	entry.lastSeen = now
	return entry.state, true
}

// Create stores fresh state under a new random token.
// POST: Returns the token and its state
func (ss *SessionStore[T]) Create() (string, T) {
	token := uuid.NewString()
	state := ss.newState()
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[token] = &sessionEntry[T]{state: state, lastSeen: ss.now()}
	return token, state
}

// Len returns the number of live sessions.
func (ss *SessionStore[T]) Len() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}

// Sweep drops sessions idle for longer than SessionTTL.
// POST: Returns the number removed
func (ss *SessionStore[T]) Sweep() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	now := ss.now()
	removed := 0
	for token, entry := range ss.sessions {
		if now.Sub(entry.lastSeen) > SessionTTL {
			delete(ss.sessions, token)
			removed++
		}
	}
	return removed
}

// StartSweeper sweeps expired sessions every interval until ctx ends.
func (ss *SessionStore[T]) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ss.Sweep()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Middleware attaches the browser's state to the request context, issuing a
// cookie when the browser has none or its session expired.
func (ss *SessionStore[T]) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var state T
		found := false
		if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
			state, found = ss.Get(cookie.Value)
		}
		if !found {
			var token string
			token, state = ss.Create()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				Secure:   SecureCookies,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int(SessionTTL.Seconds()),
			})
		}
		ctx := context.WithValue(r.Context(), sessionContextKey, state)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// StateFromContext returns the session state attached by Middleware.
func StateFromContext[T any](ctx context.Context) (T, bool) {
	state, ok := ctx.Value(sessionContextKey).(T)
	return state, ok
}
