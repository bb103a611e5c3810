// Package session maps opaque session identifiers to authenticated members.
package session

import (
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/kiosk-host/internal/ledger"
)

// DefaultTTL is how long a session stays valid after authentication.
const DefaultTTL = time.Hour

type entry struct {
	memberID int64
	validTo  time.Time
}

// Registry is the session store. It is safe for concurrent use and is
// mutated independently of any account lock.
type Registry struct {
	mu       sync.Mutex
	ttl      time.Duration
	clock    ledger.Clock
	sessions map[string]entry
}

// NewRegistry creates a Registry. A non-positive ttl falls back to
// DefaultTTL; a nil clock defaults to the system clock.
func NewRegistry(ttl time.Duration, clock ledger.Clock) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = ledger.SystemClock
	}
	return &Registry{
		ttl:      ttl,
		clock:    clock,
		sessions: make(map[string]entry),
	}
}

// Create mints a fresh opaque session id for the member and records its
// expiry time.
func (r *Registry) Create(memberID int64) (string, time.Time) {
	id := uuid.Must(uuid.NewV4()).String()
	validTo := r.clock.Now().Add(r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = entry{memberID: memberID, validTo: validTo}
	return id, validTo
}

// Resolve returns the member id bound to the session. Unknown ids fail with
// NO_SESSION; sessions past their expiry are removed and fail with
// SESSION_EXPIRED.
func (r *Registry) Resolve(id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return 0, ledger.NewError(ledger.CodeNoSession, "no session exists for the specified session id")
	}
	if r.clock.Now().After(e.validTo) {
		delete(r.sessions, id)
		return 0, ledger.NewError(ledger.CodeSessionExpired, "the session has expired, authenticate again")
	}
	return e.memberID, nil
}

// Destroy removes the session. It is idempotent.
func (r *Registry) Destroy(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
