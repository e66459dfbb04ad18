package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"mealview/internal/viewer"
)

// Factory builds the viewer for a new session.
type Factory func(sessionID string) *viewer.Viewer

// Registry keeps one viewer per session and tears idle ones down.
//
// Every Open refreshes the session's expiry. When go-cache evicts a session,
// its viewer is closed, so a fetch finishing afterwards is discarded.
type Registry struct {
	cache   *cache.Cache
	factory Factory

	mu sync.Mutex // serializes get-or-create in Open
}

// NewRegistry creates a registry whose sessions expire after ttl of inactivity.
func NewRegistry(ttl time.Duration, factory Factory) *Registry {
	cleanup := ttl / 2
	if cleanup < time.Second {
		cleanup = time.Second
	}
	c := cache.New(ttl, cleanup)
	c.OnEvicted(func(id string, item interface{}) {
		if v, ok := item.(*viewer.Viewer); ok {
			log.Printf("Session %s closed", id)
			v.Close()
		}
	})
	return &Registry{cache: c, factory: factory}
}

// Open returns the viewer for id. If id is unknown or not a valid session id,
// a new session is created, its viewer mounted, and created is true.
func (r *Registry) Open(id string) (sessionID string, v *viewer.Viewer, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := uuid.Parse(id); err == nil {
		if item, found := r.cache.Get(id); found {
			v = item.(*viewer.Viewer)
			r.cache.Set(id, v, cache.DefaultExpiration)
			return id, v, false
		}
	}

	sessionID = uuid.NewString()
	v = r.factory(sessionID)
	r.cache.Set(sessionID, v, cache.DefaultExpiration)
	v.Mount()
	log.Printf("Session %s opened", sessionID)
	return sessionID, v, true
}

// Lookup returns the viewer for id without creating one.
func (r *Registry) Lookup(id string) (*viewer.Viewer, bool) {
	item, found := r.cache.Get(id)
	if !found {
		return nil, false
	}
	return item.(*viewer.Viewer), true
}

// Close removes the session and tears its viewer down.
func (r *Registry) Close(id string) bool {
	if _, found := r.cache.Get(id); !found {
		return false
	}
	r.cache.Delete(id)
	return true
}

// CloseAll tears down every session.
func (r *Registry) CloseAll() {
	r.cache.DeleteExpired()
	for id := range r.cache.Items() {
		r.cache.Delete(id)
	}
}

// Len returns the number of live sessions, expired ones included until the
// next cleanup.
func (r *Registry) Len() int {
	return r.cache.ItemCount()
}

// Sweep evicts expired sessions now instead of waiting for the janitor.
func (r *Registry) Sweep() {
	r.cache.DeleteExpired()
}
