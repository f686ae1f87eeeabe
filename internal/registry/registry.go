package registry

import (
	"errors"
	"io"
	"sync"
)

// Registry tracks the connections currently owned by workers so they can be
// closed on shutdown. Workers only touch it when a connection starts and ends.
type Registry interface {
	Register(id string, conn io.Closer) (success bool)
	Remove(id string)
	Len() int
	CloseAll() error
}

type registry struct {
	mu     sync.Mutex
	conns  map[string]io.Closer
	closed bool
}

func NewRegistry() Registry {
	return &registry{
		conns: make(map[string]io.Closer),
	}
}

// Register fails when id is taken or the registry is already shut down. A
// connection that fails to register should be closed by the caller.
func (r *registry) Register(id string, conn io.Closer) (success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return false
	}
	if _, exists := r.conns[id]; exists {
		return false
	}
	r.conns[id] = conn
	return true
}

func (r *registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.conns, id)
}

func (r *registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.conns)
}

// CloseAll closes every registered connection and refuses later
// registrations. Closing unblocks workers parked in Read.
func (r *registry) CloseAll() error {
	r.mu.Lock()
	conns := r.conns
	r.conns = make(map[string]io.Closer)
	r.closed = true
	r.mu.Unlock()

	var errs []error
	for _, c := range conns {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
