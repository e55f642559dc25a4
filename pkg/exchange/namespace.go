package exchange

import (
	"sort"
	"sync"

	"github.com/arthur-debert/hookhub/pkg/errors"
	"github.com/arthur-debert/hookhub/pkg/registry"
)

// Namespace maps owner -> capability name -> value
type Namespace struct {
	mu     sync.RWMutex
	owners map[string]registry.Registry[any]
}

// NewNamespace creates an empty namespace
func NewNamespace() *Namespace {
	return &Namespace{owners: make(map[string]registry.Registry[any])}
}

// Publish stores each capability under owner. Every capability must carry a
// name; the call is rejected before any write when one does not.
func (n *Namespace) Publish(owner string, caps ...Capability) error {
	if owner == "" {
		return errors.New(errors.ErrInvalidInput, "capability owner cannot be empty")
	}
	for i, c := range caps {
		if c.Name == "" {
			return errors.Newf(errors.ErrDescriptorMissing, "capability %d published by %q has no name", i, owner).
				WithDetail("owner", owner).
				WithDetail("index", i)
		}
	}

	n.mu.Lock()
	entries, ok := n.owners[owner]
	if !ok {
		entries = registry.New[any]()
		n.owners[owner] = entries
	}
	n.mu.Unlock()

	for _, c := range caps {
		if err := entries.Put(c.Name, c.Value); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns namespace[owner][name]
func (n *Namespace) Lookup(owner, name string) (any, bool) {
	n.mu.RLock()
	entries, ok := n.owners[owner]
	n.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return entries.Lookup(name)
}

// Owners returns every owner that published at least once, sorted
func (n *Namespace) Owners() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]string, 0, len(n.owners))
	for owner := range n.owners {
		out = append(out, owner)
	}
	sort.Strings(out)
	return out
}

// Names returns the capability names published by owner, sorted
func (n *Namespace) Names(owner string) []string {
	n.mu.RLock()
	entries, ok := n.owners[owner]
	n.mu.RUnlock()
	if !ok {
		return nil
	}
	return entries.List()
}

// Reset empties the namespace
func (n *Namespace) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.owners = make(map[string]registry.Registry[any])
}
