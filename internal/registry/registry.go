// Package registry maps human-readable labels to stable integer identifiers.
//
// A Registry is a bijection within one namespace. Titles and people each get
// their own instance, and the type parameter keeps the two apart.
package registry

import (
	"fmt"
	"strings"

	"github.com/starford/careergraph/internal/apperr"
)

// Entry is one label/id pair fed to New.
type Entry[ID comparable] struct {
	Label string
	ID    ID
}

// Registry is an immutable label <-> id mapping.
type Registry[ID comparable] struct {
	byLabel map[string]ID
	byID    map[ID]string
	order   []ID
}

// New builds a registry from entries. Labels must be non-blank, and neither
// labels nor ids may repeat.
func New[ID comparable](entries []Entry[ID]) (*Registry[ID], error) {
	r := &Registry[ID]{
		byLabel: make(map[string]ID, len(entries)),
		byID:    make(map[ID]string, len(entries)),
		order:   make([]ID, 0, len(entries)),
	}
	for _, e := range entries {
		if strings.TrimSpace(e.Label) == "" {
			return nil, fmt.Errorf("registry: %w: empty label for id %v", apperr.ErrInvalid, e.ID)
		}
		if prev, ok := r.byLabel[e.Label]; ok {
			return nil, fmt.Errorf("registry: %w label %q (ids %v and %v)", apperr.ErrDuplicate, e.Label, prev, e.ID)
		}
		if prev, ok := r.byID[e.ID]; ok {
			return nil, fmt.Errorf("registry: %w id %v (labels %q and %q)", apperr.ErrDuplicate, e.ID, prev, e.Label)
		}
		r.byLabel[e.Label] = e.ID
		r.byID[e.ID] = e.Label
		r.order = append(r.order, e.ID)
	}
	return r, nil
}

// Resolve returns the id registered for label.
func (r *Registry[ID]) Resolve(label string) (ID, bool) {
	id, ok := r.byLabel[label]
	return id, ok
}

// Label returns the label registered for id. Calling it with an id that was
// never registered is a programming error and panics.
func (r *Registry[ID]) Label(id ID) string {
	label, ok := r.byID[id]
	if !ok {
		panic(fmt.Sprintf("registry: unregistered id %v", id))
	}
	return label
}

// Lookup is the non-panicking form of Label.
func (r *Registry[ID]) Lookup(id ID) (string, bool) {
	label, ok := r.byID[id]
	return label, ok
}

// Has reports whether id is registered.
func (r *Registry[ID]) Has(id ID) bool {
	_, ok := r.byID[id]
	return ok
}

// IDs returns every registered id in registration order.
func (r *Registry[ID]) IDs() []ID {
	out := make([]ID, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered entries.
func (r *Registry[ID]) Len() int {
	return len(r.order)
}
