package glmock

import (
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/aarondl/opt/omit"
)

const (
	kindProjects        = "projects"
	kindVariables       = "variables"
	kindGenericPackages = "generic_packages"
)

// record is satisfied by *Resource and by any type embedding it.
type record interface {
	resource() *Resource
}

// environment is what registries share with the Client that created them.
type environment struct {
	url     string
	logger  *slog.Logger
	metrics *metrics
}

// ResourceManager is an in-memory registry of resources keyed by id.
type ResourceManager[R record] struct {
	env  *environment
	kind string
	name string
	path string

	mu    sync.RWMutex
	store map[string]R
	build func(path, id string, attrs omit.Val[Attributes]) R
}

func newResourceManager[R record](env *environment, kind, name string, build func(path, id string, attrs omit.Val[Attributes]) R) *ResourceManager[R] {
	if name == "" {
		name = kind
	}
	return &ResourceManager[R]{
		env:   env,
		kind:  kind,
		name:  name,
		path:  strings.TrimRight(env.url, "/") + "/" + name,
		store: make(map[string]R),
		build: build,
	}
}

// Name returns the registry label.
func (m *ResourceManager[R]) Name() string { return m.name }

// Path returns the client URL joined with the registry name.
func (m *ResourceManager[R]) Path() string { return m.path }

// Create adds a resource without attributes. It does nothing when id is
// already registered.
func (m *ResourceManager[R]) Create(id string) {
	m.mu.Lock()
	created := m.createLocked(id)
	m.mu.Unlock()

	if !created {
		m.observe("create", resultNoop)
		return
	}
	m.observe("create", resultOK)
	m.env.logger.Debug("Resource created.", slog.String("registry", m.path), slog.String("id", id))
}

func (m *ResourceManager[R]) createLocked(id string) bool {
	if _, ok := m.store[id]; ok {
		return false
	}
	m.store[id] = m.build(m.path, id, omit.Val[Attributes]{})
	return true
}

// Get returns the resource registered under id, or an error matching
// ErrNotFound.
func (m *ResourceManager[R]) Get(id string) (R, error) {
	m.mu.RLock()
	r, ok := m.store[id]
	m.mu.RUnlock()

	if !ok {
		m.observe("get", resultNotFound)
		var zero R
		return zero, newGetError(m.path, id)
	}
	m.observe("get", resultOK)
	return r, nil
}

// Update replaces the resource registered under id with a new one carrying
// attrs. A missing id is created. Attributes are not merged.
func (m *ResourceManager[R]) Update(id string, attrs omit.Val[Attributes]) {
	m.mu.Lock()
	m.store[id] = m.build(m.path, id, attrs)
	m.mu.Unlock()

	m.observe("update", resultOK)
	m.env.logger.Debug("Resource updated.", slog.String("registry", m.path), slog.String("id", id), slog.Bool("attributes", attrs.IsValue()))
}

// Delete removes the resource registered under id.
func (m *ResourceManager[R]) Delete(id string) error {
	m.mu.Lock()
	_, ok := m.store[id]
	delete(m.store, id)
	m.mu.Unlock()

	if !ok {
		m.observe("delete", resultNotFound)
		return newGetError(m.path, id)
	}
	m.observe("delete", resultOK)
	m.env.logger.Debug("Resource deleted.", slog.String("registry", m.path), slog.String("id", id))
	return nil
}

// List returns the registered resources ordered by id.
func (m *ResourceManager[R]) List() []R {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := slices.Sorted(maps.Keys(m.store))
	out := make([]R, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.store[id])
	}
	return out
}

// Len returns the number of registered resources.
func (m *ResourceManager[R]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}

// lookup is Get without the type parameter, used where registries of
// different resource types are handled together.
func (m *ResourceManager[R]) lookup(id string) (*Resource, error) {
	r, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	return r.resource(), nil
}

func (m *ResourceManager[R]) observe(operation, result string) {
	m.env.metrics.observe(m.kind, operation, result)
}
