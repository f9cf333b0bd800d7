package schedule

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"tableflip.dev/agenda/pkg/resource"
)

// Resources owns the resource collection.
type Resources struct {
	items     map[string]resource.Resource
	observers []ResourceObserver
	settings
}

// NewResources returns an empty resource manager.
func NewResources(opts ...Option) *Resources {
	return &Resources{
		items:    make(map[string]resource.Resource),
		settings: newSettings(opts),
	}
}

// Subscribe registers an observer for committed resource changes.
func (m *Resources) Subscribe(o ResourceObserver) {
	m.observers = append(m.observers, o)
}

// Load replaces the collection without notifying observers.
func (m *Resources) Load(list []resource.Resource) error {
	items := make(map[string]resource.Resource, len(list))
	for _, r := range list {
		r, err := normalize(r)
		if err != nil {
			return err
		}
		if _, ok := items[r.ID]; ok {
			return fmt.Errorf("%w: resource %s", ErrDuplicateID, r.ID)
		}
		items[r.ID] = r
	}
	m.items = items
	return nil
}

// List returns every resource ordered by id.
func (m *Resources) List() []resource.Resource {
	out := make([]resource.Resource, 0, len(m.items))
	for _, r := range m.items {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns the resource with id.
func (m *Resources) Get(id string) (resource.Resource, error) {
	r, ok := m.items[id]
	if !ok {
		return resource.Resource{}, fmt.Errorf("%w: resource %s", ErrNotFound, id)
	}
	return r, nil
}

// Has reports whether id names a resource. It fits WithReferenceCheck.
func (m *Resources) Has(id string) bool {
	_, ok := m.items[id]
	return ok
}

// Add stores r, generating an id when it has none.
func (m *Resources) Add(r resource.Resource) (resource.Resource, error) {
	if r.ID == "" {
		r.ID = m.ids.NewID()
	}
	r, err := normalize(r)
	if err != nil {
		return resource.Resource{}, err
	}
	if _, ok := m.items[r.ID]; ok {
		return resource.Resource{}, fmt.Errorf("%w: resource %s", ErrDuplicateID, r.ID)
	}
	m.items[r.ID] = r
	m.log.Debug("resource added", zap.String("resource_id", r.ID))
	for _, o := range m.observers {
		o.OnResourceAdded(r)
	}
	return r, nil
}

// Update applies p to the resource with id.
func (m *Resources) Update(id string, p resource.Patch) (resource.Resource, error) {
	old, ok := m.items[id]
	if !ok {
		return resource.Resource{}, fmt.Errorf("%w: resource %s", ErrNotFound, id)
	}
	r, err := normalize(p.Apply(old))
	if err != nil {
		return resource.Resource{}, err
	}
	m.items[id] = r
	m.log.Debug("resource updated", zap.String("resource_id", id))
	for _, o := range m.observers {
		o.OnResourceUpdated(r)
	}
	return r, nil
}

// RemoveOption tunes Remove.
type RemoveOption func(*removeOptions)

type removeOptions struct {
	references func(resourceID string) int
}

// RequireUnreferenced makes Remove fail with ErrReferencedByEvents while
// references reports events on the resource. Controller.References fits.
func RequireUnreferenced(references func(resourceID string) int) RemoveOption {
	return func(o *removeOptions) {
		o.references = references
	}
}

// Remove deletes the resource with id. Events pointing at it are kept unless
// RequireUnreferenced is given, in which case removal is refused.
func (m *Resources) Remove(id string, opts ...RemoveOption) error {
	r, ok := m.items[id]
	if !ok {
		return fmt.Errorf("%w: resource %s", ErrNotFound, id)
	}
	o := &removeOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.references != nil {
		if n := o.references(id); n > 0 {
			return fmt.Errorf("%w: %s has %d events", ErrReferencedByEvents, id, n)
		}
	}
	delete(m.items, id)
	m.log.Debug("resource removed", zap.String("resource_id", id))
	for _, obs := range m.observers {
		obs.OnResourceRemoved(r)
	}
	return nil
}

func normalize(r resource.Resource) (resource.Resource, error) {
	if err := resource.Validate(r); err != nil {
		return resource.Resource{}, err
	}
	r.Type = resource.ParseType(string(r.Type))
	if r.Color != "" {
		c, err := resource.NormalizeColor(r.Color)
		if err != nil {
			return resource.Resource{}, fmt.Errorf("%w: %s: %v", resource.ErrInvalidResource, r.ID, err)
		}
		r.Color = c
	}
	return r, nil
}
