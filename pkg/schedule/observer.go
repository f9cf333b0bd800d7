package schedule

import (
	"tableflip.dev/agenda/pkg/event"
	"tableflip.dev/agenda/pkg/resource"
)

// Observer is notified synchronously after a mutation has been committed.
// Notifications carry the resulting record; for deletes it is the record as
// it was just before removal.
type Observer interface {
	OnEventCreated(event.Event)
	OnEventUpdated(event.Event)
	OnEventDeleted(event.Event)
}

// ObserverFuncs adapts optional callbacks to Observer. Nil callbacks are
// skipped.
type ObserverFuncs struct {
	Created func(event.Event)
	Updated func(event.Event)
	Deleted func(event.Event)
}

func (o ObserverFuncs) OnEventCreated(e event.Event) {
	if o.Created != nil {
		o.Created(e)
	}
}

func (o ObserverFuncs) OnEventUpdated(e event.Event) {
	if o.Updated != nil {
		o.Updated(e)
	}
}

func (o ObserverFuncs) OnEventDeleted(e event.Event) {
	if o.Deleted != nil {
		o.Deleted(e)
	}
}

// ResourceObserver is the resource counterpart of Observer.
type ResourceObserver interface {
	OnResourceAdded(resource.Resource)
	OnResourceUpdated(resource.Resource)
	OnResourceRemoved(resource.Resource)
}

// ResourceObserverFuncs adapts optional callbacks to ResourceObserver.
type ResourceObserverFuncs struct {
	Added   func(resource.Resource)
	Updated func(resource.Resource)
	Removed func(resource.Resource)
}

func (o ResourceObserverFuncs) OnResourceAdded(r resource.Resource) {
	if o.Added != nil {
		o.Added(r)
	}
}

func (o ResourceObserverFuncs) OnResourceUpdated(r resource.Resource) {
	if o.Updated != nil {
		o.Updated(r)
	}
}

func (o ResourceObserverFuncs) OnResourceRemoved(r resource.Resource) {
	if o.Removed != nil {
		o.Removed(r)
	}
}
