package shared

// BaseAggregateRoot is an entity with a version number and a queue of
// domain events waiting for the application layer to publish them.
type BaseAggregateRoot struct {
	BaseEntity
	Version int
	pending []DomainEvent
}

// NewBaseAggregateRoot starts a new aggregate at version 1
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}

// Touch marks the aggregate as modified and bumps its version
func (a *BaseAggregateRoot) Touch() {
	a.BaseEntity.Touch()
	a.Version++
}

// AddDomainEvent queues an event
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.pending = append(a.pending, event)
}

// GetDomainEvents returns the queued events in the order they were raised
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.pending
}

// ClearDomainEvents empties the queue once the events are published
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.pending = nil
}
