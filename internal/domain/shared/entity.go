package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity holds the identity and audit timestamps shared by every
// persisted record (companies, partners, journals, rates).
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity stamps a fresh identity with matching timestamps
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// Touch records a modification
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}

// TenantAggregateRoot is the root of a tenant-owned consistency boundary
// (sales orders, payments). Version guards concurrent writes; the pending
// events are drained by the application layer once the transaction commits.
type TenantAggregateRoot struct {
	BaseEntity
	TenantID  uuid.UUID
	Version   int
	CreatedBy *uuid.UUID
	pending   []DomainEvent
}

// NewTenantAggregateRoot starts a new aggregate at version 1
func NewTenantAggregateRoot(tenantID uuid.UUID) TenantAggregateRoot {
	return TenantAggregateRoot{
		BaseEntity: NewBaseEntity(),
		TenantID:   tenantID,
		Version:    1,
	}
}

// AddDomainEvent queues evt for publication after commit
func (a *TenantAggregateRoot) AddDomainEvent(evt DomainEvent) {
	a.pending = append(a.pending, evt)
}

// GetDomainEvents returns the queued events in the order they were raised
func (a *TenantAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.pending
}

// ClearDomainEvents drops the queue after publication
func (a *TenantAggregateRoot) ClearDomainEvents() {
	a.pending = nil
}
