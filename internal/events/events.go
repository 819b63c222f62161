// Package events publishes rent lifecycle changes for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"time"
)

type Type string

const (
	RentCreated      Type = "rent.created"
	RentUpdated      Type = "rent.updated"
	RentRemoved      Type = "rent.removed"
	ExtensionCreated Type = "extension.created"
	ExtensionUpdated Type = "extension.updated"
	ExtensionDeleted Type = "extension.deleted"
)

// Event carries the parent rent state after the change was committed.
type Event struct {
	Type           Type       `json:"type"`
	RentID         int32      `json:"rentId"`
	ExtensionID    int32      `json:"extensionId,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	IsRentExtended bool       `json:"isRentExtended"`
	OccurredAt     time.Time  `json:"occurredAt"`
}

func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, Event) error { return nil }
func (noopPublisher) Close() error                         { return nil }
