package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"Warehouse/internal/warehouse"
)

type Type string

const (
	ProductCreated Type = "product.created"
	ProductUpdated Type = "product.updated"
)

// Event is a catalog change notification. Product is the snapshot taken right
// after the change.
type Event struct {
	ID         string                  `json:"id"`
	Type       Type                    `json:"type"`
	OccurredAt time.Time               `json:"occurred_at"`
	Product    warehouse.ProductRecord `json:"product"`
}

func New(t Type, p warehouse.ProductRecord) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		OccurredAt: time.Now().UTC(),
		Product:    p,
	}
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Ping(ctx context.Context) error
	Close() error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Ping(context.Context) error          { return nil }
func (NopPublisher) Close() error                        { return nil }
