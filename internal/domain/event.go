package domain

import "time"

// Product change operations published to Kafka.
const (
	OpProductCreated = "created"
	OpProductUpdated = "updated"
	OpProductDeleted = "deleted"
)

// ProductChange is a best-effort notification about a product mutation.
type ProductChange struct {
	EventID    string    `json:"event_id"`
	Op         string    `json:"op"`
	ProductID  string    `json:"product_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewProductChange(eventID, op, productID string, occurredAt time.Time) *ProductChange {
	return &ProductChange{
		EventID:    eventID,
		Op:         op,
		ProductID:  productID,
		OccurredAt: occurredAt,
	}
}
