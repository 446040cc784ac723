package ordering

import (
	"github.com/packsource/backend/internal/domain/shared"
)

// Aggregate type constant for Order
const AggregateTypeOrder = "Order"

// Order domain event types
const (
	EventTypeOrderCreated       = "OrderCreated"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
	EventTypeOrderShipped       = "OrderShipped"
)

// OrderCreatedEvent is published when a manufacturer places an order
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	ManufacturerID string `json:"manufacturer_id"`
	ProductID      string `json:"product_id"`
	Quantity       int    `json:"quantity"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, order.ID),
		ManufacturerID:  order.ManufacturerID.String(),
		ProductID:       order.ProductID.String(),
		Quantity:        order.Quantity,
	}
}

// OrderStatusChangedEvent is published on every order status transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OldStatus OrderStatus `json:"old_status"`
	NewStatus OrderStatus `json:"new_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *Order, oldStatus, newStatus OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, order.ID),
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// OrderShippedEvent is published when the supplier ships an order
type OrderShippedEvent struct {
	shared.BaseDomainEvent
	TrackingNumber string `json:"tracking_number"`
	BatchCode      string `json:"batch_code"`
}

// NewOrderShippedEvent creates a new OrderShippedEvent
func NewOrderShippedEvent(order *Order) *OrderShippedEvent {
	event := &OrderShippedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderShipped, AggregateTypeOrder, order.ID),
	}
	if order.Logistics != nil {
		event.TrackingNumber = order.Logistics.TrackingNumber
		event.BatchCode = order.Logistics.BatchCode
	}
	return event
}
