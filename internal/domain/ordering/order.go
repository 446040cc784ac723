package ordering

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/packsource/backend/internal/domain/shared"
)

// OrderStatus represents the status of a packaging order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"   // Submitted, awaiting platform audit
	OrderStatusApproved  OrderStatus = "APPROVED"  // Audited, forwarded to the supplier
	OrderStatusRejected  OrderStatus = "REJECTED"  // Rejected by the platform, terminal
	OrderStatusShipped   OrderStatus = "SHIPPED"   // Supplier shipped
	OrderStatusCompleted OrderStatus = "COMPLETED" // Manufacturer confirmed receipt, terminal
)

// CanTransitionTo checks if transition to target status is allowed
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusApproved || target == OrderStatusRejected
	case OrderStatusApproved:
		return target == OrderStatusShipped
	case OrderStatusShipped:
		return target == OrderStatusCompleted
	case OrderStatusRejected, OrderStatusCompleted:
		return false
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are possible
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusRejected || s == OrderStatusCompleted
}

// Logistics carries the shipment details attached when an order ships
type Logistics struct {
	Company              string
	TrackingNumber       string
	ShippedDate          time.Time
	EstimatedArrivalDate time.Time
	BatchCode            string
}

// Validate checks that every shipment field is filled in
func (l Logistics) Validate() error {
	if strings.TrimSpace(l.Company) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Logistics company is required")
	}
	if strings.TrimSpace(l.TrackingNumber) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Tracking number is required")
	}
	if l.ShippedDate.IsZero() {
		return shared.NewDomainError("VALIDATION_ERROR", "Shipped date is required")
	}
	if l.EstimatedArrivalDate.IsZero() {
		return shared.NewDomainError("VALIDATION_ERROR", "Estimated arrival date is required")
	}
	if strings.TrimSpace(l.BatchCode) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Batch code is required")
	}
	return nil
}

// Order represents a manufacturer's packaging order
// It is the aggregate root for ordering operations
type Order struct {
	shared.BaseAggregateRoot
	ManufacturerID   uuid.UUID
	ManufacturerName string
	ProductID        uuid.UUID
	ProductName      string
	Quantity         int
	RequestDate      time.Time
	ExpectedDate     time.Time
	Status           OrderStatus
	RejectReason     string
	ApprovedDate     *time.Time
	DesignFileURL    string
	Logistics        *Logistics
}

// NewOrder creates a pending order.
// Product name and manufacturer name are denormalized at creation so the
// order history survives later catalog changes.
func NewOrder(manufacturerID uuid.UUID, manufacturerName string, productID uuid.UUID, productName string, quantity int, expectedDate time.Time, designFileURL string) (*Order, error) {
	if manufacturerID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Manufacturer ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Quantity must be positive")
	}
	if expectedDate.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Expected date is required")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ManufacturerID:    manufacturerID,
		ManufacturerName:  strings.TrimSpace(manufacturerName),
		ProductID:         productID,
		ProductName:       strings.TrimSpace(productName),
		Quantity:          quantity,
		RequestDate:       time.Now(),
		ExpectedDate:      expectedDate,
		Status:            OrderStatusPending,
		DesignFileURL:     designFileURL,
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// transitionTo moves the order to the target status
func (o *Order) transitionTo(target OrderStatus) error {
	if !o.Status.CanTransitionTo(target) {
		if o.Status.IsTerminal() || (o.Status != OrderStatusPending && (target == OrderStatusApproved || target == OrderStatusRejected)) {
			return shared.NewDomainError("CONFLICT",
				"Order in status "+string(o.Status)+" has already been decided")
		}
		return shared.NewDomainError("INVALID_STATE",
			"Cannot transition order from "+string(o.Status)+" to "+string(target))
	}

	oldStatus := o.Status
	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, oldStatus, target))

	return nil
}

// Approve records the platform's approval decision
func (o *Order) Approve() error {
	if err := o.transitionTo(OrderStatusApproved); err != nil {
		return err
	}

	now := time.Now()
	o.ApprovedDate = &now

	return nil
}

// Reject records the platform's rejection with a mandatory reason
func (o *Order) Reject(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Reject reason is required")
	}
	if err := o.transitionTo(OrderStatusRejected); err != nil {
		return err
	}

	now := time.Now()
	o.ApprovedDate = &now
	o.RejectReason = reason

	return nil
}

// Ship attaches logistics and marks the order shipped.
// Stock decrement happens alongside in the same persistence transaction.
func (o *Order) Ship(logistics Logistics) error {
	if err := logistics.Validate(); err != nil {
		return err
	}
	if err := o.transitionTo(OrderStatusShipped); err != nil {
		return err
	}

	o.Logistics = &logistics

	o.AddDomainEvent(NewOrderShippedEvent(o))

	return nil
}

// ConfirmReceipt completes a shipped order
func (o *Order) ConfirmReceipt() error {
	return o.transitionTo(OrderStatusCompleted)
}
