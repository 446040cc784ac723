package catalog

import (
	"github.com/google/uuid"
	"github.com/packsource/backend/internal/domain/shared"
)

// Aggregate type constant for ProductChangeRequest
const AggregateTypeChangeRequest = "ProductChangeRequest"

// Change request domain event types
const (
	EventTypeChangeRequestSubmitted = "ChangeRequestSubmitted"
	EventTypeChangeRequestReviewed  = "ChangeRequestReviewed"
)

// ChangeRequestSubmittedEvent is published when a supplier submits a request
type ChangeRequestSubmittedEvent struct {
	shared.BaseDomainEvent
	ChangeType ChangeType `json:"change_type"`
	ProductID  string     `json:"product_id,omitempty"`
}

// NewChangeRequestSubmittedEvent creates a new ChangeRequestSubmittedEvent
func NewChangeRequestSubmittedEvent(request *ProductChangeRequest) *ChangeRequestSubmittedEvent {
	event := &ChangeRequestSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeChangeRequestSubmitted, AggregateTypeChangeRequest, request.ID),
		ChangeType:      request.ChangeType,
	}
	if request.ProductID != uuid.Nil {
		event.ProductID = request.ProductID.String()
	}
	return event
}

// ChangeRequestReviewedEvent is published when the platform decides a request
type ChangeRequestReviewedEvent struct {
	shared.BaseDomainEvent
	ChangeType ChangeType          `json:"change_type"`
	Status     ChangeRequestStatus `json:"status"`
}

// NewChangeRequestReviewedEvent creates a new ChangeRequestReviewedEvent
func NewChangeRequestReviewedEvent(request *ProductChangeRequest) *ChangeRequestReviewedEvent {
	return &ChangeRequestReviewedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeChangeRequestReviewed, AggregateTypeChangeRequest, request.ID),
		ChangeType:      request.ChangeType,
		Status:          request.Status,
	}
}
