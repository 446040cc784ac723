package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/packsource/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ChangeType identifies what a change request proposes
type ChangeType string

const (
	ChangeTypeCreate ChangeType = "CREATE" // New product, materialized on approval
	ChangeTypeUpdate ChangeType = "UPDATE" // Patch to an existing product
)

// ChangeRequestStatus represents the review status of a change request
type ChangeRequestStatus string

const (
	ChangeRequestStatusPending  ChangeRequestStatus = "PENDING"
	ChangeRequestStatusApproved ChangeRequestStatus = "APPROVED"
	ChangeRequestStatusRejected ChangeRequestStatus = "REJECTED"
)

// CanTransitionTo checks if transition to target status is allowed
func (s ChangeRequestStatus) CanTransitionTo(target ChangeRequestStatus) bool {
	if s != ChangeRequestStatusPending {
		return false
	}
	return target == ChangeRequestStatusApproved || target == ChangeRequestStatusRejected
}

// PendingChanges is the proposed field payload of a change request.
// Key presence matters: a present falsy numeric value resets the field
// to null, an absent key leaves the field untouched.
type PendingChanges map[string]interface{}

// String returns the string value for key and whether the key is present
func (c PendingChanges) String(key string) (string, bool) {
	v, ok := c[key]
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, true
}

// Int returns the int value for key. The second return reports key
// presence; a present falsy value yields a nil pointer (reset to null).
func (c PendingChanges) Int(key string) (*int, bool) {
	v, ok := c[key]
	if !ok {
		return nil, false
	}
	switch n := v.(type) {
	case float64:
		if n == 0 {
			return nil, true
		}
		i := int(n)
		return &i, true
	case int:
		if n == 0 {
			return nil, true
		}
		return &n, true
	default:
		return nil, true
	}
}

// Decimal returns the decimal value for key with the same presence and
// falsy-reset semantics as Int
func (c PendingChanges) Decimal(key string) (*decimal.Decimal, bool) {
	v, ok := c[key]
	if !ok {
		return nil, false
	}
	switch n := v.(type) {
	case float64:
		if n == 0 {
			return nil, true
		}
		d := decimal.NewFromFloat(n)
		return &d, true
	case string:
		if n == "" {
			return nil, true
		}
		d, err := decimal.NewFromString(n)
		if err != nil {
			return nil, true
		}
		return &d, true
	default:
		return nil, true
	}
}

// SupplierID extracts the supplier owner from a CREATE payload
func (c PendingChanges) SupplierID() (uuid.UUID, bool) {
	s, ok := c.String("supplierId")
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ProductChangeRequest is a supplier's proposal to create a product or
// change review-gated fields of an existing one.
// It is an aggregate root reviewed by the platform.
type ProductChangeRequest struct {
	shared.BaseAggregateRoot
	ProductID      uuid.UUID // uuid.Nil for CREATE requests
	ChangeType     ChangeType
	Status         ChangeRequestStatus
	PendingChanges PendingChanges
	ReviewedBy     *uuid.UUID
	ReviewedAt     *time.Time
	RejectReason   string
}

// NewChangeRequest creates a pending change request.
// CREATE payloads must name the owning supplier; UPDATE requests must
// reference an existing product.
func NewChangeRequest(productID uuid.UUID, changeType ChangeType, changes PendingChanges) (*ProductChangeRequest, error) {
	if changeType != ChangeTypeCreate && changeType != ChangeTypeUpdate {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unknown change type")
	}
	if len(changes) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Pending changes cannot be empty")
	}

	switch changeType {
	case ChangeTypeCreate:
		if _, ok := changes.SupplierID(); !ok {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Create request must carry the supplier ID")
		}
	case ChangeTypeUpdate:
		if productID == uuid.Nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Update request must reference a product")
		}
	}

	request := &ProductChangeRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		ChangeType:        changeType,
		Status:            ChangeRequestStatusPending,
		PendingChanges:    changes,
	}

	request.AddDomainEvent(NewChangeRequestSubmittedEvent(request))

	return request, nil
}

// Approve marks the request approved by the given reviewer
func (r *ProductChangeRequest) Approve(reviewerID uuid.UUID) error {
	if !r.Status.CanTransitionTo(ChangeRequestStatusApproved) {
		return shared.NewDomainError("CONFLICT", "Change request has already been reviewed")
	}

	now := time.Now()
	r.Status = ChangeRequestStatusApproved
	r.ReviewedBy = &reviewerID
	r.ReviewedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewChangeRequestReviewedEvent(r))

	return nil
}

// Reject marks the request rejected with a mandatory reason
func (r *ProductChangeRequest) Reject(reviewerID uuid.UUID, reason string) error {
	if !r.Status.CanTransitionTo(ChangeRequestStatusRejected) {
		return shared.NewDomainError("CONFLICT", "Change request has already been reviewed")
	}
	if reason == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Reject reason is required")
	}

	now := time.Now()
	r.Status = ChangeRequestStatusRejected
	r.ReviewedBy = &reviewerID
	r.ReviewedAt = &now
	r.RejectReason = reason
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewChangeRequestReviewedEvent(r))

	return nil
}

// IsPending reports whether the request still awaits review
func (r *ProductChangeRequest) IsPending() bool {
	return r.Status == ChangeRequestStatusPending
}

// BelongsToSupplier checks requester ownership for cancellation.
// CREATE requests are owned via the payload supplier ID, UPDATE requests
// via the referenced product's supplier.
func (r *ProductChangeRequest) BelongsToSupplier(supplierID uuid.UUID, productSupplierID *uuid.UUID) bool {
	if r.ChangeType == ChangeTypeUpdate && productSupplierID != nil {
		return *productSupplierID == supplierID
	}
	owner, ok := r.PendingChanges.SupplierID()
	return ok && owner == supplierID
}

// CreatePatch extracts the product fields of a CREATE payload
func (r *ProductChangeRequest) CreatePatch() (name, category, material, spec, image string) {
	name, _ = r.PendingChanges.String("name")
	category, _ = r.PendingChanges.String("category")
	material, _ = r.PendingChanges.String("material")
	spec, _ = r.PendingChanges.String("spec")
	image, _ = r.PendingChanges.String("image")
	return
}
