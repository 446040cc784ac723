package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/packsource/backend/internal/domain/ordering"
)

// CreateOrderRequest represents a manufacturer placing a packaging order
type CreateOrderRequest struct {
	ManufacturerID   uuid.UUID `json:"manufacturerId" binding:"required"`
	ManufacturerName string    `json:"manufacturerName" binding:"required"`
	ProductID        uuid.UUID `json:"productId" binding:"required"`
	Quantity         int       `json:"quantity" binding:"required,gt=0"`
	ExpectedDate     string    `json:"expectedDate" binding:"required"`
	DesignFileURL    string    `json:"designFileUrl"`
}

// DecideOrderRequest represents the platform's audit decision
type DecideOrderRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	Reason string `json:"reason"`
}

// ShipOrderRequest carries the logistics details for a shipment.
// The shipped date is stamped server-side.
type ShipOrderRequest struct {
	Company              string `json:"company" binding:"required"`
	TrackingNumber       string `json:"trackingNumber" binding:"required"`
	EstimatedArrivalDate string `json:"estimatedArrivalDate" binding:"required"`
	BatchCode            string `json:"batchCode" binding:"required"`
}

// ListOrdersQuery contains query parameters for listing orders
type ListOrdersQuery struct {
	ManufacturerID *uuid.UUID `form:"manufacturerId"`
	ProductID      *uuid.UUID `form:"productId"`
	SupplierID     *uuid.UUID `form:"supplierId"`
	Status         string     `form:"status"`
	SortBy         string     `form:"sortBy"`
	SortOrder      string     `form:"sortOrder"`
	Page           int        `form:"page"`
	PageSize       int        `form:"pageSize"`
}

// LogisticsResponse represents shipment details in API responses
type LogisticsResponse struct {
	Company              string `json:"company"`
	TrackingNumber       string `json:"trackingNumber"`
	ShippedDate          string `json:"shippedDate"`
	EstimatedArrivalDate string `json:"estimatedArrivalDate"`
	BatchCode            string `json:"batchCode"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID               uuid.UUID          `json:"id"`
	ManufacturerID   uuid.UUID          `json:"manufacturerId"`
	ManufacturerName string             `json:"manufacturerName"`
	ProductID        uuid.UUID          `json:"productId"`
	ProductName      string             `json:"productName"`
	Quantity         int                `json:"quantity"`
	RequestDate      string             `json:"requestDate"`
	ExpectedDate     string             `json:"expectedDate"`
	Status           string             `json:"status"`
	RejectReason     string             `json:"rejectReason,omitempty"`
	ApprovedDate     string             `json:"approvedDate,omitempty"`
	DesignFileURL    string             `json:"designFileUrl,omitempty"`
	Logistics        *LogisticsResponse `json:"logistics,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

const dateLayout = "2006-01-02"

// ToOrderResponse converts a domain order to its API representation.
// Dates are rendered as plain calendar days, matching the frontend contract.
func ToOrderResponse(order *ordering.Order) OrderResponse {
	resp := OrderResponse{
		ID:               order.ID,
		ManufacturerID:   order.ManufacturerID,
		ManufacturerName: order.ManufacturerName,
		ProductID:        order.ProductID,
		ProductName:      order.ProductName,
		Quantity:         order.Quantity,
		RequestDate:      order.RequestDate.Format(dateLayout),
		ExpectedDate:     order.ExpectedDate.Format(dateLayout),
		Status:           string(order.Status),
		RejectReason:     order.RejectReason,
		DesignFileURL:    order.DesignFileURL,
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
	if order.ApprovedDate != nil {
		resp.ApprovedDate = order.ApprovedDate.Format(dateLayout)
	}
	if order.Logistics != nil {
		resp.Logistics = &LogisticsResponse{
			Company:              order.Logistics.Company,
			TrackingNumber:       order.Logistics.TrackingNumber,
			ShippedDate:          order.Logistics.ShippedDate.Format(dateLayout),
			EstimatedArrivalDate: order.Logistics.EstimatedArrivalDate.Format(dateLayout),
			BatchCode:            order.Logistics.BatchCode,
		}
	}
	return resp
}
