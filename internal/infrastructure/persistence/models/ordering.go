package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/packsource/backend/internal/domain/ordering"
	"github.com/packsource/backend/internal/domain/shared"
)

// OrderModel is the persistence model for the Order domain entity.
// Manufacturer and product names are denormalized at creation time.
type OrderModel struct {
	AggregateModel
	ManufacturerID   uuid.UUID            `gorm:"type:uuid;not null;index"`
	ManufacturerName string               `gorm:"type:varchar(100);not null"`
	ProductID        uuid.UUID            `gorm:"type:uuid;not null;index"`
	ProductName      string               `gorm:"type:varchar(200);not null"`
	Quantity         int                  `gorm:"not null"`
	RequestDate      time.Time            `gorm:"not null"`
	ExpectedDate     time.Time            `gorm:"not null"`
	Status           ordering.OrderStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	RejectReason     string               `gorm:"type:text"`
	ApprovedDate     *time.Time
	DesignFileURL    string          `gorm:"type:text"`
	Logistics        *LogisticsModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// LogisticsModel is the persistence model for an order's shipment record.
// One row per order.
type LogisticsModel struct {
	BaseModel
	OrderID              uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Company              string    `gorm:"type:varchar(100);not null"`
	TrackingNumber       string    `gorm:"type:varchar(100);not null"`
	ShippedDate          time.Time `gorm:"not null"`
	EstimatedArrivalDate time.Time `gorm:"not null"`
	BatchCode            string    `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (LogisticsModel) TableName() string {
	return "logistics"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *ordering.Order {
	order := &ordering.Order{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		ManufacturerID:   m.ManufacturerID,
		ManufacturerName: m.ManufacturerName,
		ProductID:        m.ProductID,
		ProductName:      m.ProductName,
		Quantity:         m.Quantity,
		RequestDate:      m.RequestDate,
		ExpectedDate:     m.ExpectedDate,
		Status:           m.Status,
		RejectReason:     m.RejectReason,
		ApprovedDate:     m.ApprovedDate,
		DesignFileURL:    m.DesignFileURL,
	}
	if m.Logistics != nil {
		order.Logistics = &ordering.Logistics{
			Company:              m.Logistics.Company,
			TrackingNumber:       m.Logistics.TrackingNumber,
			ShippedDate:          m.Logistics.ShippedDate,
			EstimatedArrivalDate: m.Logistics.EstimatedArrivalDate,
			BatchCode:            m.Logistics.BatchCode,
		}
	}
	return order
}

// FromDomain populates the persistence model from a domain Order entity.
// The logistics child is handled separately by the repository.
func (m *OrderModel) FromDomain(o *ordering.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.ManufacturerID = o.ManufacturerID
	m.ManufacturerName = o.ManufacturerName
	m.ProductID = o.ProductID
	m.ProductName = o.ProductName
	m.Quantity = o.Quantity
	m.RequestDate = o.RequestDate
	m.ExpectedDate = o.ExpectedDate
	m.Status = o.Status
	m.RejectReason = o.RejectReason
	m.ApprovedDate = o.ApprovedDate
	m.DesignFileURL = o.DesignFileURL
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *ordering.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// LogisticsModelFromDomain creates a logistics row for an order's shipment.
func LogisticsModelFromDomain(orderID uuid.UUID, l *ordering.Logistics) *LogisticsModel {
	now := time.Now()
	return &LogisticsModel{
		BaseModel: BaseModel{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderID:              orderID,
		Company:              l.Company,
		TrackingNumber:       l.TrackingNumber,
		ShippedDate:          l.ShippedDate,
		EstimatedArrivalDate: l.EstimatedArrivalDate,
		BatchCode:            l.BatchCode,
	}
}
