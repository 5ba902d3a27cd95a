package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bill is an invoice issued to a client, optionally for a project.
type Bill struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	BillNumber        string          `gorm:"uniqueIndex;not null" json:"billNumber"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	PaidAmount        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"paidAmount"`
	OutstandingAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"outstandingAmount"`
	Status            string          `gorm:"size:20;not null;default:PENDING;index" json:"status"`
	DueDate           *time.Time      `json:"dueDate"`
	PaidDate          *time.Time      `json:"paidDate"`
	Notes             *string         `gorm:"type:text" json:"notes"`
	ClientID          uint            `gorm:"not null;index" json:"clientId"`
	ProjectID         *uint           `gorm:"index" json:"projectId"`
	AssignedTo        *uint           `gorm:"index" json:"assignedTo"`
	CreatedAt         time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`

	// Associations
	Client   *Client   `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Project  *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Payments []Payment `gorm:"foreignKey:BillID" json:"payments,omitempty"`
}

// TableName specifies the table name for Bill
func (Bill) TableName() string {
	return "bills"
}

// BeforeCreate hook for setting defaults
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = BillStatusPending
	}
	return nil
}

// Bill status constants
const (
	BillStatusPending = "PENDING"
	BillStatusPartial = "PARTIAL"
	BillStatusPaid    = "PAID"
	BillStatusOverdue = "OVERDUE"
)

// BillStatuses lists every valid bill status.
var BillStatuses = []string{BillStatusPending, BillStatusPartial, BillStatusPaid, BillStatusOverdue}

// IsValidBillStatus reports whether status is a known bill status.
func IsValidBillStatus(status string) bool {
	for _, s := range BillStatuses {
		if s == status {
			return true
		}
	}
	return false
}
