package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project is a printing job measured by area and priced per square foot.
type Project struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Length      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"length"`
	Width       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"width"`
	Area        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"area"`
	RatePerSqFt decimal.Decimal `gorm:"column:rate_per_sq_ft;type:decimal(10,2);not null" json:"ratePerSqFt"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	Description *string         `gorm:"type:text" json:"description"`
	ClientID    uint            `gorm:"not null;index" json:"clientId"`
	AssignedTo  *uint           `gorm:"index" json:"assignedTo"`
	CreatedAt   time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	// Associations
	Client *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Bills  []Bill  `gorm:"foreignKey:ProjectID" json:"bills,omitempty"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "projects"
}

// Price fills Area and TotalAmount from the dimensions and rate. Both are
// rounded to cents, and the total is priced from the rounded area.
func (p *Project) Price() {
	p.Area = p.Length.Mul(p.Width).Round(2)
	p.TotalAmount = p.Area.Mul(p.RatePerSqFt).Round(2)
}
