package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings holds the business-wide configuration. Only one row exists.
type Settings struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	DefaultRatePerSqFt decimal.Decimal `gorm:"column:default_rate_per_sq_ft;type:decimal(10,2);not null" json:"defaultRatePerSqFt"`
	CompanyName        string          `gorm:"not null" json:"companyName"`
	CompanyAddress     *string         `json:"companyAddress"`
	CompanyPhone       *string         `json:"companyPhone"`
	TaxRate            decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"taxRate"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// TableName specifies the table name for Settings
func (Settings) TableName() string {
	return "settings"
}

// DefaultSettings returns the settings used before an administrator saves any.
func DefaultSettings() Settings {
	return Settings{
		DefaultRatePerSqFt: decimal.NewFromInt(100),
		CompanyName:        "My Billing Company",
		TaxRate:            decimal.Zero,
	}
}
