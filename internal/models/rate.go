package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rate is the price per square meter for a print material.
type Rate struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	RateType       string          `gorm:"size:20;uniqueIndex;not null" json:"rateType"`
	RatePerSqMeter decimal.Decimal `gorm:"column:rate_per_sq_meter;type:decimal(10,2);not null" json:"ratePerSqMeter"`
	Description    *string         `gorm:"type:text" json:"description"`
	CreatedBy      *uint           `json:"createdBy"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// TableName specifies the table name for Rate
func (Rate) TableName() string {
	return "rates"
}

// Rate type constants
const (
	RateTypeChine = "CHINE"
	RateTypeStar  = "STAR"
)

// RateTypes lists the supported rate types.
var RateTypes = []string{RateTypeChine, RateTypeStar}

// IsValidRateType reports whether rateType is supported.
func IsValidRateType(rateType string) bool {
	return rateType == RateTypeChine || rateType == RateTypeStar
}

// PrintSetting is one entry of the dated print rate history. The rate in
// force on a day is the latest entry whose EffectiveDate is not after it.
type PrintSetting struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	RatePerSqm    decimal.Decimal `gorm:"column:rate_per_sqm;type:decimal(10,2);not null" json:"ratePerSqm"`
	EffectiveDate time.Time       `gorm:"type:date;not null;index" json:"effectiveDate"`
	CreatedBy     *uint           `json:"createdBy"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// TableName specifies the table name for PrintSetting
func (PrintSetting) TableName() string {
	return "print_settings"
}

// DefaultPrintRate applies when no print setting is in force.
var DefaultPrintRate = decimal.NewFromInt(100)
