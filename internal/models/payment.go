package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is money received against a bill.
type Payment struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	BillID      uint            `gorm:"not null;index" json:"billId"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentDate time.Time       `gorm:"not null;index" json:"paymentDate"`
	Method      string          `gorm:"size:20;not null;default:CASH" json:"method"`
	Notes       *string         `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	// Associations
	Bill *Bill `gorm:"foreignKey:BillID" json:"bill,omitempty"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// BeforeCreate hook for setting defaults
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.Method == "" {
		p.Method = PaymentMethodCash
	}
	if p.PaymentDate.IsZero() {
		p.PaymentDate = time.Now()
	}
	return nil
}

// Payment method constants
const (
	PaymentMethodCash         = "CASH"
	PaymentMethodBankTransfer = "BANK_TRANSFER"
	PaymentMethodCheque       = "CHEQUE"
	PaymentMethodOnline       = "ONLINE"
)

// PaymentMethods lists every accepted payment method.
var PaymentMethods = []string{PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCheque, PaymentMethodOnline}

// IsValidPaymentMethod reports whether method is an accepted payment method.
func IsValidPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}
