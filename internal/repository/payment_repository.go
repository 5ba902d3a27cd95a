package repository

import (
	"context"

	"github.com/sjperalta/billing-api/internal/models"
	"gorm.io/gorm"
)

// SettleFunc applies a payment to a locked bill, mutating the bill in place,
// and returns the payment row to insert.
type SettleFunc func(bill *models.Bill) (*models.Payment, error)

// PaymentRepository defines the interface for payment data access
type PaymentRepository interface {
	List(ctx context.Context, scope Scope) ([]models.Payment, error)
	Settle(ctx context.Context, billID uint, scope Scope, settle SettleFunc) (*models.Payment, *models.Bill, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) List(ctx context.Context, scope Scope) ([]models.Payment, error) {
	var payments []models.Payment
	db := r.db.WithContext(ctx).Model(&models.Payment{})
	if !scope.All {
		db = scope.assigned(db.Joins("JOIN bills ON bills.id = payments.bill_id"), "bills")
	}
	err := db.
		Preload("Bill.Client").
		Preload("Bill.Project").
		Order("payments.payment_date DESC").
		Find(&payments).Error
	return payments, err
}

// Settle records a payment and the resulting bill balance atomically. The
// bill row stays locked from the read until commit, so concurrent payments
// against one bill are applied one after another.
func (r *paymentRepository) Settle(ctx context.Context, billID uint, scope Scope, settle SettleFunc) (*models.Payment, *models.Bill, error) {
	var (
		payment *models.Payment
		bill    *models.Bill
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := lockBill(tx, billID, scope)
		if err != nil {
			return err
		}

		payment, err = settle(locked)
		if err != nil {
			return err
		}
		payment.BillID = locked.ID

		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		if err := tx.Model(locked).Select(settlementColumns).Updates(locked).Error; err != nil {
			return err
		}

		bill, err = findBill(tx, billID, Unrestricted())
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return payment, bill, nil
}
