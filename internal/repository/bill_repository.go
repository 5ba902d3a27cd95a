package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/billing-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BillRepository defines the interface for bill data access
type BillRepository interface {
	FindByID(ctx context.Context, id uint, scope Scope) (*models.Bill, error)
	Create(ctx context.Context, bill *models.Bill) error
	List(ctx context.Context, scope Scope) ([]models.Bill, error)
	Update(ctx context.Context, id uint, mutate func(bill *models.Bill) error) (*models.Bill, error)
	Stats(ctx context.Context) (*models.BillStats, error)
}

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) BillRepository {
	return &billRepository{db: db}
}

// settlementColumns are the columns written when a bill is settled or overridden.
var settlementColumns = []string{"PaidAmount", "OutstandingAmount", "Status", "PaidDate", "UpdatedAt"}

func withBillDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Client").
		Preload("Project").
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("payments.payment_date DESC") })
}

func (r *billRepository) FindByID(ctx context.Context, id uint, scope Scope) (*models.Bill, error) {
	return findBill(r.db.WithContext(ctx), id, scope)
}

func findBill(db *gorm.DB, id uint, scope Scope) (*models.Bill, error) {
	var bill models.Bill
	err := withBillDetails(scope.assigned(db.Model(&models.Bill{}), "bills")).First(&bill, id).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *billRepository) Create(ctx context.Context, bill *models.Bill) error {
	return translate(r.db.WithContext(ctx).Create(bill).Error)
}

func (r *billRepository) List(ctx context.Context, scope Scope) ([]models.Bill, error) {
	var bills []models.Bill
	err := withBillDetails(scope.assigned(r.db.WithContext(ctx).Model(&models.Bill{}), "bills")).
		Order("bills.created_at DESC").
		Find(&bills).Error
	return bills, err
}

// Update locks the bill, lets mutate change it and writes the settlement
// columns back in one transaction.
func (r *billRepository) Update(ctx context.Context, id uint, mutate func(bill *models.Bill) error) (*models.Bill, error) {
	var updated *models.Bill
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bill, err := lockBill(tx, id, Unrestricted())
		if err != nil {
			return err
		}
		if err := mutate(bill); err != nil {
			return err
		}
		if err := tx.Model(bill).Select(settlementColumns).Updates(bill).Error; err != nil {
			return err
		}
		updated, err = findBill(tx, id, Unrestricted())
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// lockBill reads a bill with a row lock held until the transaction ends.
// SQLite ignores the locking clause and serializes writers instead.
func lockBill(tx *gorm.DB, id uint, scope Scope) (*models.Bill, error) {
	var bill models.Bill
	err := scope.assigned(tx.Model(&models.Bill{}), "bills").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&bill, id).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *billRepository) Stats(ctx context.Context) (*models.BillStats, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	if err := r.db.WithContext(ctx).Model(&models.Bill{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	var outstanding []decimal.Decimal
	if err := r.db.WithContext(ctx).Model(&models.Bill{}).
		Where("status <> ?", models.BillStatusPaid).
		Pluck("outstanding_amount", &outstanding).Error; err != nil {
		return nil, err
	}

	stats := &models.BillStats{
		CountByStatus:    make(map[string]int64, len(models.BillStatuses)),
		TotalOutstanding: decimal.Zero,
	}
	for _, status := range models.BillStatuses {
		stats.CountByStatus[status] = 0
	}
	for _, c := range counts {
		stats.CountByStatus[c.Status] = c.Count
	}
	for _, amount := range outstanding {
		stats.TotalOutstanding = stats.TotalOutstanding.Add(amount)
	}
	return stats, nil
}
