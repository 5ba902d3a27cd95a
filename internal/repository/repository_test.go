package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/billing-api/internal/models"
	"github.com/sjperalta/billing-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestScope_FiltersByAssignee(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repos := NewRepositories(db)

	alice := testutil.CreateUser(t, db, "alice@example.com", models.RoleUser)
	bob := testutil.CreateUser(t, db, "bob@example.com", models.RoleUser)

	aliceClient := testutil.CreateClient(t, db, "Acme", &alice.ID)
	bobClient := testutil.CreateClient(t, db, "Globex", &bob.ID)
	testutil.CreateBill(t, db, "A-1", 100, aliceClient.ID, &alice.ID)
	testutil.CreateBill(t, db, "B-1", 200, bobClient.ID, &bob.ID)

	bills, err := repos.Bill.List(ctx, OwnedBy(alice.ID, nil))
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, "A-1", bills[0].BillNumber)

	bills, err = repos.Bill.List(ctx, Unrestricted())
	require.NoError(t, err)
	assert.Len(t, bills, 2)

	clients, err := repos.Client.List(ctx, OwnedBy(bob.ID, nil))
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Globex", clients[0].Name)
	require.Len(t, clients[0].Bills, 1)

	// A linked client is visible even when assigned to someone else.
	clients, err = repos.Client.List(ctx, OwnedBy(bob.ID, &aliceClient.ID))
	require.NoError(t, err)
	assert.Len(t, clients, 2)

	aliceBills, err := repos.Bill.List(ctx, OwnedBy(alice.ID, nil))
	require.NoError(t, err)
	_, err = repos.Bill.FindByID(ctx, aliceBills[0].ID, OwnedBy(bob.ID, nil))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBillCreate_DuplicateNumber(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewBillRepository(db)
	client := testutil.CreateClient(t, db, "Acme", nil)

	first := &models.Bill{BillNumber: "INV-1", TotalAmount: decimal.NewFromInt(10), OutstandingAmount: decimal.NewFromInt(10), ClientID: client.ID}
	require.NoError(t, repo.Create(context.Background(), first))

	dup := &models.Bill{BillNumber: "INV-1", TotalAmount: decimal.NewFromInt(20), OutstandingAmount: decimal.NewFromInt(20), ClientID: client.ID}
	err := repo.Create(context.Background(), dup)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	var count int64
	require.NoError(t, db.Model(&models.Bill{}).Where("bill_number = ?", "INV-1").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSettle_WritesPaymentAndBill(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPaymentRepository(db)
	client := testutil.CreateClient(t, db, "Acme", nil)
	bill := testutil.CreateBill(t, db, "INV-7", 3000, client.ID, nil)

	payment, updated, err := repo.Settle(context.Background(), bill.ID, Unrestricted(), func(b *models.Bill) (*models.Payment, error) {
		b.PaidAmount = b.PaidAmount.Add(decimal.NewFromInt(1000))
		b.OutstandingAmount = b.TotalAmount.Sub(b.PaidAmount)
		b.Status = models.BillStatusPartial
		return &models.Payment{Amount: decimal.NewFromInt(1000)}, nil
	})
	require.NoError(t, err)
	assert.NotZero(t, payment.ID)
	assert.Equal(t, models.PaymentMethodCash, payment.Method)
	assert.Equal(t, models.BillStatusPartial, updated.Status)
	assert.True(t, updated.OutstandingAmount.Equal(decimal.NewFromInt(2000)))
	require.Len(t, updated.Payments, 1)
	require.NotNil(t, updated.Client)
	assert.Equal(t, "Acme", updated.Client.Name)
}

func TestSettle_RollsBackOnFailure(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPaymentRepository(db)
	client := testutil.CreateClient(t, db, "Acme", nil)
	bill := testutil.CreateBill(t, db, "INV-8", 500, client.ID, nil)

	boom := errors.New("bill update failed")
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:fail_bill_update", func(tx *gorm.DB) {
		if tx.Statement.Table == "bills" {
			_ = tx.AddError(boom)
		}
	}))

	_, _, err := repo.Settle(context.Background(), bill.ID, Unrestricted(), func(b *models.Bill) (*models.Payment, error) {
		b.PaidAmount = decimal.NewFromInt(500)
		b.OutstandingAmount = decimal.Zero
		b.Status = models.BillStatusPaid
		return &models.Payment{Amount: decimal.NewFromInt(500)}, nil
	})
	assert.ErrorIs(t, err, boom)

	var payments int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&payments).Error)
	assert.Zero(t, payments)

	var reloaded models.Bill
	require.NoError(t, db.First(&reloaded, bill.ID).Error)
	assert.Equal(t, models.BillStatusPending, reloaded.Status)
	assert.True(t, reloaded.PaidAmount.IsZero())
}

func TestSettle_OutOfScopeBill(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPaymentRepository(db)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleUser)
	client := testutil.CreateClient(t, db, "Acme", &owner.ID)
	bill := testutil.CreateBill(t, db, "INV-9", 500, client.ID, &owner.ID)

	_, _, err := repo.Settle(context.Background(), bill.ID, OwnedBy(owner.ID+100, nil), func(b *models.Bill) (*models.Payment, error) {
		t.Fatal("settle must not run for a bill outside the scope")
		return nil, nil
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBillStats(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewBillRepository(db)
	client := testutil.CreateClient(t, db, "Acme", nil)
	testutil.CreateBill(t, db, "S-1", 100, client.ID, nil)
	testutil.CreateBill(t, db, "S-2", 250, client.ID, nil)

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.CountByStatus[models.BillStatusPending])
	assert.Equal(t, int64(0), stats.CountByStatus[models.BillStatusPaid])
	assert.True(t, stats.TotalOutstanding.Equal(decimal.NewFromInt(350)))
}

func TestPrintSettingFindEffective(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPrintSettingRepository(db)
	ctx := context.Background()

	_, err := repo.FindEffective(ctx, testutil.Day(2026, 1, 10))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Create(ctx, &models.PrintSetting{RatePerSqm: decimal.NewFromInt(90), EffectiveDate: testutil.Day(2026, 1, 1)}))
	require.NoError(t, repo.Create(ctx, &models.PrintSetting{RatePerSqm: decimal.NewFromInt(120), EffectiveDate: testutil.Day(2026, 2, 1)}))

	got, err := repo.FindEffective(ctx, testutil.Day(2026, 1, 10))
	require.NoError(t, err)
	assert.True(t, got.RatePerSqm.Equal(decimal.NewFromInt(90)))

	got, err = repo.FindEffective(ctx, testutil.Day(2026, 3, 1))
	require.NoError(t, err)
	assert.True(t, got.RatePerSqm.Equal(decimal.NewFromInt(120)))
}
