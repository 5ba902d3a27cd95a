package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sjperalta/billing-api/internal/models"
	"github.com/sjperalta/billing-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentService_PartialThenPaid(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	client := testutil.CreateClient(t, env.db, "Acme", &env.admin.UserID)
	bill := testutil.CreateBill(t, env.db, "B-1", 3000, client.ID, &env.admin.UserID)

	first, err := env.services.Payment.Record(ctx, env.admin, RecordPaymentInput{BillID: bill.ID, Amount: dec("1500")})
	require.NoError(t, err)
	assert.Equal(t, models.BillStatusPartial, first.Bill.Status)
	assertDecimal(t, "1500", first.Bill.PaidAmount)
	assertDecimal(t, "1500", first.Bill.OutstandingAmount)
	assert.Nil(t, first.Bill.PaidDate)
	assert.Equal(t, models.PaymentMethodCash, first.Payment.Method)

	second, err := env.services.Payment.Record(ctx, env.admin, RecordPaymentInput{
		BillID: bill.ID,
		Amount: dec("1500"),
		Method: models.PaymentMethodBankTransfer,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BillStatusPaid, second.Bill.Status)
	assertDecimal(t, "3000", second.Bill.PaidAmount)
	assertDecimal(t, "0", second.Bill.OutstandingAmount)
	assert.NotNil(t, second.Bill.PaidDate)
	assert.Len(t, second.Bill.Payments, 2)

	payments, err := env.services.Payment.List(ctx, env.admin)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}

func TestPaymentService_OutstandingInvariant(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	client := testutil.CreateClient(t, env.db, "Acme", nil)
	bill := testutil.CreateBill(t, env.db, "B-1", 1000, client.ID, nil)

	for _, amount := range []string{"120.50", "79.50", "300", "600"} {
		result, err := env.services.Payment.Record(ctx, env.admin, RecordPaymentInput{BillID: bill.ID, Amount: dec(amount)})
		require.NoError(t, err)
		assert.True(t, result.Bill.OutstandingAmount.Equal(result.Bill.TotalAmount.Sub(result.Bill.PaidAmount)))
	}

	var stored models.Bill
	require.NoError(t, env.db.First(&stored, bill.ID).Error)
	assertDecimal(t, "1100", stored.PaidAmount)
	assertDecimal(t, "-100", stored.OutstandingAmount)
	assert.Equal(t, models.BillStatusPaid, stored.Status)
}

func TestPaymentService_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	client := testutil.CreateClient(t, env.db, "Acme", nil)
	bill := testutil.CreateBill(t, env.db, "B-1", 1000, client.ID, nil)

	tests := []struct {
		name  string
		input RecordPaymentInput
		kind  error
	}{
		{"missing amount", RecordPaymentInput{BillID: bill.ID}, ErrValidation},
		{"missing bill", RecordPaymentInput{Amount: dec("10")}, ErrValidation},
		{"zero amount", RecordPaymentInput{BillID: bill.ID, Amount: dec("0")}, ErrValidation},
		{"negative amount", RecordPaymentInput{BillID: bill.ID, Amount: dec("-5")}, ErrValidation},
		{"sub-cent amount", RecordPaymentInput{BillID: bill.ID, Amount: dec("0.005")}, ErrValidation},
		{"bad method", RecordPaymentInput{BillID: bill.ID, Amount: dec("5"), Method: "BARTER"}, ErrValidation},
		{"bad date", RecordPaymentInput{BillID: bill.ID, Amount: dec("5"), PaymentDate: "yesterday"}, ErrValidation},
		{"unknown bill", RecordPaymentInput{BillID: 9999, Amount: dec("5")}, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.services.Payment.Record(ctx, env.admin, tt.input)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}

	var count int64
	require.NoError(t, env.db.Model(&models.Payment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPaymentService_Ownership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	client := testutil.CreateClient(t, env.db, "Acme", &env.admin.UserID)
	bill := testutil.CreateBill(t, env.db, "B-1", 1000, client.ID, &env.admin.UserID)

	_, err := env.services.Payment.Record(ctx, env.staff, RecordPaymentInput{BillID: bill.ID, Amount: dec("100")})
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = env.services.Payment.Record(ctx, env.admin, RecordPaymentInput{BillID: bill.ID, Amount: dec("100"), PaymentDate: "2024-03-01"})
	require.NoError(t, err)

	own, err := env.services.Payment.List(ctx, env.staff)
	require.NoError(t, err)
	assert.Empty(t, own)

	all, err := env.services.Payment.List(ctx, env.admin)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, testutil.Day(2024, 3, 1).Equal(all[0].PaymentDate))
}

func TestPaymentService_ConcurrentPaymentsSerialize(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	client := testutil.CreateClient(t, env.db, "Acme", nil)
	bill := testutil.CreateBill(t, env.db, "B-1", 3000, client.ID, nil)

	const payers = 20
	var wg sync.WaitGroup
	errs := make(chan error, payers)
	for i := 0; i < payers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.services.Payment.Record(ctx, env.admin, RecordPaymentInput{BillID: bill.ID, Amount: dec("100")})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var stored models.Bill
	require.NoError(t, env.db.First(&stored, bill.ID).Error)
	assertDecimal(t, "2000", stored.PaidAmount)
	assertDecimal(t, "1000", stored.OutstandingAmount)
	assert.Equal(t, models.BillStatusPartial, stored.Status)

	var count int64
	require.NoError(t, env.db.Model(&models.Payment{}).Where("bill_id = ?", bill.ID).Count(&count).Error)
	assert.Equal(t, int64(payers), count)
}
