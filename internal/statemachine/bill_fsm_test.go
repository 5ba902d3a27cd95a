package statemachine

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/billing-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBill(total, paid int64, status string) *models.Bill {
	return &models.Bill{
		BillNumber:        "INV-001",
		TotalAmount:       decimal.NewFromInt(total),
		PaidAmount:        decimal.NewFromInt(paid),
		OutstandingAmount: decimal.NewFromInt(total - paid),
		Status:            status,
	}
}

func TestBillFSM_ApplyPayment_PartialThenPaid(t *testing.T) {
	ctx := context.Background()
	bill := newBill(3000, 0, models.BillStatusPending)
	f := NewBillFSM(bill)

	require.NoError(t, f.ApplyPayment(ctx, decimal.NewFromInt(1500)))
	assert.Equal(t, models.BillStatusPartial, bill.Status)
	assert.True(t, bill.PaidAmount.Equal(decimal.NewFromInt(1500)))
	assert.True(t, bill.OutstandingAmount.Equal(decimal.NewFromInt(1500)))
	assert.Nil(t, bill.PaidDate)

	require.NoError(t, f.ApplyPayment(ctx, decimal.NewFromInt(1500)))
	assert.Equal(t, models.BillStatusPaid, bill.Status)
	assert.True(t, bill.OutstandingAmount.IsZero())
	require.NotNil(t, bill.PaidDate)
	assert.WithinDuration(t, time.Now(), *bill.PaidDate, time.Second)
}

func TestBillFSM_ApplyPayment_Overpayment(t *testing.T) {
	bill := newBill(100, 0, models.BillStatusPending)
	f := NewBillFSM(bill)

	require.NoError(t, f.ApplyPayment(context.Background(), decimal.NewFromInt(150)))
	assert.Equal(t, models.BillStatusPaid, bill.Status)
	assert.True(t, bill.OutstandingAmount.Equal(decimal.NewFromInt(-50)))
}

func TestBillFSM_ApplyPayment_OverdueBecomesPartial(t *testing.T) {
	bill := newBill(1000, 0, models.BillStatusOverdue)
	f := NewBillFSM(bill)

	require.NoError(t, f.ApplyPayment(context.Background(), decimal.NewFromInt(200)))
	assert.Equal(t, models.BillStatusPartial, bill.Status)
}

func TestBillFSM_OverdueNotAllowedFromPaid(t *testing.T) {
	bill := newBill(1000, 1000, models.BillStatusPaid)
	f := NewBillFSM(bill)

	err := f.TransitionTo(context.Background(), models.BillStatusOverdue)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, models.BillStatusPaid, bill.Status)
	assert.Equal(t, models.BillStatusPaid, f.Current())
}

func TestBillFSM_TransitionTo_UnknownStatus(t *testing.T) {
	f := NewBillFSM(newBill(10, 0, models.BillStatusPending))
	assert.ErrorIs(t, f.TransitionTo(context.Background(), "VOID"), ErrInvalidTransition)
}

func TestBillFSM_SetPaidAmount(t *testing.T) {
	tests := []struct {
		name   string
		paid   int64
		status string
	}{
		{"nothing paid", 0, models.BillStatusPending},
		{"some paid", 400, models.BillStatusPartial},
		{"fully paid", 1000, models.BillStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bill := newBill(1000, 500, models.BillStatusPartial)
			f := NewBillFSM(bill)

			require.NoError(t, f.SetPaidAmount(context.Background(), decimal.NewFromInt(tt.paid)))
			assert.Equal(t, tt.status, bill.Status)
			assert.True(t, bill.OutstandingAmount.Equal(decimal.NewFromInt(1000-tt.paid)))
		})
	}
}

func TestDerivedStatus(t *testing.T) {
	total := decimal.NewFromInt(3000)
	assert.Equal(t, models.BillStatusPending, DerivedStatus(decimal.Zero, total))
	assert.Equal(t, models.BillStatusPartial, DerivedStatus(decimal.NewFromInt(1), total))
	assert.Equal(t, models.BillStatusPaid, DerivedStatus(total, total))
	assert.Equal(t, models.BillStatusPaid, DerivedStatus(decimal.NewFromInt(3500), total))
}

func TestSettledStatus_ZeroPaymentKeepsStatus(t *testing.T) {
	got := SettledStatus(models.BillStatusOverdue, decimal.Zero, decimal.NewFromInt(10))
	assert.Equal(t, models.BillStatusOverdue, got)
}
