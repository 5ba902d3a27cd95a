package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sjperalta/billing-api/internal/models"
	"github.com/sjperalta/billing-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	client, err := env.services.Client.Create(ctx, env.staff, CreateClientInput{Name: "Acme"})
	require.NoError(t, err)

	bill, err := env.services.Bill.Create(ctx, env.staff, CreateBillInput{
		BillNumber:  "INV-001",
		TotalAmount: dec("2500.75"),
		DueDate:     "2024-06-30",
		ClientID:    client.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BillStatusPending, bill.Status)
	assertDecimal(t, "0", bill.PaidAmount)
	assertDecimal(t, "2500.75", bill.OutstandingAmount)
	require.NotNil(t, bill.AssignedTo)
	assert.Equal(t, env.staff.UserID, *bill.AssignedTo)
	require.NotNil(t, bill.Client)
	assert.Equal(t, "Acme", bill.Client.Name)
	require.NotNil(t, bill.DueDate)
	assert.True(t, testutil.Day(2024, 6, 30).Equal(*bill.DueDate))
}

func TestBillService_DuplicateNumber(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	client := testutil.CreateClient(t, env.db, "Acme", nil)
	input := CreateBillInput{BillNumber: "INV-001", TotalAmount: dec("100"), ClientID: client.ID}

	_, err := env.services.Bill.Create(ctx, env.admin, input)
	require.NoError(t, err)

	_, err = env.services.Bill.Create(ctx, env.admin, input)
	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.EqualError(t, err, "Bill number already exists")

	var count int64
	require.NoError(t, env.db.Model(&models.Bill{}).Where("bill_number = ?", "INV-001").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestBillService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	acme := testutil.CreateClient(t, env.db, "Acme", nil)
	other := testutil.CreateClient(t, env.db, "Other", nil)
	project, err := env.services.Project.Create(ctx, env.admin, CreateProjectInput{
		Name: "Banner", Length: dec("2"), Width: dec("3"), RatePerSqFt: dec("10"), ClientID: other.ID,
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input CreateBillInput
		kind  error
	}{
		{"missing number", CreateBillInput{TotalAmount: dec("10"), ClientID: acme.ID}, ErrValidation},
		{"missing total", CreateBillInput{BillNumber: "X", ClientID: acme.ID}, ErrValidation},
		{"negative total", CreateBillInput{BillNumber: "X", TotalAmount: dec("-1"), ClientID: acme.ID}, ErrValidation},
		{"sub-cent total", CreateBillInput{BillNumber: "X", TotalAmount: dec("10.005"), ClientID: acme.ID}, ErrValidation},
		{"sub-cent outstanding", CreateBillInput{BillNumber: "X", TotalAmount: dec("10"), OutstandingAmount: dec("9.999"), ClientID: acme.ID}, ErrValidation},
		{"bad due date", CreateBillInput{BillNumber: "X", TotalAmount: dec("10"), ClientID: acme.ID, DueDate: "soon"}, ErrValidation},
		{"unknown client", CreateBillInput{BillNumber: "X", TotalAmount: dec("10"), ClientID: 9999}, ErrNotFound},
		{"unknown project", CreateBillInput{BillNumber: "X", TotalAmount: dec("10"), ClientID: acme.ID, ProjectID: testutil.Ptr(uint(9999))}, ErrNotFound},
		{"foreign project", CreateBillInput{BillNumber: "X", TotalAmount: dec("10"), ClientID: acme.ID, ProjectID: &project.ID}, ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.services.Bill.Create(ctx, env.admin, tt.input)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestBillService_OverrideStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := testutil.CreateClient(t, env.db, "Acme", nil)

	t.Run("admin only", func(t *testing.T) {
		bill := testutil.CreateBill(t, env.db, "O-1", 3000, client.ID, &env.staff.UserID)
		_, err := env.services.Bill.OverrideStatus(ctx, env.staff, bill.ID, OverrideInput{Status: models.BillStatusPaid})
		assert.True(t, errors.Is(err, ErrForbidden))
	})

	t.Run("paid stamps paid date", func(t *testing.T) {
		bill := testutil.CreateBill(t, env.db, "O-2", 3000, client.ID, nil)
		updated, err := env.services.Bill.OverrideStatus(ctx, env.admin, bill.ID, OverrideInput{Status: models.BillStatusPaid})
		require.NoError(t, err)
		assert.Equal(t, models.BillStatusPaid, updated.Status)
		assert.NotNil(t, updated.PaidDate)

		var payments int64
		require.NoError(t, env.db.Model(&models.Payment{}).Where("bill_id = ?", bill.ID).Count(&payments).Error)
		assert.Zero(t, payments)
	})

	t.Run("paid cannot become overdue", func(t *testing.T) {
		bill := testutil.CreateBill(t, env.db, "O-3", 3000, client.ID, nil)
		_, err := env.services.Bill.OverrideStatus(ctx, env.admin, bill.ID, OverrideInput{Status: models.BillStatusPaid})
		require.NoError(t, err)

		_, err = env.services.Bill.OverrideStatus(ctx, env.admin, bill.ID, OverrideInput{Status: models.BillStatusOverdue})
		assert.True(t, errors.Is(err, ErrInvalidState))
	})

	t.Run("paid amount derives status", func(t *testing.T) {
		bill := testutil.CreateBill(t, env.db, "O-4", 3000, client.ID, nil)
		updated, err := env.services.Bill.OverrideStatus(ctx, env.admin, bill.ID, OverrideInput{
			Status:     models.BillStatusPaid,
			PaidAmount: dec("1000"),
		})
		require.NoError(t, err)
		assert.Equal(t, models.BillStatusPartial, updated.Status)
		assertDecimal(t, "1000", updated.PaidAmount)
		assertDecimal(t, "2000", updated.OutstandingAmount)

		updated, err = env.services.Bill.OverrideStatus(ctx, env.admin, bill.ID, OverrideInput{PaidAmount: dec("0")})
		require.NoError(t, err)
		assert.Equal(t, models.BillStatusPending, updated.Status)
	})

	t.Run("invalid input", func(t *testing.T) {
		bill := testutil.CreateBill(t, env.db, "O-5", 3000, client.ID, nil)
		_, err := env.services.Bill.OverrideStatus(ctx, env.admin, bill.ID, OverrideInput{})
		assert.True(t, errors.Is(err, ErrValidation))
		_, err = env.services.Bill.OverrideStatus(ctx, env.admin, bill.ID, OverrideInput{Status: "VOID"})
		assert.True(t, errors.Is(err, ErrValidation))
		_, err = env.services.Bill.OverrideStatus(ctx, env.admin, bill.ID, OverrideInput{PaidAmount: dec("1.005")})
		assert.True(t, errors.Is(err, ErrValidation))
		_, err = env.services.Bill.OverrideStatus(ctx, env.admin, 9999, OverrideInput{Status: models.BillStatusPaid})
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestBillService_RefreshMetrics(t *testing.T) {
	env := newTestEnv(t)
	client := testutil.CreateClient(t, env.db, "Acme", nil)
	testutil.CreateBill(t, env.db, "M-1", 500, client.ID, nil)

	assert.NoError(t, env.services.Bill.RefreshMetrics(context.Background()))
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("")
	assert.NoError(t, err)
	assert.Nil(t, d)

	d, err = parseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, testutil.Day(2024, 2, 29), *d)

	d, err = parseDate("2024-02-29T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Hour())

	_, err = parseDate("29/02/2024")
	assert.Error(t, err)
}
