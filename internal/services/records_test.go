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

func TestProjectService_Pricing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := testutil.CreateClient(t, env.db, "Acme", nil)

	project, err := env.services.Project.Create(ctx, env.admin, CreateProjectInput{
		Name:        "Storefront",
		Length:      dec("10"),
		Width:       dec("12"),
		RatePerSqFt: dec("25"),
		ClientID:    client.ID,
	})
	require.NoError(t, err)
	assertDecimal(t, "120", project.Area)
	assertDecimal(t, "3000", project.TotalAmount)

	stored, err := env.services.Project.Get(ctx, env.admin, project.ID)
	require.NoError(t, err)
	assertDecimal(t, "3000", stored.TotalAmount)
	require.NotNil(t, stored.Client)
	assert.Equal(t, "Acme", stored.Client.Name)
}

func TestProjectService_PricingRoundsToCents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := testutil.CreateClient(t, env.db, "Acme", nil)

	project, err := env.services.Project.Create(ctx, env.admin, CreateProjectInput{
		Name:        "Banner",
		Length:      dec("10.25"),
		Width:       dec("12.25"),
		RatePerSqFt: dec("25"),
		ClientID:    client.ID,
	})
	require.NoError(t, err)
	assertDecimal(t, "125.56", project.Area)
	assertDecimal(t, "3139", project.TotalAmount)

	stored, err := env.services.Project.Get(ctx, env.admin, project.ID)
	require.NoError(t, err)
	assertDecimal(t, "125.56", stored.Area)
	assertDecimal(t, "3139", stored.TotalAmount)

	_, err = env.services.Project.Create(ctx, env.admin, CreateProjectInput{
		Name:        "Banner",
		Length:      dec("10.255"),
		Width:       dec("12"),
		RatePerSqFt: dec("25"),
		ClientID:    client.ID,
	})
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestProjectService_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := testutil.CreateClient(t, env.db, "Acme", &env.admin.UserID)

	_, err := env.services.Project.Create(ctx, env.admin, CreateProjectInput{Name: "P", Length: dec("1"), Width: dec("0"), RatePerSqFt: dec("1"), ClientID: client.ID})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = env.services.Project.Create(ctx, env.admin, CreateProjectInput{Name: "P", Length: dec("1"), Width: dec("1"), RatePerSqFt: dec("1"), ClientID: 9999})
	assert.True(t, errors.Is(err, ErrNotFound))

	// the client belongs to the admin, so staff cannot attach projects to it
	_, err = env.services.Project.Create(ctx, env.staff, CreateProjectInput{Name: "P", Length: dec("1"), Width: dec("1"), RatePerSqFt: dec("1"), ClientID: client.ID})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestClientService_Ownership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	mine, err := env.services.Client.Create(ctx, env.staff, CreateClientInput{Name: "Mine", AssignedTo: &env.admin.UserID})
	require.NoError(t, err)
	require.NotNil(t, mine.AssignedTo)
	assert.Equal(t, env.staff.UserID, *mine.AssignedTo, "non-admins always own what they create")

	theirs, err := env.services.Client.Create(ctx, env.admin, CreateClientInput{Name: "Theirs"})
	require.NoError(t, err)
	assert.Equal(t, env.admin.UserID, *theirs.AssignedTo)

	assigned, err := env.services.Client.Create(ctx, env.admin, CreateClientInput{Name: "Assigned", AssignedTo: &env.staff.UserID})
	require.NoError(t, err)
	assert.Equal(t, env.staff.UserID, *assigned.AssignedTo)

	visible, err := env.services.Client.List(ctx, env.staff)
	require.NoError(t, err)
	names := make([]string, 0, len(visible))
	for _, c := range visible {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Assigned", "Mine"}, names)

	all, err := env.services.Client.List(ctx, env.admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = env.services.Client.Get(ctx, env.staff, theirs.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	// a client account sees its linked client record
	linked := Actor{UserID: 4242, Role: models.RoleClient, ClientID: &theirs.ID}
	got, err := env.services.Client.Get(ctx, linked, theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, "Theirs", got.Name)

	_, err = env.services.Client.Create(ctx, env.admin, CreateClientInput{Name: "   "})
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestBillService_ListScoped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := testutil.CreateClient(t, env.db, "Acme", nil)
	testutil.CreateBill(t, env.db, "S-1", 100, client.ID, &env.staff.UserID)
	testutil.CreateBill(t, env.db, "A-1", 100, client.ID, &env.admin.UserID)

	bills, err := env.services.Bill.List(ctx, env.staff)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, "S-1", bills[0].BillNumber)

	bills, err = env.services.Bill.List(ctx, env.admin)
	require.NoError(t, err)
	assert.Len(t, bills, 2)
}
