package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/billing-api/internal/jobs"
	"github.com/sjperalta/billing-api/internal/models"
	"github.com/sjperalta/billing-api/internal/repository"
	"github.com/sjperalta/billing-api/internal/session"
	"github.com/sjperalta/billing-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	worker   *jobs.Worker
	services *Services
	admin    Actor
	staff    Actor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	worker := jobs.NewWorker(1)
	t.Cleanup(worker.Shutdown)

	admin := testutil.CreateUser(t, db, "admin@example.com", models.RoleAdmin)
	staff := testutil.CreateUser(t, db, "staff@example.com", models.RoleUser)

	return &testEnv{
		db:       db,
		worker:   worker,
		services: NewServices(repository.NewRepositories(db), worker, session.NewManager("test-secret", time.Hour)),
		admin:    Actor{UserID: admin.ID, Role: admin.Role},
		staff:    Actor{UserID: staff.ID, Role: staff.Role},
	}
}

func dec(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}
