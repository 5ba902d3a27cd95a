// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/billing-api/internal/database"
	"github.com/sjperalta/billing-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var nameReplacer = strings.NewReplacer("/", "_", " ", "_", "#", "_")

// NewDB returns a migrated in-memory SQLite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", nameReplacer.Replace(t.Name()))
	db, err := database.Connect(dsn, "test")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a user with the given role.
func CreateUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x", FullName: email, Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateClient inserts a client assigned to owner (nil for unassigned).
func CreateClient(t *testing.T, db *gorm.DB, name string, owner *uint) *models.Client {
	t.Helper()
	client := &models.Client{Name: name, AssignedTo: owner}
	require.NoError(t, db.Create(client).Error)
	return client
}

// CreateBill inserts an unpaid bill for client.
func CreateBill(t *testing.T, db *gorm.DB, number string, total int64, clientID uint, owner *uint) *models.Bill {
	t.Helper()
	bill := &models.Bill{
		BillNumber:        number,
		TotalAmount:       decimal.NewFromInt(total),
		PaidAmount:        decimal.Zero,
		OutstandingAmount: decimal.NewFromInt(total),
		Status:            models.BillStatusPending,
		ClientID:          clientID,
		AssignedTo:        owner,
	}
	require.NoError(t, db.Create(bill).Error)
	return bill
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Day returns midnight UTC on the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
