package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User         UserRepository
	Client       ClientRepository
	Project      ProjectRepository
	Bill         BillRepository
	Payment      PaymentRepository
	Rate         RateRepository
	PrintSetting PrintSettingRepository
	Settings     SettingsRepository
	Audit        AuditRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Client:       NewClientRepository(db),
		Project:      NewProjectRepository(db),
		Bill:         NewBillRepository(db),
		Payment:      NewPaymentRepository(db),
		Rate:         NewRateRepository(db),
		PrintSetting: NewPrintSettingRepository(db),
		Settings:     NewSettingsRepository(db),
		Audit:        NewAuditRepository(db),
	}
}
