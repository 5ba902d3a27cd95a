package services

import (
	"github.com/sjperalta/billing-api/internal/jobs"
	"github.com/sjperalta/billing-api/internal/repository"
	"github.com/sjperalta/billing-api/internal/session"
)

// Services holds all service instances
type Services struct {
	Auth     *AuthService
	User     *UserService
	Client   *ClientService
	Project  *ProjectService
	Bill     *BillService
	Payment  *PaymentService
	Rate     *RateService
	Settings *SettingsService
	Overview *OverviewService
	Export   *ExportService
	Audit    *AuditService
	Job      *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, sessions *session.Manager) *Services {
	auditSvc := NewAuditService(repos.Audit, worker)
	authSvc := NewAuthService(repos.User, sessions, auditSvc)
	billSvc := NewBillService(repos.Bill, repos.Client, repos.Project, auditSvc)
	settingsSvc := NewSettingsService(repos.Settings, auditSvc)
	overviewSvc := NewOverviewService(repos.Client)

	return &Services{
		Auth:     authSvc,
		User:     NewUserService(repos.User, authSvc, auditSvc),
		Client:   NewClientService(repos.Client, auditSvc),
		Project:  NewProjectService(repos.Project, repos.Client, auditSvc),
		Bill:     billSvc,
		Payment:  NewPaymentService(repos.Payment, auditSvc),
		Rate:     NewRateService(repos.Rate, repos.PrintSetting, auditSvc),
		Settings: settingsSvc,
		Overview: overviewSvc,
		Export:   NewExportService(overviewSvc, billSvc, settingsSvc),
		Audit:    auditSvc,
		Job:      NewJobService(worker),
	}
}
