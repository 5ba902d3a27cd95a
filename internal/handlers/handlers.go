package handlers

import (
	"github.com/sjperalta/billing-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	User     *UserHandler
	Client   *ClientHandler
	Project  *ProjectHandler
	Bill     *BillHandler
	Payment  *PaymentHandler
	Rate     *RateHandler
	Settings *SettingsHandler
	Overview *OverviewHandler
	Audit    *AuditHandler
	Job      *JobHandler
}

// NewHandlers creates all handler instances. secureCookies marks session
// cookies Secure.
func NewHandlers(svcs *services.Services, secureCookies bool) *Handlers {
	RegisterValidators()

	return &Handlers{
		Health:   NewHealthHandler(),
		Auth:     NewAuthHandler(svcs.Auth, secureCookies),
		User:     NewUserHandler(svcs.User),
		Client:   NewClientHandler(svcs.Client),
		Project:  NewProjectHandler(svcs.Project),
		Bill:     NewBillHandler(svcs.Bill, svcs.Export),
		Payment:  NewPaymentHandler(svcs.Payment),
		Rate:     NewRateHandler(svcs.Rate),
		Settings: NewSettingsHandler(svcs.Settings),
		Overview: NewOverviewHandler(svcs.Overview, svcs.Export),
		Audit:    NewAuditHandler(svcs.Audit),
		Job:      NewJobHandler(svcs.Job),
	}
}
