package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/billing-api/internal/models"
	"github.com/sjperalta/billing-api/internal/repository"
)

var hundred = decimal.NewFromInt(100)

// OverviewService builds the administrator report across all clients
type OverviewService struct {
	clientRepo repository.ClientRepository
}

// NewOverviewService creates a new overview service
func NewOverviewService(clientRepo repository.ClientRepository) *OverviewService {
	return &OverviewService{clientRepo: clientRepo}
}

// Get returns every client with its records, a summary per client and the
// totals across clients.
func (s *OverviewService) Get(ctx context.Context, actor Actor) (*models.Overview, error) {
	if err := actor.requireAdmin(); err != nil {
		return nil, err
	}

	clients, err := s.clientRepo.List(ctx, repository.Unrestricted())
	if err != nil {
		return nil, err
	}

	overview := &models.Overview{
		Clients: make([]models.ClientOverview, 0, len(clients)),
		Totals: models.OverviewTotals{
			TotalClients:     len(clients),
			TotalArea:        decimal.Zero,
			TotalAmount:      decimal.Zero,
			TotalPaid:        decimal.Zero,
			TotalOutstanding: decimal.Zero,
		},
	}

	for _, client := range clients {
		summary := Summarize(&client)
		overview.Clients = append(overview.Clients, models.ClientOverview{Client: client, Summary: summary})

		totals := &overview.Totals
		totals.TotalProjects += summary.TotalProjects
		totals.TotalBills += summary.TotalBills
		totals.TotalArea = totals.TotalArea.Add(summary.TotalArea)
		totals.TotalAmount = totals.TotalAmount.Add(summary.TotalAmount)
		totals.TotalPaid = totals.TotalPaid.Add(summary.PaidAmount)
		totals.TotalOutstanding = totals.TotalOutstanding.Add(summary.OutstandingAmount)
	}

	return overview, nil
}

// Summarize aggregates a client's preloaded projects and bills. Area comes
// from projects; amounts and status counts come from bills.
func Summarize(client *models.Client) models.ClientSummary {
	summary := models.ClientSummary{
		TotalProjects:     len(client.Projects),
		TotalBills:        len(client.Bills),
		TotalArea:         decimal.Zero,
		TotalAmount:       decimal.Zero,
		PaidAmount:        decimal.Zero,
		OutstandingAmount: decimal.Zero,
		PaymentPercentage: decimal.Zero,
	}

	for _, project := range client.Projects {
		summary.TotalArea = summary.TotalArea.Add(project.Area)
	}

	for _, bill := range client.Bills {
		summary.TotalAmount = summary.TotalAmount.Add(bill.TotalAmount)
		summary.PaidAmount = summary.PaidAmount.Add(bill.PaidAmount)
		summary.OutstandingAmount = summary.OutstandingAmount.Add(bill.OutstandingAmount)

		switch bill.Status {
		case models.BillStatusPending:
			summary.BillsByStatus.Pending++
		case models.BillStatusPartial:
			summary.BillsByStatus.Partial++
		case models.BillStatusPaid:
			summary.BillsByStatus.Paid++
		case models.BillStatusOverdue:
			summary.BillsByStatus.Overdue++
		}
	}

	if summary.TotalAmount.IsPositive() {
		summary.PaymentPercentage = summary.PaidAmount.Div(summary.TotalAmount).Mul(hundred).Round(2)
	}
	return summary
}
