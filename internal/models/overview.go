package models

import "github.com/shopspring/decimal"

// BillsByStatus counts a client's bills per status.
type BillsByStatus struct {
	Pending int `json:"pending"`
	Partial int `json:"partial"`
	Paid    int `json:"paid"`
	Overdue int `json:"overdue"`
}

// ClientSummary aggregates one client's projects and bills.
type ClientSummary struct {
	TotalProjects     int             `json:"totalProjects"`
	TotalBills        int             `json:"totalBills"`
	TotalArea         decimal.Decimal `json:"totalArea"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	PaidAmount        decimal.Decimal `json:"paidAmount"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
	PaymentPercentage decimal.Decimal `json:"paymentPercentage"`
	BillsByStatus     BillsByStatus   `json:"billsByStatus"`
}

// ClientOverview is a client with its nested records and summary.
type ClientOverview struct {
	Client
	Summary ClientSummary `json:"summary"`
}

// OverviewTotals aggregates every client summary.
type OverviewTotals struct {
	TotalClients     int             `json:"totalClients"`
	TotalProjects    int             `json:"totalProjects"`
	TotalBills       int             `json:"totalBills"`
	TotalArea        decimal.Decimal `json:"totalArea"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
}

// Overview is the admin report across all clients.
type Overview struct {
	Clients []ClientOverview `json:"clients"`
	Totals  OverviewTotals   `json:"totals"`
}

// BillStats is a snapshot used for metrics.
type BillStats struct {
	CountByStatus    map[string]int64
	TotalOutstanding decimal.Decimal
}
