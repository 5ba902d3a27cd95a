package statemachine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/looplab/fsm"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/billing-api/internal/models"
)

// ErrInvalidTransition is returned when a bill cannot move to the requested status.
var ErrInvalidTransition = errors.New("invalid bill status transition")

// BillFSM wraps a bill with its status state machine
type BillFSM struct {
	bill *models.Bill
	fsm  *fsm.FSM
	now  func() time.Time
}

var statusEvents = map[string]string{
	models.BillStatusPending: "reset",
	models.BillStatusPartial: "partial",
	models.BillStatusPaid:    "pay",
	models.BillStatusOverdue: "overdue",
}

// NewBillFSM creates a new bill state machine
func NewBillFSM(bill *models.Bill) *BillFSM {
	b := &BillFSM{
		bill: bill,
		now:  time.Now,
	}

	initial := bill.Status
	if initial == "" {
		initial = models.BillStatusPending
	}

	b.fsm = fsm.NewFSM(
		initial,
		fsm.Events{
			// admin reset after a correction
			{Name: "reset", Src: []string{models.BillStatusPartial, models.BillStatusPaid, models.BillStatusOverdue}, Dst: models.BillStatusPending},

			// some money received
			{Name: "partial", Src: []string{models.BillStatusPending, models.BillStatusPaid, models.BillStatusOverdue}, Dst: models.BillStatusPartial},

			// nothing left outstanding
			{Name: "pay", Src: []string{models.BillStatusPending, models.BillStatusPartial, models.BillStatusOverdue}, Dst: models.BillStatusPaid},

			// explicit only; a settled bill cannot become overdue
			{Name: "overdue", Src: []string{models.BillStatusPending, models.BillStatusPartial}, Dst: models.BillStatusOverdue},
		},
		fsm.Callbacks{},
	)

	return b
}

// TransitionTo moves the bill to status. Entering PAID stamps the paid
// date, including when the bill is already PAID.
func (b *BillFSM) TransitionTo(ctx context.Context, status string) error {
	event, ok := statusEvents[status]
	if !ok {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, status)
	}

	if b.fsm.Current() != status {
		if err := b.fsm.Event(ctx, event); err != nil {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, b.fsm.Current(), status)
		}
	}

	b.bill.Status = b.fsm.Current()
	if b.bill.Status == models.BillStatusPaid {
		paidAt := b.now()
		b.bill.PaidDate = &paidAt
	}
	return nil
}

// ApplyPayment adds amount to the bill, recomputes the outstanding balance
// and moves the status accordingly.
func (b *BillFSM) ApplyPayment(ctx context.Context, amount decimal.Decimal) error {
	newPaid := b.bill.PaidAmount.Add(amount)
	newOutstanding := b.bill.TotalAmount.Sub(newPaid)

	b.bill.PaidAmount = newPaid
	b.bill.OutstandingAmount = newOutstanding

	status := SettledStatus(b.fsm.Current(), newPaid, newOutstanding)
	return b.TransitionTo(ctx, status)
}

// SetPaidAmount overwrites the paid amount and re-derives the status from
// it, ignoring the current status.
func (b *BillFSM) SetPaidAmount(ctx context.Context, paid decimal.Decimal) error {
	b.bill.PaidAmount = paid
	b.bill.OutstandingAmount = b.bill.TotalAmount.Sub(paid)

	return b.TransitionTo(ctx, DerivedStatus(paid, b.bill.TotalAmount))
}

// Current returns the current state
func (b *BillFSM) Current() string {
	return b.fsm.Current()
}

// SettledStatus is the status after a payment: PAID once nothing is
// outstanding, PARTIAL once anything is paid, otherwise unchanged.
func SettledStatus(current string, paid, outstanding decimal.Decimal) string {
	switch {
	case outstanding.LessThanOrEqual(decimal.Zero):
		return models.BillStatusPaid
	case paid.GreaterThan(decimal.Zero):
		return models.BillStatusPartial
	default:
		return current
	}
}

// DerivedStatus is the status implied by paid against total alone.
func DerivedStatus(paid, total decimal.Decimal) string {
	switch {
	case paid.GreaterThanOrEqual(total):
		return models.BillStatusPaid
	case paid.GreaterThan(decimal.Zero):
		return models.BillStatusPartial
	default:
		return models.BillStatusPending
	}
}
