package appointment

import (
	"time"

	"github.com/DevAlex-full/barbeflow-scheduler/internal/models"
)

// DefaultCancellationLead is the notice customers must give to cancel.
const DefaultCancellationLead = 2 * time.Hour

// CancellationPolicy decides whether a cancellation may go through.
// Only customers are bound by the lead time; staff may cancel any
// non-terminal appointment.
type CancellationPolicy struct {
	MinLead time.Duration
}

func NewCancellationPolicy(minLead time.Duration) CancellationPolicy {
	if minLead <= 0 {
		minLead = DefaultCancellationLead
	}
	return CancellationPolicy{MinLead: minLead}
}

// ForShop applies the barbershop override when one is configured.
func (p CancellationPolicy) ForShop(shop *models.Barbershop) CancellationPolicy {
	if shop != nil && shop.CancellationLeadMinutes > 0 {
		return CancellationPolicy{MinLead: time.Duration(shop.CancellationLeadMinutes) * time.Minute}
	}
	return p
}

func (p CancellationPolicy) CanCancel(ap *models.Appointment, now time.Time) bool {
	return ap.StartTime.Sub(now) >= p.MinLead
}

// Check returns a CancellationWindowError for customers inside the
// protected window. It never mutates the appointment.
func (p CancellationPolicy) Check(ap *models.Appointment, role Role, now time.Time) error {
	if role.IsStaff() {
		return nil
	}
	if p.CanCancel(ap, now) {
		return nil
	}
	remaining := ap.StartTime.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	return &CancellationWindowError{Remaining: remaining, Required: p.MinLead}
}
