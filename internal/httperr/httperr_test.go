package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/domain/booking"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid date", &domain.InvalidDateError{}, http.StatusBadRequest, "invalid_date"},
		{"slot conflict wrapped", fmt.Errorf("create: %w", &domain.SlotConflictError{}), http.StatusConflict, "slot_conflict"},
		{"invalid transition", &domain.InvalidTransitionError{From: "cancelled", To: "confirmed"}, http.StatusConflict, "invalid_transition"},
		{"cancellation window", &domain.CancellationWindowError{Remaining: time.Hour, Required: 2 * time.Hour}, http.StatusUnprocessableEntity, "cancellation_window"},
		{"not found", &domain.NotFoundError{Resource: "appointment", ID: 3}, http.StatusNotFound, "appointment_not_found"},
		{"validation", &domain.ValidationError{Field: "date"}, http.StatusBadRequest, "invalid_request"},
		{"forbidden", &domain.ForbiddenError{}, http.StatusForbidden, "forbidden"},
		{"no slots", booking.ErrNoSlots, http.StatusConflict, "no_slots"},
		{"stale slot", booking.ErrStaleSlot, http.StatusConflict, "stale_slot"},
		{"session", booking.ErrSessionNotFound, http.StatusNotFound, "session_not_found"},
		{"submit in progress", booking.ErrSubmitInProgress, http.StatusConflict, "submit_in_progress"},
		{"business", ErrBusiness("outside_business_hours"), http.StatusBadRequest, "outside_business_hours"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := Classify(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestIsExclusionConflict(t *testing.T) {
	assert.True(t, IsExclusionConflict(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"})))
	assert.False(t, IsExclusionConflict(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsExclusionConflict(errors.New("23P01")))
}
