package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/domain/booking"
)

type HTTPError struct {
	Code    string         `json:"error_code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Classify maps a use case error to its HTTP status and response body.
func Classify(err error) (int, HTTPError) {
	var (
		invalidDate *domain.InvalidDateError
		conflict    *domain.SlotConflictError
		transition  *domain.InvalidTransitionError
		window      *domain.CancellationWindowError
		notFound    *domain.NotFoundError
		validation  *domain.ValidationError
		forbidden   *domain.ForbiddenError
		step        *booking.StepError
		business    BusinessError
	)

	switch {
	case errors.As(err, &invalidDate):
		return http.StatusBadRequest, HTTPError{Code: "invalid_date", Message: "Data inválida ou no passado."}
	case errors.As(err, &conflict):
		return http.StatusConflict, HTTPError{Code: "slot_conflict", Message: "Conflito de horário."}
	case errors.As(err, &transition):
		return http.StatusConflict, HTTPError{
			Code:    "invalid_transition",
			Message: "Transição de status inválida.",
			Details: map[string]any{"from": transition.From, "to": transition.To},
		}
	case errors.As(err, &window):
		return http.StatusUnprocessableEntity, HTTPError{
			Code:    "cancellation_window",
			Message: "Cancelamento fora do prazo permitido.",
			Details: map[string]any{
				"remaining_minutes": int(window.Remaining.Minutes()),
				"required_minutes":  int(window.Required.Minutes()),
			},
		}
	case errors.As(err, &notFound):
		return http.StatusNotFound, HTTPError{Code: notFoundCode(notFound.Resource), Message: "Registro não encontrado."}
	case errors.As(err, &validation):
		return http.StatusBadRequest, HTTPError{
			Code:    "invalid_request",
			Message: "Dados inválidos.",
			Details: map[string]any{"field": validation.Field, "reason": validation.Reason},
		}
	case errors.As(err, &forbidden):
		return http.StatusForbidden, HTTPError{Code: "forbidden", Message: "Acesso negado."}
	case errors.Is(err, booking.ErrNoSlots):
		return http.StatusConflict, HTTPError{Code: "no_slots", Message: "Nenhum horário disponível nesta data."}
	case errors.Is(err, booking.ErrStaleSlot):
		return http.StatusConflict, HTTPError{Code: "stale_slot", Message: "Horário não está mais na lista oferecida."}
	case errors.As(err, &step):
		return http.StatusConflict, HTTPError{Code: "invalid_step", Message: "Etapa inválida para esta ação."}
	case errors.Is(err, booking.ErrSubmitInProgress):
		return http.StatusConflict, HTTPError{Code: "submit_in_progress", Message: "Agendamento já está sendo confirmado."}
	case errors.Is(err, booking.ErrSessionNotFound):
		return http.StatusNotFound, HTTPError{Code: "session_not_found", Message: "Sessão de agendamento expirada."}
	case errors.As(err, &business):
		return http.StatusBadRequest, HTTPError{Code: business.Code, Message: business.Code}
	}

	return http.StatusInternalServerError, HTTPError{Code: "internal_error", Message: "Erro interno."}
}

// FromError writes the response for err.
func FromError(c *gin.Context, err error) {
	status, body := Classify(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, body)
}

func notFoundCode(resource string) string {
	if resource == "" {
		return "not_found"
	}
	return resource + "_not_found"
}
