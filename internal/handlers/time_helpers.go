package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/httperr"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/models"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/timezone"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/validators"
)

// --------------------------------------------------
// Dates are read in the barbershop timezone
// --------------------------------------------------

func parseDateInShop(shop *models.Barbershop, dateStr string) (time.Time, error) {
	t, err := timezone.ParseDate(shop.Timezone, dateStr)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: "date", Reason: "expected YYYY-MM-DD"}
	}
	return t, nil
}

func parseDateTimeInShop(shop *models.Barbershop, dateStr, timeStr string) (time.Time, error) {
	t, err := timezone.ParseDateTime(shop.Timezone, dateStr, timeStr)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: "date", Reason: "expected YYYY-MM-DD and HH:MM"}
	}
	return t, nil
}

// --------------------------------------------------
// Params / binding
// --------------------------------------------------

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return 0, false
	}
	return uint(id), true
}

// queryUint reads an optional numeric query param; missing means zero.
func queryUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+name, "Parâmetro inválido.")
		return 0, false
	}
	return uint(v), true
}

func bindError(c *gin.Context, err error) {
	body := httperr.HTTPError{Code: "invalid_request", Message: "Dados inválidos."}
	if fields := validators.FieldErrors(err); len(fields) > 0 {
		body.Details = map[string]any{"fields": fields}
	}
	c.JSON(400, body)
}
