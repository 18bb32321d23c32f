package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/httperr"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/httpresp"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/middleware"
	ucappointment "github.com/DevAlex-full/barbeflow-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentHandler serves the staff calendar under /api/me.
type AppointmentHandler struct {
	catalog      domain.Catalog
	create       *ucappointment.CreateAppointment
	updateStatus *ucappointment.UpdateStatus
	reschedule   *ucappointment.Reschedule
	reminder     *ucappointment.RequestReminder
	remove       *ucappointment.DeleteAppointment
	listByDate   *ucappointment.ListAppointmentsByDate
	listByMonth  *ucappointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	catalog domain.Catalog,
	create *ucappointment.CreateAppointment,
	updateStatus *ucappointment.UpdateStatus,
	reschedule *ucappointment.Reschedule,
	reminder *ucappointment.RequestReminder,
	remove *ucappointment.DeleteAppointment,
	listByDate *ucappointment.ListAppointmentsByDate,
	listByMonth *ucappointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		catalog:      catalog,
		create:       create,
		updateStatus: updateStatus,
		reschedule:   reschedule,
		reminder:     reminder,
		remove:       remove,
		listByDate:   listByDate,
		listByMonth:  listByMonth,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID      uint   `json:"barber_id" binding:"required"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	CustomerID    uint   `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email" binding:"omitempty,email"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required,hhmm"`
	Notes         string `json:"notes" binding:"max=255"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RescheduleRequest struct {
	BarberID uint   `json:"barber_id"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required,hhmm"`
}

// ======================================================
// CREATE (manual entry)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	shop, err := h.catalog.GetBarbershopByID(c.Request.Context(), actor.BarbershopID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	start, err := parseDateTimeInShop(shop, req.Date, req.Time)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), actor, ucappointment.CreateAppointmentInput{
		BarbershopID:  actor.BarbershopID,
		BarberID:      req.BarberID,
		ServiceID:     req.ServiceID,
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Start:         start,
		Notes:         req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	barberID, ok := queryUint(c, "barber_id")
	if !ok {
		return
	}

	shop, err := h.catalog.GetBarbershopByID(c.Request.Context(), actor.BarbershopID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	date, err := parseDateInShop(shop, dateStr)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	out, err := h.listByDate.Execute(c.Request.Context(), actor, actor.BarbershopID, barberID, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	barberID, ok := queryUint(c, "barber_id")
	if !ok {
		return
	}

	out, err := h.listByMonth.Execute(c.Request.Context(), actor, actor.BarbershopID, barberID, year, month)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": out,
	})
}

// ======================================================
// STATUS / RESCHEDULE / REMINDER / DELETE
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	target, err := domain.ParseStatus(req.Status)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), actor, actor.BarbershopID, id, target)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	shop, err := h.catalog.GetBarbershopByID(c.Request.Context(), actor.BarbershopID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	start, err := parseDateTimeInShop(shop, req.Date, req.Time)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), actor, ucappointment.RescheduleInput{
		BarbershopID:  actor.BarbershopID,
		AppointmentID: id,
		BarberID:      req.BarberID,
		Start:         start,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) RequestReminder(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ack, err := h.reminder.Execute(c.Request.Context(), actor, actor.BarbershopID, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Accepted(c, ack)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), actor, actor.BarbershopID, id); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
