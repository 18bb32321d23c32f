package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/httperr"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/middleware"
	ucbooking "github.com/DevAlex-full/barbeflow-scheduler/internal/usecase/booking"
)

// WizardHandler exposes the booking wizard as a session resource. Every
// response carries the current session, including rejected actions, so
// the client can redraw the step it is on.
type WizardHandler struct {
	catalog domain.Catalog
	svc     *ucbooking.Service
}

func NewWizardHandler(catalog domain.Catalog, svc *ucbooking.Service) *WizardHandler {
	return &WizardHandler{catalog: catalog, svc: svc}
}

type StartWizardRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`
}

type ChooseBarberRequest struct {
	BarberID uint `json:"barber_id" binding:"required"`
}

type ChooseDateRequest struct {
	Date string `json:"date" binding:"required"`
}

type ChooseTimeRequest struct {
	Time  string `json:"time" binding:"required,hhmm"`
	Notes string `json:"notes" binding:"max=255"`
}

// respond writes the session, or the error with the session attached
// when the action was rejected but the session is still usable.
func respond(c *gin.Context, status int, sess ucbooking.Session, err error) {
	if err == nil {
		c.JSON(status, sess)
		return
	}

	code, body := httperr.Classify(err)
	if sess.ID != "" {
		if body.Details == nil {
			body.Details = map[string]any{}
		}
		body.Details["session"] = sess
	}
	if code == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(code, body)
}

func (h *WizardHandler) Start(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var req StartWizardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	shop, err := h.catalog.GetBarbershopBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	sess, err := h.svc.Start(c.Request.Context(), actor, shop.ID, req.ServiceID)
	respond(c, http.StatusCreated, sess, err)
}

func (h *WizardHandler) Get(c *gin.Context) {
	sess, err := h.svc.Get(c.Request.Context(), middleware.ActorFrom(c), c.Param("session"))
	respond(c, http.StatusOK, sess, err)
}

func (h *WizardHandler) ChooseBarber(c *gin.Context) {
	var req ChooseBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	sess, err := h.svc.ChooseBarber(c.Request.Context(), middleware.ActorFrom(c), c.Param("session"), req.BarberID)
	respond(c, http.StatusOK, sess, err)
}

func (h *WizardHandler) ChooseDate(c *gin.Context) {
	var req ChooseDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	sess, err := h.svc.ChooseDate(c.Request.Context(), middleware.ActorFrom(c), c.Param("session"), req.Date)
	respond(c, http.StatusOK, sess, err)
}

func (h *WizardHandler) ChooseTime(c *gin.Context) {
	var req ChooseTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	sess, err := h.svc.ChooseTime(c.Request.Context(), middleware.ActorFrom(c), c.Param("session"), req.Time, req.Notes)
	respond(c, http.StatusOK, sess, err)
}

func (h *WizardHandler) Back(c *gin.Context) {
	sess, err := h.svc.Back(c.Request.Context(), middleware.ActorFrom(c), c.Param("session"))
	respond(c, http.StatusOK, sess, err)
}

func (h *WizardHandler) Submit(c *gin.Context) {
	sess, err := h.svc.Submit(c.Request.Context(), middleware.ActorFrom(c), c.Param("session"))
	respond(c, http.StatusCreated, sess, err)
}

func (h *WizardHandler) Abandon(c *gin.Context) {
	err := h.svc.Abandon(c.Request.Context(), middleware.ActorFrom(c), c.Param("session"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
