package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DevAlex-full/barbeflow-scheduler/internal/httperr"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/middleware"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/models"
	ucappointment "github.com/DevAlex-full/barbeflow-scheduler/internal/usecase/appointment"
)

type BusinessHoursHandler struct {
	uc *ucappointment.BusinessHours
}

func NewBusinessHoursHandler(uc *ucappointment.BusinessHours) *BusinessHoursHandler {
	return &BusinessHoursHandler{uc: uc}
}

type BusinessDayConfig struct {
	Weekday    *int   `json:"weekday" binding:"required,min=0,max=6"`
	Closed     bool   `json:"closed"`
	OpenTime   string `json:"open_time" binding:"required_unless=Closed true,hhmm"`
	CloseTime  string `json:"close_time" binding:"required_unless=Closed true,hhmm"`
	LunchStart string `json:"lunch_start" binding:"hhmm"`
	LunchEnd   string `json:"lunch_end" binding:"hhmm"`
}

type BusinessHoursUpdateRequest struct {
	Days []BusinessDayConfig `json:"days" binding:"required,max=7,dive"`
}

func (h *BusinessHoursHandler) Get(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	hours, err := h.uc.List(c.Request.Context(), actor, actor.BarbershopID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, hours)
}

func (h *BusinessHoursHandler) Update(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var req BusinessHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	days := make([]models.BusinessHours, 0, len(req.Days))
	for _, d := range req.Days {
		days = append(days, models.BusinessHours{
			Weekday:    *d.Weekday,
			Closed:     d.Closed,
			OpenTime:   d.OpenTime,
			CloseTime:  d.CloseTime,
			LunchStart: d.LunchStart,
			LunchEnd:   d.LunchEnd,
		})
	}

	hours, err := h.uc.Replace(c.Request.Context(), actor, actor.BarbershopID, days)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, hours)
}
