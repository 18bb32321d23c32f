package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/dto"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/httperr"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/httpresp"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/middleware"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/models"
	ucappointment "github.com/DevAlex-full/barbeflow-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the customer-facing booking surface addressed by
// barbershop slug.
type PublicHandler struct {
	catalog      domain.Catalog
	availability *ucappointment.GetAvailability
	cancel       *ucappointment.CancelAppointment
}

func NewPublicHandler(
	catalog domain.Catalog,
	availability *ucappointment.GetAvailability,
	cancel *ucappointment.CancelAppointment,
) *PublicHandler {
	return &PublicHandler{
		catalog:      catalog,
		availability: availability,
		cancel:       cancel,
	}
}

func (h *PublicHandler) shop(c *gin.Context) (*models.Barbershop, bool) {
	shop, err := h.catalog.GetBarbershopBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.FromError(c, err)
		return nil, false
	}
	return shop, true
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	services, err := h.catalog.ListActiveServices(c.Request.Context(), shop.ID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, dto.FromServices(services))
}

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	barbers, err := h.catalog.ListActiveBarbers(c.Request.Context(), shop.ID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, dto.FromBarbers(barbers))
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	barberID, ok := queryUint(c, "barber_id")
	if !ok {
		return
	}
	serviceID, ok := queryUint(c, "service_id")
	if !ok {
		return
	}
	dateStr := c.Query("date")
	if barberID == 0 || serviceID == 0 || dateStr == "" {
		httperr.BadRequest(c, "missing_params", "barber_id, service_id e date são obrigatórios.")
		return
	}

	date, err := parseDateInShop(shop, dateStr)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarbershopID: shop.ID,
		BarberID:     barberID,
		ServiceID:    serviceID,
		Date:         date,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": dto.FromSlots(slots),
	})
}

////////////////////////////////////////////////////////
// CANCEL (customer)
////////////////////////////////////////////////////////

func (h *PublicHandler) Cancel(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), actor, actor.BarbershopID, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}
