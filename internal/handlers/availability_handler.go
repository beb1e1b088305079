package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/glowbookhq/stylist-scheduler/internal/config"
	"github.com/glowbookhq/stylist-scheduler/internal/httperr"
	"github.com/glowbookhq/stylist-scheduler/internal/httpresp"
	ucappointment "github.com/glowbookhq/stylist-scheduler/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	resolver *ucappointment.AvailabilityResolver
	config   *config.Config
}

func NewAvailabilityHandler(
	resolver *ucappointment.AvailabilityResolver,
	cfg *config.Config,
) *AvailabilityHandler {
	return &AvailabilityHandler{resolver: resolver, config: cfg}
}

// ListOpenSlots serves GET /stylists/:id/availability?from&to&duration.
func (h *AvailabilityHandler) ListOpenSlots(c *gin.Context) {
	stylistID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_stylist_id", "Stylist id is not valid.")
		return
	}

	fromStr := c.Query("from")
	toStr := c.Query("to")
	duration := c.Query("duration")
	if fromStr == "" || toStr == "" || duration == "" {
		httperr.BadRequest(c, "missing_params", "from, to and duration are required.")
		return
	}

	from, err := parseDate(h.config, fromStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date is not valid.")
		return
	}
	to, err := parseDate(h.config, toStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date is not valid.")
		return
	}

	slots, err := h.resolver.ListOpenSlots(
		c.Request.Context(),
		uint(stylistID),
		from,
		to,
		duration,
	)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, slots)
}

// NextAvailable serves GET /stylists/:id/next-available?duration. A miss
// is a 200 with found=false, not an error.
func (h *AvailabilityHandler) NextAvailable(c *gin.Context) {
	stylistID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_stylist_id", "Stylist id is not valid.")
		return
	}

	duration := c.Query("duration")
	if duration == "" {
		httperr.BadRequest(c, "missing_params", "duration is required.")
		return
	}

	from := timeNowDate(h.config)
	if fromStr := c.Query("from"); fromStr != "" {
		from, err = parseDate(h.config, fromStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Date is not valid.")
			return
		}
	}

	next, err := h.resolver.NextAvailable(
		c.Request.Context(),
		uint(stylistID),
		from,
		duration,
	)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, next)
}
