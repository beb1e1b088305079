package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	scheduledomain "github.com/glowbookhq/stylist-scheduler/internal/domain/schedule"
	"github.com/glowbookhq/stylist-scheduler/internal/httperr"
	"github.com/glowbookhq/stylist-scheduler/internal/httpresp"
	ucschedule "github.com/glowbookhq/stylist-scheduler/internal/usecase/schedule"
)

type ScheduleHandler struct {
	manageUC *ucschedule.ManageSchedule
}

func NewScheduleHandler(manageUC *ucschedule.ManageSchedule) *ScheduleHandler {
	return &ScheduleHandler{manageUC: manageUC}
}

type SetDayScheduleRequest struct {
	Available bool                       `json:"available"`
	Slots     []scheduledomain.SlotInput `json:"slots"`
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	stylistID, _ := actor(c)

	days, err := h.manageUC.Get(c.Request.Context(), stylistID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, days)
}

func (h *ScheduleHandler) SetDay(c *gin.Context) {
	stylistID, _ := actor(c)

	weekday, err := strconv.Atoi(c.Param("weekday"))
	if err != nil {
		httperr.BadRequest(c, "invalid_weekday", "Weekday must be 0-6.")
		return
	}

	var req SetDayScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Request body is not valid.")
		return
	}

	day, err := h.manageUC.SetDay(
		c.Request.Context(),
		stylistID,
		weekday,
		req.Available,
		req.Slots,
	)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, day)
}
