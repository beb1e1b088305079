package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/glowbookhq/stylist-scheduler/internal/config"
	"github.com/glowbookhq/stylist-scheduler/internal/httperr"
	"github.com/glowbookhq/stylist-scheduler/internal/httpresp"
	"github.com/glowbookhq/stylist-scheduler/internal/models"
	ucappointment "github.com/glowbookhq/stylist-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC     *ucappointment.CreateAppointment
	approveUC    *ucappointment.ApproveAppointment
	completeUC   *ucappointment.CompleteAppointment
	cancelUC     *ucappointment.CancelAppointment
	rescheduleUC *ucappointment.RescheduleAppointment
	listUC       *ucappointment.ListAppointmentsByDate

	config *config.Config
}

func NewAppointmentHandler(
	createUC *ucappointment.CreateAppointment,
	approveUC *ucappointment.ApproveAppointment,
	completeUC *ucappointment.CompleteAppointment,
	cancelUC *ucappointment.CancelAppointment,
	rescheduleUC *ucappointment.RescheduleAppointment,
	listUC *ucappointment.ListAppointmentsByDate,
	cfg *config.Config,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:     createUC,
		approveUC:    approveUC,
		completeUC:   completeUC,
		cancelUC:     cancelUC,
		rescheduleUC: rescheduleUC,
		listUC:       listUC,
		config:       cfg,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	StylistID   uint   `json:"stylist_id" binding:"required"`
	PortfolioID uint   `json:"portfolio_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	ExtraNotes  string `json:"extra_notes"`
}

type CompleteAppointmentRequest struct {
	Code string `json:"code" binding:"required"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

type RescheduleAppointmentRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	customerID, role := actor(c)
	if role != models.RoleCustomer {
		httperr.Forbidden(c, "forbidden", "Only customers book appointments.")
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Request body is not valid.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucappointment.CreateAppointmentInput{
		CustomerID:  customerID,
		StylistID:   req.StylistID,
		PortfolioID: req.PortfolioID,
		Date:        req.Date,
		Time:        req.Time,
		ExtraNotes:  req.ExtraNotes,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	actorID, role := actor(c)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "date is required.")
		return
	}

	date, err := parseDate(h.config, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date is not valid.")
		return
	}

	var stylistID, customerID *uint
	switch role {
	case models.RoleStylist:
		stylistID = &actorID
	case models.RoleCustomer:
		customerID = &actorID
	case models.RoleAdmin:
		// unscoped
	}

	out, err := h.listUC.Execute(c.Request.Context(), stylistID, customerID, date)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Approve(c *gin.Context) {
	stylistID, role := actor(c)
	if role != models.RoleStylist {
		httperr.Forbidden(c, "forbidden", "Only the stylist approves.")
		return
	}

	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.approveUC.Execute(c.Request.Context(), stylistID, id)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	actorID, role := actor(c)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var req CompleteAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "code is required.")
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), actorID, role, id, req.Code)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	actorID, role := actor(c)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var req CancelAppointmentRequest
	_ = c.ShouldBindJSON(&req)

	ap, err := h.cancelUC.Execute(c.Request.Context(), actorID, role, id, req.Reason)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	actorID, role := actor(c)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "date and time are required.")
		return
	}

	ap, err := h.rescheduleUC.Execute(
		c.Request.Context(),
		actorID,
		role,
		id,
		req.Date,
		req.Time,
	)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Id is not valid.")
		return 0, false
	}
	return uint(id), true
}
