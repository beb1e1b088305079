package handlers

import (
	"github.com/gin-gonic/gin"

	paymentdomain "github.com/glowbookhq/stylist-scheduler/internal/domain/payment"
	"github.com/glowbookhq/stylist-scheduler/internal/httperr"
	"github.com/glowbookhq/stylist-scheduler/internal/httpresp"
	"github.com/glowbookhq/stylist-scheduler/internal/models"
	ucappointment "github.com/glowbookhq/stylist-scheduler/internal/usecase/appointment"
	ucpayment "github.com/glowbookhq/stylist-scheduler/internal/usecase/payment"
)

// AdminHandler groups the dispute and payment-review surface.
type AdminHandler struct {
	escalateUC *ucappointment.EscalateAppointment
	resolveUC  *ucappointment.ResolveAppointment
	verifyUC   *ucpayment.MarkVerified
	rejectUC   *ucpayment.MarkRejected

	payments paymentdomain.Repository
}

func NewAdminHandler(
	escalateUC *ucappointment.EscalateAppointment,
	resolveUC *ucappointment.ResolveAppointment,
	verifyUC *ucpayment.MarkVerified,
	rejectUC *ucpayment.MarkRejected,
	payments paymentdomain.Repository,
) *AdminHandler {
	return &AdminHandler{
		escalateUC: escalateUC,
		resolveUC:  resolveUC,
		verifyUC:   verifyUC,
		rejectUC:   rejectUC,
		payments:   payments,
	}
}

// ======================================================
// DISPUTES
// ======================================================

type EscalateRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ResolveRequest struct {
	Outcome string `json:"outcome" binding:"required,oneof=completed cancelled"`
}

func (h *AdminHandler) Escalate(c *gin.Context) {
	adminID, _ := actor(c)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var req EscalateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "reason is required.")
		return
	}

	ap, err := h.escalateUC.Execute(c.Request.Context(), adminID, id, req.Reason)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AdminHandler) Resolve(c *gin.Context) {
	adminID, _ := actor(c)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "outcome must be completed or cancelled.")
		return
	}

	ap, err := h.resolveUC.Execute(c.Request.Context(), adminID, id, req.Outcome)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// PAYMENT REVIEW
// ======================================================

type RejectVerificationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *AdminHandler) ListPendingVerifications(c *gin.Context) {
	out, err := h.payments.ListVerificationsByStatus(
		c.Request.Context(),
		models.VerificationRequested,
	)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AdminHandler) VerifyPayment(c *gin.Context) {
	adminID, _ := actor(c)

	id, ok := paramID(c)
	if !ok {
		return
	}

	v, err := h.verifyUC.Execute(c.Request.Context(), &adminID, id)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, v)
}

func (h *AdminHandler) RejectPayment(c *gin.Context) {
	adminID, _ := actor(c)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var req RejectVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "reason is required.")
		return
	}

	v, err := h.rejectUC.Execute(c.Request.Context(), &adminID, id, req.Reason)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, v)
}
