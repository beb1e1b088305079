package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/glowbookhq/stylist-scheduler/internal/domain/appointment"
	"github.com/glowbookhq/stylist-scheduler/internal/gateway"
	"github.com/glowbookhq/stylist-scheduler/internal/httperr"
	"github.com/glowbookhq/stylist-scheduler/internal/httpresp"
	"github.com/glowbookhq/stylist-scheduler/internal/models"
	ucpayment "github.com/glowbookhq/stylist-scheduler/internal/usecase/payment"
)

type PaymentHandler struct {
	recordUC   *ucpayment.RecordVerificationRequest
	verifiedUC *ucpayment.MarkVerified

	appointments domain.Repository
	checker      gateway.DepositChecker
}

func NewPaymentHandler(
	recordUC *ucpayment.RecordVerificationRequest,
	verifiedUC *ucpayment.MarkVerified,
	appointments domain.Repository,
	checker gateway.DepositChecker,
) *PaymentHandler {
	return &PaymentHandler{
		recordUC:     recordUC,
		verifiedUC:   verifiedUC,
		appointments: appointments,
		checker:      checker,
	}
}

// ======================================================
// CUSTOMER CLAIM
// ======================================================

type VerificationRequestBody struct {
	Amount    float64 `json:"amount" binding:"required"`
	Reference string  `json:"reference" binding:"required"`
}

func (h *PaymentHandler) RequestVerification(c *gin.Context) {
	customerID, role := actor(c)
	if role != models.RoleCustomer {
		httperr.Forbidden(c, "forbidden", "Only the customer files a payment claim.")
		return
	}

	id, ok := paramID(c)
	if !ok {
		return
	}

	var req VerificationRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "amount and reference are required.")
		return
	}

	v, err := h.recordUC.Execute(
		c.Request.Context(),
		customerID,
		id,
		req.Amount,
		req.Reference,
	)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, v)
}

// ======================================================
// GATEWAY CALLBACK
// ======================================================

// Callback handles the gateway redirect: {uuid, deposit_id, amount,
// in_sandbox}. Success verifies the appointment's pending claim; a
// cancelled or failed deposit is a no-op leaving the appointment approved.
func (h *PaymentHandler) Callback(c *gin.Context) {
	bookingID := c.Query("uuid")
	depositIDStr := c.Query("deposit_id")
	amountStr := c.Query("amount")
	inSandbox := c.Query("in_sandbox") == "true"

	if _, err := uuid.Parse(bookingID); err != nil {
		httperr.BadRequest(c, "invalid_uuid", "uuid is not valid.")
		return
	}

	depositID, err := strconv.Atoi(depositIDStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_deposit_id", "deposit_id is not valid.")
		return
	}

	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_amount", "amount is not valid.")
		return
	}

	ap, err := h.appointments.GetAppointmentByBookingID(c.Request.Context(), bookingID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	checker := h.checker
	if inSandbox {
		checker = gateway.SandboxChecker{}
	}

	approved, err := checker.DepositApproved(c.Request.Context(), depositID, amount)
	if err != nil {
		httperr.Internal(c, "gateway_error", "Could not verify the deposit.")
		return
	}
	if !approved {
		// failed/cancelled deposits leave the appointment approved
		httpresp.OK(c, gin.H{"status": "ignored", "appointment_status": ap.Status})
		return
	}

	v, err := h.verifiedUC.ExecuteForAppointment(c.Request.Context(), ap.ID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"status": "verified", "verification_id": v.ID})
}
