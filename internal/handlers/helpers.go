package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/glowbookhq/stylist-scheduler/internal/config"
	"github.com/glowbookhq/stylist-scheduler/internal/httperr"
	"github.com/glowbookhq/stylist-scheduler/internal/middleware"
	"github.com/glowbookhq/stylist-scheduler/internal/timezone"
)

func actor(c *gin.Context) (uint, string) {
	id := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)
	return id, role
}

func parseDate(cfg *config.Config, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(cfg.MarketTimezone),
	)
}

// timeNowDate truncates the marketplace clock to midnight.
func timeNowDate(cfg *config.Config) time.Time {
	now := timezone.NowIn(cfg.MarketTimezone)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// writeBusinessError maps the engine's error taxonomy onto HTTP statuses:
// conflicts and forbidden transitions are 409, validation failures 422.
func writeBusinessError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	switch code {
	case httperr.CodeSchedulingConflict:
		httperr.Conflict(c, code, "Slot no longer available, please choose another.")
	case httperr.CodeInvalidTransition:
		httperr.Conflict(c, code, "Action not available for this appointment's current status.")
	case httperr.CodeNotFound:
		httperr.NotFound(c, code, "Not found.")
	case httperr.CodePaymentMismatch:
		msg := "Amount does not match the outstanding balance."
		if be, isB := err.(httperr.BusinessError); isB && be.Message != "" {
			msg = be.Message
		}
		httperr.Unprocessable(c, code, msg)
	case httperr.CodePaymentNotVerified:
		httperr.Unprocessable(c, code, "Payment has not been verified yet.")
	case httperr.CodeInvalidCompletionCode:
		httperr.Unprocessable(c, code, "Completion code is not valid.")
	case httperr.CodeInvalidSlotRange:
		httperr.Unprocessable(c, code, "Slots must be ordered, non-overlapping ranges.")
	case httperr.CodeInvalidDuration:
		httperr.Unprocessable(c, code, "Duration is not valid.")
	case httperr.CodeInvalidDateOrTime:
		httperr.Unprocessable(c, code, "Date or time is not valid.")
	default:
		httperr.Internal(c, code, "Something went wrong.")
	}
}
