package appointment

import (
	"context"
	"time"

	domain "github.com/glowbookhq/stylist-scheduler/internal/domain/appointment"
	"github.com/glowbookhq/stylist-scheduler/internal/dto"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(repo domain.Repository) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{repo: repo}
}

// Execute lists one calendar day, scoped to the requesting party: stylists
// see their book, customers their own bookings.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	stylistID *uint,
	customerID *uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 0, 1)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		stylistID,
		customerID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:              ap.ID,
			BookingID:       ap.BookingID,
			AppointmentDate: ap.AppointmentDate.Format("2006-01-02"),
			AppointmentTime: ap.AppointmentTime,
			Duration:        ap.Duration,
			Status:          ap.Status,
			Amount:          ap.Amount,
			CustomerName:    ap.Customer.Name,
			StylistName:     ap.Stylist.Name,
			PortfolioTitle:  ap.Portfolio.Title,
		})
	}

	return out, nil
}
