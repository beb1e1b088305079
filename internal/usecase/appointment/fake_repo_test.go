package appointment

import (
	"context"
	"sync"
	"time"

	domain "github.com/glowbookhq/stylist-scheduler/internal/domain/appointment"
	"github.com/glowbookhq/stylist-scheduler/internal/httperr"
	"github.com/glowbookhq/stylist-scheduler/internal/models"
)

// fakeRepo is an in-memory Repository with the same conflict semantics
// as the SQL implementation: like the advisory day lock there, a lock is
// held from before the overlap re-check until after the insert.
type fakeRepo struct {
	mu sync.Mutex

	users        map[uint]*models.User
	portfolios   map[uint]*models.Portfolio
	schedules    map[uint]map[int]*models.StylistSchedule
	appointments map[uint]*models.Appointment

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:        make(map[uint]*models.User),
		portfolios:   make(map[uint]*models.Portfolio),
		schedules:    make(map[uint]map[int]*models.StylistSchedule),
		appointments: make(map[uint]*models.Appointment),
	}
}

func (r *fakeRepo) addUser(u models.User) {
	r.users[u.ID] = &u
}

func (r *fakeRepo) addPortfolio(p models.Portfolio) {
	r.portfolios[p.ID] = &p
}

func (r *fakeRepo) addDaySchedule(stylistID uint, weekday int, available bool, slots ...models.ScheduleTimeSlot) {
	if r.schedules[stylistID] == nil {
		r.schedules[stylistID] = make(map[int]*models.StylistSchedule)
	}
	r.schedules[stylistID][weekday] = &models.StylistSchedule{
		StylistID: stylistID,
		Weekday:   weekday,
		Available: available,
		Slots:     slots,
	}
}

func (r *fakeRepo) addAppointment(ap models.Appointment) *models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	ap.ID = r.nextID
	r.appointments[ap.ID] = &ap
	return &ap
}

// --------------------------------------------------
// domain.Repository
// --------------------------------------------------

func (r *fakeRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func (r *fakeRepo) GetPortfolio(ctx context.Context, portfolioID uint) (*models.Portfolio, error) {
	if p, ok := r.portfolios[portfolioID]; ok && p.Active {
		cp := *p
		return &cp, nil
	}
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func (r *fakeRepo) GetDaySchedule(ctx context.Context, stylistID uint, weekday int) (*models.StylistSchedule, error) {
	if day, ok := r.schedules[stylistID][weekday]; ok {
		cp := *day
		return &cp, nil
	}
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func blocking(status string) bool {
	for _, s := range domain.BlockingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (r *fakeRepo) conflictLocked(stylistID uint, date time.Time, startMin, endMin int, excludeID uint) bool {
	want := domain.Interval{StartMin: startMin, EndMin: endMin}
	day := date.Format("2006-01-02")

	for _, other := range r.appointments {
		if other.ID == excludeID || other.StylistID != stylistID {
			continue
		}
		if !blocking(other.Status) || other.AppointmentDate.Format("2006-01-02") != day {
			continue
		}
		held := domain.Interval{StartMin: other.StartMinute, EndMin: other.EndMinute}
		if domain.Overlaps(want, held) {
			return true
		}
	}
	return false
}

func (r *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conflictLocked(ap.StylistID, ap.AppointmentDate, ap.StartMinute, ap.EndMinute, 0) {
		return httperr.ErrBusiness(httperr.CodeSchedulingConflict)
	}

	r.nextID++
	ap.ID = r.nextID
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) RescheduleAppointment(
	ctx context.Context,
	ap *models.Appointment,
	newDate time.Time,
	newTime string,
	startMin int,
	endMin int,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conflictLocked(ap.StylistID, newDate, startMin, endMin, ap.ID) {
		return httperr.ErrBusiness(httperr.CodeSchedulingConflict)
	}

	ap.Status = string(domain.StatusPending)
	ap.AppointmentDate = newDate
	ap.AppointmentTime = newTime
	ap.StartMinute = startMin
	ap.EndMinute = endMin

	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) GetAppointment(ctx context.Context, appointmentID uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ap, ok := r.appointments[appointmentID]; ok {
		cp := *ap
		return &cp, nil
	}
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func (r *fakeRepo) GetAppointmentByBookingID(ctx context.Context, bookingID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ap := range r.appointments {
		if ap.BookingID == bookingID {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func (r *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) ListActiveAppointmentsForDate(ctx context.Context, stylistID uint, date time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := date.Format("2006-01-02")
	var out []models.Appointment

	for _, ap := range r.appointments {
		if ap.StylistID != stylistID || ap.AppointmentDate.Format("2006-01-02") != day {
			continue
		}
		for _, s := range domain.ActiveStatuses {
			if ap.Status == s {
				out = append(out, *ap)
				break
			}
		}
	}

	sortAppointments(out)
	return out, nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(
	ctx context.Context,
	stylistID *uint,
	customerID *uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.AppointmentDate.Before(start) || !ap.AppointmentDate.Before(end) {
			continue
		}
		if stylistID != nil && ap.StylistID != *stylistID {
			continue
		}
		if customerID != nil && ap.CustomerID != *customerID {
			continue
		}
		out = append(out, *ap)
	}

	sortAppointments(out)
	return out, nil
}

func sortAppointments(apps []models.Appointment) {
	for i := 1; i < len(apps); i++ {
		for j := i; j > 0; j-- {
			a, b := &apps[j-1], &apps[j]
			if a.AppointmentDate.After(b.AppointmentDate) ||
				(a.AppointmentDate.Equal(b.AppointmentDate) && a.StartMinute > b.StartMinute) {
				apps[j-1], apps[j] = apps[j], apps[j-1]
			} else {
				break
			}
		}
	}
}

var _ domain.Repository = (*fakeRepo)(nil)
