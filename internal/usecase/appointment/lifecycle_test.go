package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	domain "github.com/glowbookhq/stylist-scheduler/internal/domain/appointment"
	"github.com/glowbookhq/stylist-scheduler/internal/httperr"
	"github.com/glowbookhq/stylist-scheduler/internal/models"
)

const (
	customerID  = uint(1)
	stylistID   = uint(2)
	portfolioID = uint(3)
)

func newBookingFixture() *fakeRepo {
	repo := newFakeRepo()
	repo.addUser(models.User{ID: customerID, Name: "Dana", Role: models.RoleCustomer})
	repo.addUser(models.User{ID: stylistID, Name: "Maya", Role: models.RoleStylist})
	repo.addPortfolio(models.Portfolio{
		ID:        portfolioID,
		StylistID: stylistID,
		Title:     "Cut & Style",
		Price:     100,
		Duration:  "1h",
		Active:    true,
	})
	repo.addDaySchedule(stylistID, 1, true, workdaySlot()) // Mondays
	return repo
}

func newCreateUC(repo domain.Repository, now time.Time) *CreateAppointment {
	uc := NewCreateAppointment(repo, newTestDispatcher(), nil, testCfg)
	uc.now = func() time.Time { return now }
	return uc
}

func bookingInput(date, at string) CreateAppointmentInput {
	return CreateAppointmentInput{
		CustomerID:  customerID,
		StylistID:   stylistID,
		PortfolioID: portfolioID,
		Date:        date,
		Time:        at,
	}
}

// fakePayments is just enough of the payment repository for confirm.
type fakePayments struct {
	verified float64
}

func (f *fakePayments) CreateVerification(ctx context.Context, v *models.PaymentVerification) error {
	return nil
}

func (f *fakePayments) GetVerification(ctx context.Context, id uint) (*models.PaymentVerification, error) {
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func (f *fakePayments) UpdateVerification(ctx context.Context, v *models.PaymentVerification) error {
	return nil
}

func (f *fakePayments) GetPendingVerification(ctx context.Context, appointmentID uint) (*models.PaymentVerification, error) {
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func (f *fakePayments) SumVerifiedAmount(ctx context.Context, appointmentID uint) (float64, error) {
	return f.verified, nil
}

func (f *fakePayments) ListVerificationsByStatus(ctx context.Context, status string) ([]models.PaymentVerification, error) {
	return nil, nil
}

// recordingRewards captures the completion hook.
type recordingRewards struct {
	mu        sync.Mutex
	completed []uint
}

func (r *recordingRewards) AppointmentCompleted(ctx context.Context, ap *models.Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = append(r.completed, ap.ID)
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func TestCreateAppointment(t *testing.T) {
	repo := newBookingFixture()
	uc := newCreateUC(repo, monday.AddDate(0, 0, -1))

	ap, err := uc.Execute(context.Background(), bookingInput("2026-03-02", "10:00"))
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}

	if ap.Status != string(domain.StatusPending) {
		t.Errorf("status = %s, want pending", ap.Status)
	}
	if ap.BookingID == "" {
		t.Error("booking id not assigned")
	}
	if ap.StartMinute != 600 || ap.EndMinute != 660 {
		t.Errorf("interval = [%d, %d), want [600, 660)", ap.StartMinute, ap.EndMinute)
	}
	if ap.Amount != 100 {
		t.Errorf("amount = %v, want portfolio price 100", ap.Amount)
	}
	if ap.Duration != "1h" {
		t.Errorf("duration = %q, want portfolio duration 1h", ap.Duration)
	}
}

func TestCreateOutsideSchedule(t *testing.T) {
	repo := newBookingFixture()
	uc := newCreateUC(repo, monday.AddDate(0, 0, -1))

	// before opening
	_, err := uc.Execute(context.Background(), bookingInput("2026-03-02", "08:00"))
	if !httperr.IsBusiness(err, httperr.CodeSchedulingConflict) {
		t.Errorf("08:00 booking error = %v, want %s", err, httperr.CodeSchedulingConflict)
	}

	// runs past closing
	_, err = uc.Execute(context.Background(), bookingInput("2026-03-02", "16:30"))
	if !httperr.IsBusiness(err, httperr.CodeSchedulingConflict) {
		t.Errorf("16:30 booking error = %v, want %s", err, httperr.CodeSchedulingConflict)
	}
}

func TestCreateInPast(t *testing.T) {
	repo := newBookingFixture()
	uc := newCreateUC(repo, monday.Add(12*time.Hour))

	_, err := uc.Execute(context.Background(), bookingInput("2026-03-02", "10:00"))
	if !httperr.IsBusiness(err, httperr.CodeInvalidDateOrTime) {
		t.Errorf("past booking error = %v, want %s", err, httperr.CodeInvalidDateOrTime)
	}
}

func TestCreateRejectsForeignPortfolio(t *testing.T) {
	repo := newBookingFixture()
	repo.addUser(models.User{ID: 7, Name: "Iris", Role: models.RoleStylist})
	uc := newCreateUC(repo, monday.AddDate(0, 0, -1))

	in := bookingInput("2026-03-02", "10:00")
	in.StylistID = 7

	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, httperr.CodeNotFound) {
		t.Errorf("foreign portfolio error = %v, want %s", err, httperr.CodeNotFound)
	}
}

func TestCreateConflictWithPendingHold(t *testing.T) {
	repo := newBookingFixture()
	uc := newCreateUC(repo, monday.AddDate(0, 0, -1))

	if _, err := uc.Execute(context.Background(), bookingInput("2026-03-02", "10:00")); err != nil {
		t.Fatalf("first booking error = %v", err)
	}

	_, err := uc.Execute(context.Background(), bookingInput("2026-03-02", "10:30"))
	if !httperr.IsBusiness(err, httperr.CodeSchedulingConflict) {
		t.Errorf("overlapping booking error = %v, want %s", err, httperr.CodeSchedulingConflict)
	}
}

func TestConcurrentCreateSameSlot(t *testing.T) {
	repo := newBookingFixture()
	uc := newCreateUC(repo, monday.AddDate(0, 0, -1))

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), bookingInput("2026-03-02", "10:00"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, conflict int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case httperr.IsBusiness(err, httperr.CodeSchedulingConflict):
			conflict++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if ok != 1 || conflict != 1 {
		t.Errorf("got %d successes and %d conflicts, want exactly 1 of each", ok, conflict)
	}
}

// --------------------------------------------------
// Approve / Confirm / Complete
// --------------------------------------------------

func TestApproveAppointment(t *testing.T) {
	repo := newBookingFixture()
	createUC := newCreateUC(repo, monday.AddDate(0, 0, -1))
	approveUC := NewApproveAppointment(repo, newTestDispatcher(), nil)

	ap, err := createUC.Execute(context.Background(), bookingInput("2026-03-02", "10:00"))
	if err != nil {
		t.Fatalf("create error = %v", err)
	}

	// only the booked stylist may approve
	if _, err := approveUC.Execute(context.Background(), 99, ap.ID); !httperr.IsBusiness(err, httperr.CodeNotFound) {
		t.Errorf("foreign stylist approve error = %v, want %s", err, httperr.CodeNotFound)
	}

	approved, err := approveUC.Execute(context.Background(), stylistID, ap.ID)
	if err != nil {
		t.Fatalf("approve error = %v", err)
	}
	if approved.Status != string(domain.StatusApproved) || approved.AppointmentCode == "" {
		t.Errorf("approved = %+v, want approved with code", approved)
	}

	if _, err := approveUC.Execute(context.Background(), stylistID, ap.ID); !httperr.IsBusiness(err, httperr.CodeInvalidTransition) {
		t.Errorf("double approve error = %v, want %s", err, httperr.CodeInvalidTransition)
	}
}

func TestConfirmRequiresVerifiedPayment(t *testing.T) {
	repo := newBookingFixture()
	payments := &fakePayments{}
	createUC := newCreateUC(repo, monday.AddDate(0, 0, -1))
	approveUC := NewApproveAppointment(repo, newTestDispatcher(), nil)
	confirmUC := NewConfirmAppointment(repo, payments, newTestDispatcher(), nil)

	ap, err := createUC.Execute(context.Background(), bookingInput("2026-03-02", "10:00"))
	if err != nil {
		t.Fatalf("create error = %v", err)
	}
	if _, err := approveUC.Execute(context.Background(), stylistID, ap.ID); err != nil {
		t.Fatalf("approve error = %v", err)
	}

	_, err = confirmUC.Execute(context.Background(), ap.ID)
	if !httperr.IsBusiness(err, httperr.CodePaymentNotVerified) {
		t.Fatalf("confirm without payment error = %v, want %s", err, httperr.CodePaymentNotVerified)
	}

	payments.verified = 100
	confirmed, err := confirmUC.Execute(context.Background(), ap.ID)
	if err != nil {
		t.Fatalf("confirm error = %v", err)
	}
	if confirmed.Status != string(domain.StatusConfirmed) || confirmed.CompletionCode == "" {
		t.Errorf("confirmed = %+v, want confirmed with completion code", confirmed)
	}
}

func TestCompleteAppointment(t *testing.T) {
	repo := newBookingFixture()
	payments := &fakePayments{verified: 100}
	hook := &recordingRewards{}

	createUC := newCreateUC(repo, monday.AddDate(0, 0, -1))
	approveUC := NewApproveAppointment(repo, newTestDispatcher(), nil)
	confirmUC := NewConfirmAppointment(repo, payments, newTestDispatcher(), nil)
	completeUC := NewCompleteAppointment(repo, newTestDispatcher(), nil, hook, testCfg)
	completeUC.now = func() time.Time { return monday.Add(11 * time.Hour) }

	ap, err := createUC.Execute(context.Background(), bookingInput("2026-03-02", "10:00"))
	if err != nil {
		t.Fatalf("create error = %v", err)
	}
	if _, err := approveUC.Execute(context.Background(), stylistID, ap.ID); err != nil {
		t.Fatalf("approve error = %v", err)
	}
	confirmed, err := confirmUC.Execute(context.Background(), ap.ID)
	if err != nil {
		t.Fatalf("confirm error = %v", err)
	}

	// an outsider never learns the appointment exists
	_, err = completeUC.Execute(context.Background(), 99, models.RoleCustomer, ap.ID, confirmed.CompletionCode)
	if !httperr.IsBusiness(err, httperr.CodeNotFound) {
		t.Errorf("outsider complete error = %v, want %s", err, httperr.CodeNotFound)
	}

	_, err = completeUC.Execute(context.Background(), customerID, models.RoleCustomer, ap.ID, "WRONG999")
	if !httperr.IsBusiness(err, httperr.CodeInvalidCompletionCode) {
		t.Fatalf("wrong code error = %v, want %s", err, httperr.CodeInvalidCompletionCode)
	}

	done, err := completeUC.Execute(context.Background(), customerID, models.RoleCustomer, ap.ID, confirmed.CompletionCode)
	if err != nil {
		t.Fatalf("complete error = %v", err)
	}
	if done.Status != string(domain.StatusCompleted) {
		t.Errorf("status = %s, want completed", done.Status)
	}

	if len(hook.completed) != 1 || hook.completed[0] != ap.ID {
		t.Errorf("rewards hook fired %v times, want once for appointment %d", hook.completed, ap.ID)
	}

	// the code is spent
	_, err = completeUC.Execute(context.Background(), customerID, models.RoleCustomer, ap.ID, confirmed.CompletionCode)
	if !httperr.IsBusiness(err, httperr.CodeInvalidTransition) {
		t.Errorf("replayed complete error = %v, want %s", err, httperr.CodeInvalidTransition)
	}
}

// --------------------------------------------------
// Cancel / Reschedule / Escalate
// --------------------------------------------------

func TestCancelReleasesSlot(t *testing.T) {
	repo := newBookingFixture()
	createUC := newCreateUC(repo, monday.AddDate(0, 0, -1))
	cancelUC := NewCancelAppointment(repo, newTestDispatcher(), nil, testCfg)

	ap, err := createUC.Execute(context.Background(), bookingInput("2026-03-02", "10:00"))
	if err != nil {
		t.Fatalf("create error = %v", err)
	}

	cancelled, err := cancelUC.Execute(context.Background(), customerID, models.RoleCustomer, ap.ID, "changed plans")
	if err != nil {
		t.Fatalf("cancel error = %v", err)
	}
	if cancelled.Status != string(domain.StatusCancelled) {
		t.Errorf("status = %s, want cancelled", cancelled.Status)
	}

	if _, err := createUC.Execute(context.Background(), bookingInput("2026-03-02", "10:00")); err != nil {
		t.Errorf("rebooking a cancelled slot failed: %v", err)
	}
}

func TestApproveCancelled(t *testing.T) {
	repo := newBookingFixture()
	createUC := newCreateUC(repo, monday.AddDate(0, 0, -1))
	cancelUC := NewCancelAppointment(repo, newTestDispatcher(), nil, testCfg)
	approveUC := NewApproveAppointment(repo, newTestDispatcher(), nil)

	ap, err := createUC.Execute(context.Background(), bookingInput("2026-03-02", "10:00"))
	if err != nil {
		t.Fatalf("create error = %v", err)
	}
	if _, err := cancelUC.Execute(context.Background(), customerID, models.RoleCustomer, ap.ID, "no"); err != nil {
		t.Fatalf("cancel error = %v", err)
	}

	_, err = approveUC.Execute(context.Background(), stylistID, ap.ID)
	if !httperr.IsBusiness(err, httperr.CodeInvalidTransition) {
		t.Errorf("approve on cancelled error = %v, want %s", err, httperr.CodeInvalidTransition)
	}
}

func TestRescheduleAppointment(t *testing.T) {
	repo := newBookingFixture()
	createUC := newCreateUC(repo, monday.AddDate(0, 0, -1))
	approveUC := NewApproveAppointment(repo, newTestDispatcher(), nil)

	rescheduleUC := NewRescheduleAppointment(repo, newTestDispatcher(), nil, testCfg)
	rescheduleUC.now = func() time.Time { return monday.AddDate(0, 0, -1) }

	ap, err := createUC.Execute(context.Background(), bookingInput("2026-03-02", "10:00"))
	if err != nil {
		t.Fatalf("create error = %v", err)
	}

	// pending appointments cannot be rescheduled
	_, err = rescheduleUC.Execute(context.Background(), customerID, models.RoleCustomer, ap.ID, "2026-03-09", "11:00")
	if !httperr.IsBusiness(err, httperr.CodeInvalidTransition) {
		t.Fatalf("reschedule pending error = %v, want %s", err, httperr.CodeInvalidTransition)
	}

	if _, err := approveUC.Execute(context.Background(), stylistID, ap.ID); err != nil {
		t.Fatalf("approve error = %v", err)
	}

	moved, err := rescheduleUC.Execute(context.Background(), customerID, models.RoleCustomer, ap.ID, "2026-03-09", "11:00")
	if err != nil {
		t.Fatalf("reschedule error = %v", err)
	}

	if moved.Status != string(domain.StatusPending) {
		t.Errorf("status = %s, want pending after reschedule", moved.Status)
	}
	if moved.AppointmentTime != "11:00" || moved.StartMinute != 660 || moved.EndMinute != 720 {
		t.Errorf("moved interval = %s [%d, %d), want 11:00 [660, 720)", moved.AppointmentTime, moved.StartMinute, moved.EndMinute)
	}
	if moved.AppointmentDate.Format("2006-01-02") != "2026-03-09" {
		t.Errorf("moved date = %s, want 2026-03-09", moved.AppointmentDate.Format("2006-01-02"))
	}

	// the old Monday slot is free again
	if _, err := createUC.Execute(context.Background(), bookingInput("2026-03-02", "10:00")); err != nil {
		t.Errorf("old slot still held after reschedule: %v", err)
	}
}

func TestRescheduleIntoHeldSlot(t *testing.T) {
	repo := newBookingFixture()
	createUC := newCreateUC(repo, monday.AddDate(0, 0, -1))
	approveUC := NewApproveAppointment(repo, newTestDispatcher(), nil)

	rescheduleUC := NewRescheduleAppointment(repo, newTestDispatcher(), nil, testCfg)
	rescheduleUC.now = func() time.Time { return monday.AddDate(0, 0, -1) }

	ap, err := createUC.Execute(context.Background(), bookingInput("2026-03-02", "10:00"))
	if err != nil {
		t.Fatalf("create error = %v", err)
	}
	if _, err := approveUC.Execute(context.Background(), stylistID, ap.ID); err != nil {
		t.Fatalf("approve error = %v", err)
	}
	if _, err := createUC.Execute(context.Background(), bookingInput("2026-03-02", "14:00")); err != nil {
		t.Fatalf("second create error = %v", err)
	}

	_, err = rescheduleUC.Execute(context.Background(), customerID, models.RoleCustomer, ap.ID, "2026-03-02", "14:30")
	if !httperr.IsBusiness(err, httperr.CodeSchedulingConflict) {
		t.Errorf("reschedule into held slot error = %v, want %s", err, httperr.CodeSchedulingConflict)
	}
}

func TestEscalateAndResolveAppointment(t *testing.T) {
	repo := newBookingFixture()
	createUC := newCreateUC(repo, monday.AddDate(0, 0, -1))
	escalateUC := NewEscalateAppointment(repo, newTestDispatcher(), nil)

	resolveUC := NewResolveAppointment(repo, newTestDispatcher(), nil, testCfg)
	resolveUC.now = func() time.Time { return monday.Add(18 * time.Hour) }

	ap, err := createUC.Execute(context.Background(), bookingInput("2026-03-02", "10:00"))
	if err != nil {
		t.Fatalf("create error = %v", err)
	}

	escalated, err := escalateUC.Execute(context.Background(), 10, ap.ID, "dispute")
	if err != nil {
		t.Fatalf("escalate error = %v", err)
	}
	if escalated.Status != string(domain.StatusEscalated) || escalated.EscalateReason != "dispute" {
		t.Errorf("escalated = %+v", escalated)
	}

	resolved, err := resolveUC.Execute(context.Background(), 10, ap.ID, "cancelled")
	if err != nil {
		t.Fatalf("resolve error = %v", err)
	}
	if resolved.Status != string(domain.StatusCancelled) || resolved.CancelledAt == nil {
		t.Errorf("resolved = %+v, want cancelled", resolved)
	}

	// terminal states cannot be escalated again
	if _, err := escalateUC.Execute(context.Background(), 10, ap.ID, "again"); !httperr.IsBusiness(err, httperr.CodeInvalidTransition) {
		t.Errorf("re-escalate error = %v, want %s", err, httperr.CodeInvalidTransition)
	}
}
