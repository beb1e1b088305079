package appointment

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/glowbookhq/stylist-scheduler/internal/config"
	domain "github.com/glowbookhq/stylist-scheduler/internal/domain/appointment"
	"github.com/glowbookhq/stylist-scheduler/internal/events"
	"github.com/glowbookhq/stylist-scheduler/internal/models"
)

var testCfg = &config.Config{
	MarketTimezone:  "UTC",
	SlotGridMinutes: 30,
	LookaheadDays:   7,
}

type discardPublisher struct{}

func (discardPublisher) Publish(ctx context.Context, ev events.Event) error { return nil }

func newTestDispatcher() *events.Dispatcher {
	return events.NewDispatcher(discardPublisher{})
}

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func workdaySlot() models.ScheduleTimeSlot {
	return models.ScheduleTimeSlot{From: "09:00", To: "17:00"}
}

func newTestResolver(repo domain.Repository, now time.Time) *AvailabilityResolver {
	uc := NewAvailabilityResolver(repo, testCfg)
	uc.now = func() time.Time { return now }
	return uc
}

func TestListOpenSlotsFreeDay(t *testing.T) {
	repo := newFakeRepo()
	repo.addDaySchedule(2, 1, true, workdaySlot())

	// the day before, so no past-start filtering applies
	uc := newTestResolver(repo, monday.AddDate(0, 0, -1).Add(10*time.Hour))

	slots, err := uc.ListOpenSlots(context.Background(), 2, monday, monday, "1h")
	if err != nil {
		t.Fatalf("ListOpenSlots error = %v", err)
	}

	if len(slots) == 0 {
		t.Fatal("no slots returned for a free day")
	}
	first := slots[0]
	if first.Start != "09:00" || first.End != "10:00" || first.Date != "2026-03-02" {
		t.Errorf("first slot = %+v, want 09:00-10:00 on 2026-03-02", first)
	}

	// 09:00 through 16:00 on a 30-minute grid
	if len(slots) != 15 {
		t.Errorf("len(slots) = %d, want 15", len(slots))
	}
}

func TestListOpenSlotsSkipsBusyInterval(t *testing.T) {
	repo := newFakeRepo()
	repo.addDaySchedule(2, 1, true, workdaySlot())
	repo.addAppointment(models.Appointment{
		StylistID:       2,
		Status:          string(domain.StatusConfirmed),
		AppointmentDate: monday,
		StartMinute:     600, // 10:00-11:00
		EndMinute:       660,
	})

	uc := newTestResolver(repo, monday.AddDate(0, 0, -1))

	slots, err := uc.ListOpenSlots(context.Background(), 2, monday, monday, "1h")
	if err != nil {
		t.Fatalf("ListOpenSlots error = %v", err)
	}

	for _, s := range slots {
		if s.Start == "09:30" || s.Start == "10:00" || s.Start == "10:30" {
			t.Errorf("slot %s conflicts with the 10:00-11:00 appointment", s.Start)
		}
	}

	// the first start after the busy block is its exact end
	var afterBusy string
	for _, s := range slots {
		if s.Start > "09:00" {
			afterBusy = s.Start
			break
		}
	}
	if afterBusy != "11:00" {
		t.Errorf("first start after busy block = %s, want 11:00", afterBusy)
	}
}

func TestNextAvailableAfterBusyBlock(t *testing.T) {
	repo := newFakeRepo()
	repo.addDaySchedule(2, 1, true, workdaySlot())
	repo.addAppointment(models.Appointment{
		StylistID:       2,
		Status:          string(domain.StatusConfirmed),
		AppointmentDate: monday,
		StartMinute:     600,
		EndMinute:       660,
	})

	// 09:30 on the day itself: 09:xx starts are in the past, 10:xx conflict
	uc := newTestResolver(repo, monday.Add(9*time.Hour+30*time.Minute))

	next, err := uc.NextAvailable(context.Background(), 2, monday, "1h")
	if err != nil {
		t.Fatalf("NextAvailable error = %v", err)
	}

	if !next.Found {
		t.Fatal("NextAvailable found nothing")
	}
	if next.Start != "11:00" {
		t.Errorf("next start = %s, want 11:00", next.Start)
	}
	if next.Label != "Today 11:00" {
		t.Errorf("label = %q, want %q", next.Label, "Today 11:00")
	}
}

func TestNextAvailableTomorrowLabel(t *testing.T) {
	repo := newFakeRepo()
	repo.addDaySchedule(2, 1, true, workdaySlot()) // Mondays only

	sunday := monday.AddDate(0, 0, -1)
	uc := newTestResolver(repo, sunday.Add(12*time.Hour))

	next, err := uc.NextAvailable(context.Background(), 2, sunday, "1h")
	if err != nil {
		t.Fatalf("NextAvailable error = %v", err)
	}

	if !next.Found || next.Date != "2026-03-02" {
		t.Fatalf("next = %+v, want first Monday slot", next)
	}
	if next.Label != "Tomorrow 09:00" {
		t.Errorf("label = %q, want %q", next.Label, "Tomorrow 09:00")
	}
}

func TestNextAvailableSentinel(t *testing.T) {
	repo := newFakeRepo()
	for wd := 0; wd < 7; wd++ {
		repo.addDaySchedule(2, wd, false)
	}

	uc := newTestResolver(repo, monday)

	next, err := uc.NextAvailable(context.Background(), 2, monday, "1h")
	if err != nil {
		t.Fatalf("NextAvailable error = %v", err)
	}

	if next.Found {
		t.Errorf("next = %+v, want not found", next)
	}
	if next.Label != NoAvailabilityLabel {
		t.Errorf("label = %q, want %q", next.Label, NoAvailabilityLabel)
	}
}

func TestListOpenSlotsDeterministic(t *testing.T) {
	repo := newFakeRepo()
	repo.addDaySchedule(2, 1, true,
		models.ScheduleTimeSlot{From: "09:00", To: "12:00"},
		models.ScheduleTimeSlot{From: "13:00", To: "17:00"},
	)
	repo.addAppointment(models.Appointment{
		StylistID:       2,
		Status:          string(domain.StatusApproved),
		AppointmentDate: monday,
		StartMinute:     810, // 13:30-14:15
		EndMinute:       855,
	})

	uc := newTestResolver(repo, monday.AddDate(0, 0, -1))

	first, err := uc.ListOpenSlots(context.Background(), 2, monday, monday, "45m")
	if err != nil {
		t.Fatalf("ListOpenSlots error = %v", err)
	}
	second, err := uc.ListOpenSlots(context.Background(), 2, monday, monday, "45m")
	if err != nil {
		t.Fatalf("ListOpenSlots error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ:\n%v\n%v", first, second)
	}
}

func TestListOpenSlotsRejectsBadDuration(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestResolver(repo, monday)

	if _, err := uc.ListOpenSlots(context.Background(), 2, monday, monday, "soon"); err == nil {
		t.Error("malformed duration accepted")
	}
}

func TestListOpenSlotsUnconfiguredStylist(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestResolver(repo, monday.AddDate(0, 0, -1))

	slots, err := uc.ListOpenSlots(context.Background(), 99, monday, monday, "1h")
	if err != nil {
		t.Fatalf("ListOpenSlots error = %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("slots for unconfigured stylist = %v, want none", slots)
	}
}
