package appointment

import (
	"context"
	"time"

	"github.com/glowbookhq/stylist-scheduler/internal/config"
	domain "github.com/glowbookhq/stylist-scheduler/internal/domain/appointment"
	"github.com/glowbookhq/stylist-scheduler/internal/httperr"
	"github.com/glowbookhq/stylist-scheduler/internal/timezone"
)

// ======================================================
// OUTPUT
// ======================================================

type OpenSlot struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// NextSlot is the "next available" answer. Found=false is a valid negative
// result, not an error.
type NextSlot struct {
	Found bool   `json:"found"`
	Date  string `json:"date,omitempty"`
	Start string `json:"start,omitempty"`
	Label string `json:"label"`
}

const NoAvailabilityLabel = "contact for availability"

// ======================================================
// RESOLVER
// ======================================================

// AvailabilityResolver combines the recurring schedule with the active
// appointment set. Candidate starts walk a fixed grid inside each
// configured slot; on conflict the scan jumps to the busy interval's end,
// so the first offered start after a busy block is its exact end time.
// Pure given a schedule+appointment snapshot: the clock is injected.
type AvailabilityResolver struct {
	repo domain.Repository

	gridMinutes       int
	lookaheadDays     int
	minAdvanceMinutes int
	loc               *time.Location

	now func() time.Time
}

func NewAvailabilityResolver(repo domain.Repository, cfg *config.Config) *AvailabilityResolver {
	loc := timezone.Location(cfg.MarketTimezone)

	return &AvailabilityResolver{
		repo:              repo,
		gridMinutes:       cfg.SlotGridMinutes,
		lookaheadDays:     cfg.LookaheadDays,
		minAdvanceMinutes: cfg.MinAdvanceMinutes,
		loc:               loc,
		now:               func() time.Time { return time.Now().In(loc) },
	}
}

// ======================================================
// LIST OPEN SLOTS
// ======================================================

func (uc *AvailabilityResolver) ListOpenSlots(
	ctx context.Context,
	stylistID uint,
	from time.Time,
	to time.Time,
	duration string,
) ([]OpenSlot, error) {

	durMin, err := domain.ParseServiceDuration(duration)
	if err != nil {
		return nil, err
	}

	if to.Before(from) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	out := []OpenSlot{}
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		slots, err := uc.openSlotsForDate(ctx, stylistID, date, durMin, false)
		if err != nil {
			return nil, err
		}
		out = append(out, slots...)
	}

	return out, nil
}

// ======================================================
// NEXT AVAILABLE
// ======================================================

func (uc *AvailabilityResolver) NextAvailable(
	ctx context.Context,
	stylistID uint,
	from time.Time,
	duration string,
) (NextSlot, error) {

	durMin, err := domain.ParseServiceDuration(duration)
	if err != nil {
		return NextSlot{}, err
	}

	for i := 0; i < uc.lookaheadDays; i++ {
		date := from.AddDate(0, 0, i)

		slots, err := uc.openSlotsForDate(ctx, stylistID, date, durMin, true)
		if err != nil {
			return NextSlot{}, err
		}
		if len(slots) == 0 {
			continue
		}

		first := slots[0]
		return NextSlot{
			Found: true,
			Date:  first.Date,
			Start: first.Start,
			Label: uc.label(date, first.Start),
		}, nil
	}

	return NextSlot{Found: false, Label: NoAvailabilityLabel}, nil
}

func (uc *AvailabilityResolver) label(date time.Time, start string) string {
	now := uc.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, uc.loc)

	switch {
	case day.Equal(today):
		return "Today " + start
	case day.Equal(today.AddDate(0, 0, 1)):
		return "Tomorrow " + start
	default:
		return day.Format("Jan 2") + " " + start
	}
}

// ======================================================
// PER-DATE SCAN
// ======================================================

func (uc *AvailabilityResolver) openSlotsForDate(
	ctx context.Context,
	stylistID uint,
	date time.Time,
	durMin int,
	firstHit bool,
) ([]OpenSlot, error) {

	weekday := int(date.Weekday())

	day, err := uc.repo.GetDaySchedule(ctx, stylistID, weekday)
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !day.Available || len(day.Slots) == 0 {
		return nil, nil
	}

	existing, err := uc.repo.ListActiveAppointmentsForDate(ctx, stylistID, date)
	if err != nil {
		return nil, err
	}

	busy := make([]domain.Interval, 0, len(existing))
	for _, ap := range existing {
		busy = append(busy, domain.Interval{
			StartMin: ap.StartMinute,
			EndMin:   ap.EndMinute,
		})
	}

	// Past starts are excluded for the current date only.
	earliest := -1
	now := uc.now()
	if sameDate(date, now) {
		earliest = now.Hour()*60 + now.Minute() + uc.minAdvanceMinutes
	}

	dateStr := date.Format("2006-01-02")
	var out []OpenSlot

	for _, cfgSlot := range day.Slots {
		slotStart, err := domain.ParseClock(cfgSlot.From)
		if err != nil {
			continue
		}
		slotEnd, err := domain.ParseClock(cfgSlot.To)
		if err != nil {
			continue
		}

		cand := slotStart
		for cand+durMin <= slotEnd {
			if cand < earliest {
				cand += uc.gridMinutes
				continue
			}

			candidate := domain.Interval{StartMin: cand, EndMin: cand + durMin}

			conflictEnd := -1
			for _, b := range busy {
				if domain.Overlaps(candidate, b) && b.EndMin > conflictEnd {
					conflictEnd = b.EndMin
				}
			}

			if conflictEnd >= 0 {
				// jump straight past the busy block
				cand = conflictEnd
				continue
			}

			out = append(out, OpenSlot{
				Date:  dateStr,
				Start: domain.FormatClock(cand),
				End:   domain.FormatClock(cand + durMin),
			})
			if firstHit {
				return out, nil
			}

			cand += uc.gridMinutes
		}
	}

	return out, nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
