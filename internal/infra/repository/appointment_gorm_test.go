package repository

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSlotLockKey(t *testing.T) {
	monday := day(2026, time.March, 2)

	got := slotLockKey(2, monday)
	if got != "appointments:2:2026-03-02" {
		t.Fatalf("slotLockKey = %q", got)
	}

	// Two writers targeting the same stylist and day must contend on
	// one lock regardless of the time-of-day component.
	if slotLockKey(2, monday.Add(9*time.Hour)) != got {
		t.Fatalf("key should ignore time of day")
	}

	if slotLockKey(3, monday) == got {
		t.Fatalf("distinct stylists should not share a key")
	}
	if slotLockKey(2, day(2026, time.March, 3)) == got {
		t.Fatalf("distinct days should not share a key")
	}
}
