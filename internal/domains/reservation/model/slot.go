package model

import (
	"fmt"
	"slotbook/config"
	"slotbook/shared/failure"
	"time"
)

// Slot is a half-open hour interval [StartHour, EndHour) on a single
// calendar date. The date carries no time zone meaning: it is a wall-clock
// day, compared by its formatted value only.
type Slot struct {
	Date      time.Time
	StartHour int
	EndHour   int
}

// NewSlot builds a validated slot. The end hour must be strictly after the
// start hour, and both hours must fall inside the configured open-hours
// window [openHour, closeHour].
func NewSlot(date time.Time, startHour, endHour, openHour, closeHour int) (Slot, error) {
	if endHour <= startHour {
		return Slot{}, failure.Rejected(
			failure.ReasonInvalidRange,
			fmt.Sprintf("end hour %d must be after start hour %d", endHour, startHour),
		) //nolint:wrapcheck
	}

	if startHour < openHour || endHour > closeHour {
		return Slot{}, failure.Rejected(
			failure.ReasonInvalidHour,
			fmt.Sprintf("hours must fall between %02d:00 and %02d:00", openHour, closeHour),
		) //nolint:wrapcheck
	}

	return Slot{
		Date:      date,
		StartHour: startHour,
		EndHour:   endHour,
	}, nil
}

// NewSlotFromConfig builds a validated slot using the configured booking window.
func NewSlotFromConfig(cfg *config.Config, date time.Time, startHour, endHour int) (Slot, error) {
	return NewSlot(date, startHour, endHour, cfg.Booking.OpenHour, cfg.Booking.CloseHour)
}

// Duration returns the slot length in whole hours, always >= 1 for a
// validated slot.
func (s Slot) Duration() int {
	return s.EndHour - s.StartHour
}

// Overlaps reports whether two slots on the same date intersect. Half-open
// semantics: back-to-back slots sharing only a boundary hour do not overlap.
func (s Slot) Overlaps(other Slot) bool {
	if !SameDate(s.Date, other.Date) {
		return false
	}

	return s.StartHour < other.EndHour && other.StartHour < s.EndHour
}

// SameDate compares two times as wall-clock days, ignoring clock and zone.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}

// WeekStart returns the Monday starting the week containing date. A Sunday
// belongs to the week that started six days earlier, not to a new week.
func WeekStart(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7

	y, m, d := date.Date()

	return time.Date(y, m, d-offset, 0, 0, 0, 0, date.Location())
}

// WeekEnd returns the Sunday closing the week containing date, inclusive.
func WeekEnd(date time.Time) time.Time {
	return WeekStart(date).AddDate(0, 0, 6)
}
