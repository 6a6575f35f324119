package model

import (
	"slotbook/shared/model"
	"time"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID         = "id"
	FieldHolderName = "holder_name"
	FieldSlotDate   = "slot_date"
	FieldStartHour  = "start_hour"
	FieldEndHour    = "end_hour"
)

// Reservation is one holder's claim on the shared resource for a half-open
// hour range on a single day. Reservations are never edited in place: a
// change is a cancellation followed by a new admission.
type Reservation struct {
	ID         string    `db:"id"`
	HolderName string    `db:"holder_name"`
	SlotDate   time.Time `db:"slot_date"`
	StartHour  int       `db:"start_hour"`
	EndHour    int       `db:"end_hour"`
	model.Metadata
}

// Duration returns the reservation's length in whole hours.
func (r *Reservation) Duration() int {
	return r.EndHour - r.StartHour
}

// Slot returns the reservation's slot as a value type.
func (r *Reservation) Slot() Slot {
	return Slot{
		Date:      r.SlotDate,
		StartHour: r.StartHour,
		EndHour:   r.EndHour,
	}
}
