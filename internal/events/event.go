package events

import (
	"slotbook/internal/domains/reservation/model"
	"slotbook/shared/constant"
	"slotbook/shared/timezone"
	"time"
)

const (
	TypeCreated = "Created"
	TypeDeleted = "Deleted"
)

// ReservationEvent is the change feed payload. Created events carry the full
// reservation; Deleted events carry only the id.
type ReservationEvent struct {
	Type       string    `json:"type"`
	ID         string    `json:"id"`
	HolderName string    `json:"holder_name,omitempty"`
	SlotDate   string    `json:"slot_date,omitempty"`
	StartHour  int       `json:"start_hour,omitempty"`
	EndHour    int       `json:"end_hour,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func Created(reservation model.Reservation) ReservationEvent {
	return ReservationEvent{
		Type:       TypeCreated,
		ID:         reservation.ID,
		HolderName: reservation.HolderName,
		SlotDate:   reservation.SlotDate.Format(constant.SlotDateFormat),
		StartHour:  reservation.StartHour,
		EndHour:    reservation.EndHour,
		OccurredAt: timezone.Now(),
	}
}

func Deleted(id string) ReservationEvent {
	return ReservationEvent{
		Type:       TypeDeleted,
		ID:         id,
		OccurredAt: timezone.Now(),
	}
}
