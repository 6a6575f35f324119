package dto

import (
	"slotbook/internal/domains/reservation/model"
	"slotbook/shared"
	"slotbook/shared/constant"
	gDto "slotbook/shared/dto"
	"slotbook/shared/failure"
	gModel "slotbook/shared/model"
	"slotbook/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	HolderName string `json:"holder_name" validate:"required,max=100"`
	Date       string `json:"date"        validate:"required"`
	StartHour  int    `json:"start_hour"`
	EndHour    int    `json:"end_hour"`
}

// ParseDate parses the request date as a wall-clock day. Only the strict
// zero-padded form is accepted; legacy unpadded rows are repaired offline by
// the fixdates command.
func (c *CreateReservationRequest) ParseDate() (time.Time, error) {
	date, err := time.Parse(constant.SlotDateFormat, c.Date)
	if err != nil {
		return time.Time{}, failure.BadRequestFromString("date must use the YYYY-MM-DD format") //nolint:wrapcheck
	}

	return date, nil
}

func (c *CreateReservationRequest) ToModel(date time.Time) model.Reservation {
	return model.Reservation{
		ID:         uuid.NewString(),
		HolderName: c.HolderName,
		SlotDate:   date,
		StartHour:  c.StartHour,
		EndHour:    c.EndHour,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  c.HolderName,
			ModifiedBy: c.HolderName,
		},
	}
}

type ReservationResponse struct {
	ID         string `json:"id"`
	HolderName string `json:"holder_name"`
	Date       string `json:"date"`
	StartHour  int    `json:"start_hour"`
	EndHour    int    `json:"end_hour"`
	Duration   int    `json:"duration"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.HolderName = model.HolderName
	r.Date = model.SlotDate.Format(constant.SlotDateFormat)
	r.StartHour = model.StartHour
	r.EndHour = model.EndHour
	r.Duration = model.Duration()
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}
