package dto_test

import (
	"slotbook/internal/domains/reservation/model"
	"slotbook/internal/domains/reservation/model/dto"
	gModel "slotbook/shared/model"
	"testing"
	"time"
)

func TestCreateReservationRequest_ParseDate(t *testing.T) {
	tests := []struct {
		name        string
		date        string
		expectError bool
	}{
		{
			name: "valid padded date",
			date: "2024-06-10",
		},
		{
			name:        "unpadded month and day rejected",
			date:        "2024-6-1",
			expectError: true,
		},
		{
			name:        "garbage rejected",
			date:        "next tuesday",
			expectError: true,
		},
		{
			name:        "empty rejected",
			date:        "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.CreateReservationRequest{Date: tt.date}

			parsed, err := req.ParseDate()

			if tt.expectError {
				if err == nil {
					t.Error("expected parse error, got nil")
				}

				return
			}

			if err != nil {
				t.Fatalf("expected no parse error, got %v", err)
			}

			if parsed.Format("2006-01-02") != tt.date {
				t.Errorf("expected round-trip date %s, got %s", tt.date, parsed.Format("2006-01-02"))
			}
		})
	}
}

func TestCreateReservationRequest_ToModel(t *testing.T) {
	req := dto.CreateReservationRequest{
		HolderName: "Kim",
		Date:       "2024-06-10",
		StartHour:  9,
		EndHour:    11,
	}

	date, err := req.ParseDate()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	res := req.ToModel(date)

	if res.ID == "" {
		t.Error("expected a generated id")
	}

	if res.HolderName != "Kim" {
		t.Errorf("expected holder Kim, got %s", res.HolderName)
	}

	if res.StartHour != 9 || res.EndHour != 11 {
		t.Errorf("expected hours 9-11, got %d-%d", res.StartHour, res.EndHour)
	}

	if res.Duration() != 2 {
		t.Errorf("expected duration 2, got %d", res.Duration())
	}

	if res.CreatedBy != "Kim" {
		t.Errorf("expected created_by to carry the holder, got %s", res.CreatedBy)
	}
}

func TestReservationResponse_FromModel(t *testing.T) {
	mod := model.Reservation{
		ID:         "res-1",
		HolderName: "Lee",
		SlotDate:   time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC),
		StartHour:  20,
		EndHour:    22,
		Metadata: gModel.Metadata{
			CreatedAt:  time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC),
			ModifiedAt: time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC),
			CreatedBy:  "Lee",
			ModifiedBy: "Lee",
		},
	}

	var res dto.ReservationResponse
	res.FromModel(mod)

	if res.Date != "2024-06-16" {
		t.Errorf("expected formatted date 2024-06-16, got %s", res.Date)
	}

	if res.Duration != 2 {
		t.Errorf("expected duration 2, got %d", res.Duration)
	}
}

func TestGetReservationsResponse_FromModels(t *testing.T) {
	models := []model.Reservation{
		{ID: "a", HolderName: "Kim", SlotDate: time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), StartHour: 9, EndHour: 10},
		{ID: "b", HolderName: "Lee", SlotDate: time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), StartHour: 10, EndHour: 11},
	}

	var res dto.GetReservationsResponse
	res.FromModels(models, 2, 10)

	if len(res.Reservations) != 2 {
		t.Fatalf("expected 2 reservations, got %d", len(res.Reservations))
	}

	if res.TotalData != 2 || res.TotalPage != 1 {
		t.Errorf("expected totals 2/1, got %d/%d", res.TotalData, res.TotalPage)
	}
}
