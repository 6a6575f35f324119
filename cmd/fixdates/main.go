package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"slotbook/config"
	"slotbook/infras/otel"
	"slotbook/infras/postgres"
	"slotbook/internal/domains/reservation/model"
	"slotbook/internal/domains/reservation/repository"
	"slotbook/shared/constant"
	"slotbook/shared/logger"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// fixdates imports reservations exported from the legacy store, repairing
// unpadded YYYY-M-D slot dates on the way in. The API only accepts the
// strict zero-padded form, so legacy rows pass through here once.

type legacyReservation struct {
	HolderName string `json:"holder_name"`
	Date       string `json:"date"`
	StartHour  int    `json:"start_hour"`
	EndHour    int    `json:"end_hour"`
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal().Msg("usage: fixdates <legacy-export.json>")
	}

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Str("file", os.Args[1]).Msg("Failed to read legacy export")
	}

	var rows []legacyReservation
	if err := json.Unmarshal(raw, &rows); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse legacy export")
	}

	ctx := context.Background()
	repo := repository.New(postgres.New(cfg), otel.New(cfg))

	imported, repaired, skipped := 0, 0, 0

	for _, row := range rows {
		date, wasRepaired, err := normalizeDate(row.Date)
		if err != nil {
			log.Warn().Err(err).Str("holder", row.HolderName).Msg("Skipping row with unrecognized date")

			skipped++

			continue
		}

		if wasRepaired {
			repaired++
		}

		reservation := model.Reservation{
			ID:         uuid.NewString(),
			HolderName: row.HolderName,
			SlotDate:   date,
			StartHour:  row.StartHour,
			EndHour:    row.EndHour,
		}
		reservation.CreatedBy = row.HolderName
		reservation.ModifiedBy = row.HolderName

		if err := repo.Insert(ctx, reservation); err != nil {
			log.Warn().
				Err(err).
				Str("holder", row.HolderName).
				Str("date", date.Format(constant.SlotDateFormat)).
				Msg("Skipping row that failed to insert")

			skipped++

			continue
		}

		imported++
	}

	log.Info().
		Int("imported", imported).
		Int("repaired", repaired).
		Int("skipped", skipped).
		Msg("Legacy import completed.")
}

// normalizeDate accepts both the strict form and the legacy unpadded
// YYYY-M-D form, reporting whether the value needed repair.
func normalizeDate(value string) (time.Time, bool, error) {
	if date, err := time.Parse(constant.SlotDateFormat, value); err == nil {
		return date, false, nil
	}

	date, err := time.Parse("2006-1-2", value)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("unrecognized date %q: %w", value, err)
	}

	return date, true, nil
}
