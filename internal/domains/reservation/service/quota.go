package service

import (
	"context"
	"fmt"
	"slotbook/internal/domains/reservation/model"
	"slotbook/shared/constant"
	"slotbook/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// checkQuotas enforces the holder's hour caps inside the admission
// transaction. The daily cap is evaluated first: a request breaking both
// caps is reported as a daily violation. Committed reservations only count
// toward usage, so cancelled hours are freed immediately.
func (s *serviceImpl) checkQuotas(ctx context.Context, tx *sqlx.Tx, holder string, slot model.Slot) error {
	requested := slot.Duration()

	dailyUsed, err := s.repo.SumHoursTx(ctx, tx, holder, slot.Date, slot.Date)
	if err != nil {
		log.Error().Err(err).Msg("failed to sum daily reserved hours")

		return fmt.Errorf("failed to sum daily reserved hours: %w", err)
	}

	if dailyUsed+requested > s.cfg.Booking.DailyLimitHours {
		return failure.Rejected(
			failure.ReasonDailyQuota,
			fmt.Sprintf(
				"daily limit of %d hours exceeded: %d already reserved on %s, %d requested",
				s.cfg.Booking.DailyLimitHours,
				dailyUsed,
				slot.Date.Format(constant.SlotDateFormat),
				requested,
			),
		) //nolint:wrapcheck
	}

	weekStart := model.WeekStart(slot.Date)
	weekEnd := model.WeekEnd(slot.Date)

	weeklyUsed, err := s.repo.SumHoursTx(ctx, tx, holder, weekStart, weekEnd)
	if err != nil {
		log.Error().Err(err).Msg("failed to sum weekly reserved hours")

		return fmt.Errorf("failed to sum weekly reserved hours: %w", err)
	}

	if weeklyUsed+requested > s.cfg.Booking.WeeklyLimitHours {
		return failure.Rejected(
			failure.ReasonWeeklyQuota,
			fmt.Sprintf(
				"weekly limit of %d hours exceeded: %d already reserved in the week of %s, %d requested",
				s.cfg.Booking.WeeklyLimitHours,
				weeklyUsed,
				weekStart.Format(constant.SlotDateFormat),
				requested,
			),
		) //nolint:wrapcheck
	}

	return nil
}
