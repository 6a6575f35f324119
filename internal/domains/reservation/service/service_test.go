package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"slotbook/config"
	"slotbook/infras/otel/mocks"
	reservationMocks "slotbook/internal/domains/reservation/mocks"
	"slotbook/internal/domains/reservation/model"
	"slotbook/internal/domains/reservation/model/dto"
	"slotbook/internal/domains/reservation/service"
	eventMocks "slotbook/internal/events/mocks"
	cacheMocks "slotbook/shared/cache/mocks"
	gDto "slotbook/shared/dto"
	"slotbook/shared/failure"
)

func newBookingConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.OpenHour = 6
	cfg.Booking.CloseHour = 24
	cfg.Booking.DailyLimitHours = 2
	cfg.Booking.WeeklyLimitHours = 6

	return cfg
}

func passthroughTx(ctx context.Context, fn func(context.Context, *sqlx.Tx) error) error {
	return fn(ctx, nil)
}

func TestReservationService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockNotifier := eventMocks.NewMockNotifier(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockNotifier, newBookingConfig(), mockCache, mockOtel)

	validReq := dto.CreateReservationRequest{
		HolderName: "Kim",
		Date:       "2024-06-10",
		StartHour:  9,
		EndHour:    11,
	}

	tests := []struct {
		name       string
		req        dto.CreateReservationRequest
		setupMock  func()
		wantErr    bool
		wantReason string
	}{
		{
			name: "admitted when all checks pass",
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(passthroughTx)
				mockRepo.EXPECT().LockAdmissionTx(gomock.Any(), gomock.Any(), "Kim", gomock.Any()).Return(nil)
				mockRepo.EXPECT().SumHoursTx(gomock.Any(), gomock.Any(), "Kim", gomock.Any(), gomock.Any()).Return(0, nil).Times(2)
				mockRepo.EXPECT().HasOverlapTx(gomock.Any(), gomock.Any(), gomock.Any(), 9, 11).Return(false, nil)
				mockRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				mockNotifier.EXPECT().ReservationCreated(gomock.Any(), gomock.Any())
			},
		},
		{
			name: "rejected when end hour not after start hour",
			req: dto.CreateReservationRequest{
				HolderName: "Kim",
				Date:       "2024-06-10",
				StartHour:  11,
				EndHour:    11,
			},
			setupMock:  func() {},
			wantErr:    true,
			wantReason: failure.ReasonInvalidRange,
		},
		{
			name: "rejected when hours fall outside the open window",
			req: dto.CreateReservationRequest{
				HolderName: "Kim",
				Date:       "2024-06-10",
				StartHour:  4,
				EndHour:    5,
			},
			setupMock:  func() {},
			wantErr:    true,
			wantReason: failure.ReasonInvalidHour,
		},
		{
			name: "bad request on malformed date",
			req: dto.CreateReservationRequest{
				HolderName: "Kim",
				Date:       "2024-6-10",
				StartHour:  9,
				EndHour:    10,
			},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "rejected when the daily cap would be exceeded",
			req: dto.CreateReservationRequest{
				HolderName: "Kim",
				Date:       "2024-06-10",
				StartHour:  14,
				EndHour:    16,
			},
			setupMock: func() {
				mockRepo.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(passthroughTx)
				mockRepo.EXPECT().LockAdmissionTx(gomock.Any(), gomock.Any(), "Kim", gomock.Any()).Return(nil)
				// one hour already reserved that day, two more requested
				mockRepo.EXPECT().SumHoursTx(gomock.Any(), gomock.Any(), "Kim", gomock.Any(), gomock.Any()).Return(1, nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonDailyQuota,
		},
		{
			name: "rejected when the weekly cap would be exceeded",
			req: dto.CreateReservationRequest{
				HolderName: "Lee",
				Date:       "2024-06-14",
				StartHour:  9,
				EndHour:    11,
			},
			setupMock: func() {
				mockRepo.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(passthroughTx)
				mockRepo.EXPECT().LockAdmissionTx(gomock.Any(), gomock.Any(), "Lee", gomock.Any()).Return(nil)
				gomock.InOrder(
					mockRepo.EXPECT().SumHoursTx(gomock.Any(), gomock.Any(), "Lee", gomock.Any(), gomock.Any()).Return(0, nil),
					mockRepo.EXPECT().SumHoursTx(gomock.Any(), gomock.Any(), "Lee", gomock.Any(), gomock.Any()).Return(5, nil),
				)
			},
			wantErr:    true,
			wantReason: failure.ReasonWeeklyQuota,
		},
		{
			name: "daily violation reported before weekly when both would break",
			req: dto.CreateReservationRequest{
				HolderName: "Lee",
				Date:       "2024-06-14",
				StartHour:  9,
				EndHour:    11,
			},
			setupMock: func() {
				mockRepo.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(passthroughTx)
				mockRepo.EXPECT().LockAdmissionTx(gomock.Any(), gomock.Any(), "Lee", gomock.Any()).Return(nil)
				mockRepo.EXPECT().SumHoursTx(gomock.Any(), gomock.Any(), "Lee", gomock.Any(), gomock.Any()).Return(2, nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonDailyQuota,
		},
		{
			name: "rejected when the slot overlaps an existing reservation",
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(passthroughTx)
				mockRepo.EXPECT().LockAdmissionTx(gomock.Any(), gomock.Any(), "Kim", gomock.Any()).Return(nil)
				mockRepo.EXPECT().SumHoursTx(gomock.Any(), gomock.Any(), "Kim", gomock.Any(), gomock.Any()).Return(0, nil).Times(2)
				mockRepo.EXPECT().HasOverlapTx(gomock.Any(), gomock.Any(), gomock.Any(), 9, 11).Return(true, nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonSlotConflict,
		},
		{
			name: "repository error during insert",
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(passthroughTx)
				mockRepo.EXPECT().LockAdmissionTx(gomock.Any(), gomock.Any(), "Kim", gomock.Any()).Return(nil)
				mockRepo.EXPECT().SumHoursTx(gomock.Any(), gomock.Any(), "Kim", gomock.Any(), gomock.Any()).Return(0, nil).Times(2)
				mockRepo.EXPECT().HasOverlapTx(gomock.Any(), gomock.Any(), gomock.Any(), 9, 11).Return(false, nil)
				mockRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantReason != "" {
					assert.Equal(t, tt.wantReason, failure.GetReason(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, tt.req.HolderName, res.HolderName)
			assert.Equal(t, tt.req.Date, res.Date)
			assert.Equal(t, tt.req.EndHour-tt.req.StartHour, res.Duration)
		})
	}
}

func TestReservationService_CreateQuotaWindows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockNotifier := eventMocks.NewMockNotifier(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockNotifier, newBookingConfig(), mockCache, mockOtel)

	// 2024-06-16 is a Sunday: its week runs Monday 2024-06-10 through
	// 2024-06-16, not into the following week.
	date := "2024-06-16"
	weekStart := "2024-06-10"

	mockRepo.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(passthroughTx)
	mockRepo.EXPECT().LockAdmissionTx(gomock.Any(), gomock.Any(), "Park", gomock.Any()).Return(nil)

	gomock.InOrder(
		mockRepo.EXPECT().
			SumHoursTx(gomock.Any(), gomock.Any(), "Park", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, _ string, from, to time.Time) (int, error) {
				assert.Equal(t, date, from.Format("2006-01-02"))
				assert.Equal(t, date, to.Format("2006-01-02"))

				return 0, nil
			}),
		mockRepo.EXPECT().
			SumHoursTx(gomock.Any(), gomock.Any(), "Park", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, _ string, from, to time.Time) (int, error) {
				assert.Equal(t, weekStart, from.Format("2006-01-02"))
				assert.Equal(t, date, to.Format("2006-01-02"))

				return 0, nil
			}),
	)

	mockRepo.EXPECT().HasOverlapTx(gomock.Any(), gomock.Any(), gomock.Any(), 9, 10).Return(false, nil)
	mockRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	mockNotifier.EXPECT().ReservationCreated(gomock.Any(), gomock.Any())

	_, err := svc.Create(context.Background(), dto.CreateReservationRequest{
		HolderName: "Park",
		Date:       date,
		StartHour:  9,
		EndHour:    10,
	})
	assert.NoError(t, err)
}

func TestReservationService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockNotifier := eventMocks.NewMockNotifier(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockNotifier, newBookingConfig(), mockCache, mockOtel)

	params := gDto.QueryParams{Page: 1, Limit: 10}

	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	mockRepo.EXPECT().
		GetAll(gomock.Any(), params, gomock.Any()).
		Return([]model.Reservation{
			{
				ID:         "res-1",
				HolderName: "Kim",
				StartHour:  9,
				EndHour:    11,
			},
		}, nil)

	res, err := svc.GetAll(context.Background(), params, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Reservations, 1)
	assert.Equal(t, "res-1", res.Reservations[0].ID)
	assert.Equal(t, 2, res.Reservations[0].Duration)
}

func TestReservationService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockNotifier := eventMocks.NewMockNotifier(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockNotifier, newBookingConfig(), mockCache, mockOtel)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "found",
			id:   "res-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{ID: "res-1", HolderName: "Kim"}, nil)
			},
		},
		{
			name: "not found",
			id:   "missing",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "repository error",
			id:   "res-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.id, res.ID)
		})
	}
}

func TestReservationService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockNotifier := eventMocks.NewMockNotifier(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockNotifier, newBookingConfig(), mockCache, mockOtel)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "removed",
			id:   "res-1",
			setupMock: func() {
				mockRepo.EXPECT().DeleteByID(gomock.Any(), "res-1").Return(true, nil)
				mockNotifier.EXPECT().ReservationDeleted(gomock.Any(), "res-1")
			},
		},
		{
			name: "not found, no event",
			id:   "missing",
			setupMock: func() {
				mockRepo.EXPECT().DeleteByID(gomock.Any(), "missing").Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "repository error",
			id:   "res-1",
			setupMock: func() {
				mockRepo.EXPECT().DeleteByID(gomock.Any(), "res-1").Return(false, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
		})
	}
}
