package reservation_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "slotbook/infras/otel/mocks"
	"slotbook/internal/domains/reservation/model"
	"slotbook/internal/domains/reservation/model/dto"
	serviceMocks "slotbook/internal/domains/reservation/service/mocks"
	eventMocks "slotbook/internal/events/mocks"
	"slotbook/internal/handlers/reservation"
	gDto "slotbook/shared/dto"
)

func newTestRouter(t *testing.T) (*serviceMocks.MockReservation, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockService := serviceMocks.NewMockReservation(ctrl)
	mockNotifier := eventMocks.NewMockNotifier(ctrl)

	handler := reservation.New(mockService, mockNotifier, otelMocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/", handler.Router)

	return mockService, router
}

func TestReservationHandler_GetReservations(t *testing.T) {
	t.Run("returns the full set when no pagination is requested", func(t *testing.T) {
		mockService, router := newTestRouter(t)

		var captured gDto.QueryParams

		mockService.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req gDto.QueryParams, _ gDto.FilterGroup) (dto.GetReservationsResponse, error) {
				captured = req

				return dto.GetReservationsResponse{}, nil
			})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reservations", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, captured.Page)
		assert.Zero(t, captured.Limit)
	})

	t.Run("pagination applies only when asked for", func(t *testing.T) {
		mockService, router := newTestRouter(t)

		var captured gDto.QueryParams

		mockService.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req gDto.QueryParams, _ gDto.FilterGroup) (dto.GetReservationsResponse, error) {
				captured = req

				return dto.GetReservationsResponse{}, nil
			})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reservations?page=2&limit=5", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 2, captured.Page)
		assert.Equal(t, 5, captured.Limit)
	})

	t.Run("holder filter is forwarded", func(t *testing.T) {
		mockService, router := newTestRouter(t)

		var captured gDto.FilterGroup

		mockService.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error) {
				captured = filter

				return dto.GetReservationsResponse{}, nil
			})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reservations?holder_name=Kim", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, captured.Filters, 1)
		assert.Equal(t, gDto.Filter{
			Field:    model.FieldHolderName,
			Operator: gDto.FilterOperatorEq,
			Value:    "Kim",
			Table:    model.TableName,
		}, captured.Filters[0])
	})
}
