package reservation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slotbook/infras/otel"
	"slotbook/internal/domains/reservation/model"
	"slotbook/internal/domains/reservation/model/dto"
	"slotbook/internal/domains/reservation/service"
	"slotbook/internal/events"
	"slotbook/shared/constant"
	gDto "slotbook/shared/dto"
	"slotbook/shared/validator"
	"slotbook/transport/http/response"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

const streamHeartbeatInterval = 30 * time.Second

type Handler struct {
	service  service.Reservation
	notifier events.Notifier
	otel     otel.Otel
}

func New(service service.Reservation, notifier events.Notifier, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		notifier: notifier,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Get("/stream", handler.StreamReservations)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Delete("/{id}", handler.DeleteReservation)
	})
}

// CreateReservation admits a new slot reservation.
// @Summary Create a new reservation
// @Description Reserve a block of whole hours on a single date. Requests breaking the daily or weekly hour caps, or overlapping an existing reservation, are rejected.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Create Reservation Request"
// @Success 201 {object} response.Data[dto.ReservationResponse] "Reservation created"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [post]
func (handler *Handler) CreateReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("holder", req.HolderName).Msg("reservation not admitted")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Reservation created for " + res.HolderName)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetReservations retrieves reservations with optional filters. Without
// explicit page/limit parameters the full reservation set is returned, so
// stream subscribers can resynchronize from a single call.
// @Summary Get all reservations
// @Description Retrieve reservations. Returns the full set unless page and limit are supplied; filtering by holder and date is optional.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param holder_name query string false "Filter by holder name"
// @Param slot_date query string false "Filter by slot date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetReservationsResponse] "List of reservations"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [get]
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	holderName := r.URL.Query().Get(model.FieldHolderName)
	slotDate := r.URL.Query().Get(model.FieldSlotDate)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if holderName != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldHolderName,
			Operator: gDto.FilterOperatorEq,
			Value:    holderName,
			Table:    model.TableName,
		})
	}

	if slotDate != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldSlotDate,
			Operator: gDto.FilterOperatorEq,
			Value:    slotDate,
			Table:    model.TableName,
		})
	}

	reservations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservations retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetReservationByID retrieves a reservation by its ID.
// @Summary Get a reservation by ID
// @Description Retrieve a reservation by its unique identifier.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Reservation details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [get]
func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	reservation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservation by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservation)
}

// DeleteReservation cancels a reservation by its ID.
// @Summary Cancel a reservation
// @Description Cancel a reservation using its unique identifier. Any caller holding the id may cancel.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Message "Reservation cancelled"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [delete]
func (handler *Handler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation cancelled successfully")

	response.WithMessage(w, http.StatusOK, "Reservation cancelled successfully")
}

// StreamReservations streams reservation changes as server-sent events.
// @Summary Stream reservation changes
// @Description Subscribe to Created and Deleted reservation events over SSE. Only events after the subscription starts are delivered; there is no replay.
// @Tags Reservation
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream"
// @Router /v1/reservations/stream [get]
func (handler *Handler) StreamReservations(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StreamReservations")
	defer scope.End()

	flusher, ok := w.(http.Flusher)
	if !ok {
		log.Error().Msg("response writer does not support streaming")

		response.WithMessage(w, http.StatusInternalServerError, "streaming unsupported")

		return
	}

	w.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeEventStream)
	w.Header().Set(constant.RequestHeaderCacheControl, "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	eventCh, unsubscribe := handler.notifier.Subscribe()
	defer unsubscribe()

	heartbeat := time.NewTicker(streamHeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-eventCh:
			if !open {
				return
			}

			payload, err := json.Marshal(event)
			if err != nil {
				log.Error().Err(err).Msg("failed to marshal reservation event")

				continue
			}

			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, payload)
			flusher.Flush()
		case <-heartbeat.C:
			fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()
		}
	}
}
