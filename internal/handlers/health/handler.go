package health

import (
	"net/http"
	"slotbook/infras/postgres"
	"slotbook/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	db *postgres.Connection
}

func New(db *postgres.Connection) Handler {
	return Handler{db: db}
}

func (h *Handler) Router(r chi.Router) {
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.Check)
	})
}

// Check reports service health.
// @Summary Health check
// @Description Verify the service and its database connection are up.
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message "OK"
// @Failure 503 {object} response.Message
// @Router /v1/health [get]
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Write.PingContext(r.Context()); err != nil {
		log.Error().Err(err).Msg("health check failed: database unreachable")

		response.WithUnhealthy(w)

		return
	}

	response.WithMessage(w, http.StatusOK, "OK")
}
