package events

//go:generate go run go.uber.org/mock/mockgen -source=./notifier.go -destination=./mocks/notifier_mock.go -package=mocks

import (
	"context"
	"slotbook/config"
	"slotbook/infras/kafka"
	"slotbook/infras/otel"
	"slotbook/internal/domains/reservation/model"
	"slotbook/shared/constant"

	"github.com/rs/zerolog/log"
)

// Notifier announces reservation changes after they are committed. Delivery
// is fire-and-forget: failures are logged and never surface to the caller,
// and the admission outcome does not depend on them.
type Notifier interface {
	ReservationCreated(ctx context.Context, reservation model.Reservation)
	ReservationDeleted(ctx context.Context, id string)
	Subscribe() (<-chan ReservationEvent, func())
}

type notifierImpl struct {
	hub   *Hub
	kafka kafka.Client
	cfg   *config.Config
	otel  otel.Otel
}

func NewNotifier(hub *Hub, kafkaClient kafka.Client, cfg *config.Config, otel otel.Otel) Notifier {
	return &notifierImpl{
		hub:   hub,
		kafka: kafkaClient,
		cfg:   cfg,
		otel:  otel,
	}
}

func (n *notifierImpl) ReservationCreated(ctx context.Context, reservation model.Reservation) {
	n.dispatch(ctx, Created(reservation))
}

func (n *notifierImpl) ReservationDeleted(ctx context.Context, id string) {
	n.dispatch(ctx, Deleted(id))
}

func (n *notifierImpl) Subscribe() (<-chan ReservationEvent, func()) {
	return n.hub.Subscribe()
}

func (n *notifierImpl) dispatch(ctx context.Context, event ReservationEvent) {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".dispatch."+event.Type)
	defer scope.End()

	n.hub.Publish(event)

	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{
			Key:   event.ID,
			Value: event,
		}

		if err := n.kafka.SendMessages(c, n.cfg.Kafka.Topic, message); err != nil {
			log.Error().
				Err(err).
				Str("type", event.Type).
				Str("id", event.ID).
				Msg("Failed to publish reservation event")
		}
	}()
}
