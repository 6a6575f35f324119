package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"slotbook/config"
	"slotbook/infras/kafka"
	"slotbook/internal/events"
	"slotbook/shared/logger"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// The worker tails the reservation change feed and writes an audit log line
// per event. It consumes through the shared consumer group, so scaling out
// splits partitions rather than duplicating entries.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	client := kafka.New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Info().Msg("Received shutdown signal.")
		cancel()
	}()

	log.Info().
		Str("topic", cfg.Kafka.Topic).
		Str("consumerGroup", cfg.Kafka.ConsumerGroup).
		Msg("Starting reservation event worker.")

	client.Consume(ctx, cfg.Kafka.ConsumerGroup, cfg.Kafka.Topic, handleMessage)
}

func handleMessage(msg kafkaGo.Message) {
	decoded, err := kafka.DecodeKafkaMessage[events.ReservationEvent](msg)
	if err != nil {
		return
	}

	event, ok := decoded.Value.(events.ReservationEvent)
	if !ok {
		log.Error().Str("key", decoded.Key).Msg("Unexpected payload on reservation topic.")

		return
	}

	switch event.Type {
	case events.TypeCreated:
		log.Info().
			Str("id", event.ID).
			Str("holder", event.HolderName).
			Str("date", event.SlotDate).
			Int("startHour", event.StartHour).
			Int("endHour", event.EndHour).
			Time("occurredAt", event.OccurredAt).
			Msg("Reservation created.")
	case events.TypeDeleted:
		log.Info().
			Str("id", event.ID).
			Time("occurredAt", event.OccurredAt).
			Msg("Reservation cancelled.")
	default:
		log.Warn().Str("type", event.Type).Str("id", event.ID).Msg("Unknown reservation event type.")
	}
}
