package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"turfbook/config"
	"turfbook/infras/kafka"
	"turfbook/infras/otel"
	"turfbook/internal/domains/booking/model"
	bookingService "turfbook/internal/domains/booking/service"
	slotService "turfbook/internal/domains/slot/service"
	"turfbook/shared/constant"
	"turfbook/shared/timezone"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const otelWorkerScopeName = "worker"

// Worker runs the background jobs: the reservation intent sweep and the
// calendar warm-up that follows every booking.
type Worker struct {
	cfg     *config.Config
	kafka   kafka.Client
	slot    slotService.Slot
	booking bookingService.Booking
	otel    otel.Otel
}

func New(cfg *config.Config, kafka kafka.Client, slot slotService.Slot, booking bookingService.Booking, otel otel.Otel) *Worker {
	return &Worker{
		cfg:     cfg,
		kafka:   kafka,
		slot:    slot,
		booking: booking,
		otel:    otel,
	}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()

		w.kafka.Consume(ctx, w.cfg.Kafka.ConsumerGroup, w.cfg.Kafka.Topics.BookingCreated, w.HandleBookingCreated)
	}()

	go func() {
		defer wg.Done()

		w.reconcileLoop(ctx)
	}()

	log.Info().Msg("Worker started.")

	wg.Wait()

	log.Info().Msg("Worker stopped.")
}

// HandleBookingCreated generates the week after the booked day so the next
// booking for that turf finds its calendar ready.
func (w *Worker) HandleBookingCreated(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := w.otel.NewScope(ctx, otelWorkerScopeName, otelWorkerScopeName+".HandleBookingCreated")
	defer scope.End()
	defer scope.TraceIfError(&err)

	event, err := kafka.DecodeKafkaMessage[model.BookingCreated](message)
	if err != nil {
		return fmt.Errorf("failed to decode booking created event: %w", err)
	}

	day, err := timezone.ParseDay(event.SlotDate)
	if err != nil {
		return fmt.Errorf("failed to parse slot date %q: %w", event.SlotDate, err)
	}

	scope.SetAttributes(map[string]any{
		"booking.id": event.BookingID,
		"turf.id":    event.TurfID,
	})

	if err = w.slot.PrepareWeek(ctx, event.TurfID, day.AddDate(0, 0, constant.DaysInWeek)); err != nil {
		return fmt.Errorf("failed to prepare next week: %w", err)
	}

	return nil
}

// Reconcile runs one sweep over stale reservation intents. The booking
// service logs the sweep summary.
func (w *Worker) Reconcile(ctx context.Context) {
	if _, err := w.booking.Reconcile(ctx); err != nil {
		log.Error().Err(err).Msg("reconciliation sweep failed")
	}
}

func (w *Worker) reconcileLoop(ctx context.Context) {
	interval := time.Duration(max(1, w.cfg.Booking.ReconcileIntervalSeconds)) * time.Second

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Reconcile(ctx)
		}
	}
}
