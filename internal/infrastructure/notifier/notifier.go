package notifier

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/iho/payrails/internal/domain"
	"github.com/iho/payrails/internal/infrastructure/metrics"
	"github.com/iho/payrails/internal/usecase"
)

// Notifier drains the outbox and hands transfer lifecycle events to the
// external delivery collaborators. It is fire-and-forget from the
// orchestration core's point of view: a publish failure is logged and
// retried on the next pass, never propagated into transfer processing.
type Notifier struct {
	outboxRepo usecase.OutboxRepository
	publisher  Publisher
	logger     *slog.Logger
	metrics    *metrics.Metrics
	batchSize  int
	interval   time.Duration
}

// Publisher delivers one event to an external channel (push, SMS, email
// fan-out etc.).
type Publisher interface {
	Publish(ctx context.Context, event *domain.OutboxEvent) error
}

// Config for Notifier.
type Config struct {
	OutboxRepo usecase.OutboxRepository
	Publisher  Publisher
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
	BatchSize  int
	Interval   time.Duration
}

// New creates a new Notifier.
func New(cfg Config) *Notifier {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.Interval == 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Notifier{
		outboxRepo: cfg.OutboxRepo,
		publisher:  cfg.Publisher,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		batchSize:  cfg.BatchSize,
		interval:   cfg.Interval,
	}
}

// Start begins the notification worker. It runs until the context is
// cancelled.
func (n *Notifier) Start(ctx context.Context) error {
	n.logger.Info("notifier started",
		slog.Int("batch_size", n.batchSize),
		slog.Duration("interval", n.interval))

	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()

	// Process immediately on start
	if err := n.processEvents(ctx); err != nil {
		n.logger.Error("error processing events on start", slog.String("error", err.Error()))
	}

	for {
		select {
		case <-ctx.Done():
			n.logger.Info("notifier shutting down")
			return ctx.Err()
		case <-ticker.C:
			if err := n.processEvents(ctx); err != nil {
				n.logger.Error("error processing events", slog.String("error", err.Error()))
			}
		}
	}
}

func (n *Notifier) processEvents(ctx context.Context) error {
	events, err := n.outboxRepo.GetUnpublished(ctx, n.batchSize)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	for _, event := range events {
		if err := n.publisher.Publish(ctx, event); err != nil {
			n.logger.Error("failed to publish event",
				slog.String("event_id", event.ID),
				slog.String("event_type", event.EventType),
				slog.String("error", err.Error()))

			if n.metrics != nil {
				n.metrics.EventErrors.Inc()
			}

			// Continue processing other events even if one fails
			continue
		}

		if n.metrics != nil {
			n.metrics.EventsPublished.Inc()
		}

		if err := n.outboxRepo.MarkPublished(ctx, event.ID, time.Now()); err != nil {
			n.logger.Error("failed to mark event as published",
				slog.String("event_id", event.ID),
				slog.String("error", err.Error()))
		}
	}

	return nil
}

// LogPublisher is a publisher that logs events; the default delivery target
// when no downstream collaborator is wired.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

// Publish logs the event.
func (p *LogPublisher) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}

	p.logger.Info("notification emitted",
		slog.String("event_id", event.ID),
		slog.String("event_type", event.EventType),
		slog.String("aggregate_type", event.AggregateType),
		slog.String("aggregate_id", event.AggregateID),
		slog.String("payload", string(payload)))

	return nil
}
