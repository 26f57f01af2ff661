package route

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/route-optimizer/internal/domain"
	"github.com/route-optimizer/internal/domain/repository"
	"github.com/route-optimizer/internal/metrics"
	"github.com/route-optimizer/internal/usecase/dto"
	"github.com/route-optimizer/internal/worker"
)

const (
	maxBatchSize    = 10                     // максимум сообщений за раз
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
	errorSleep      = time.Second            // пауза при ошибке чтения
)

// RouteOptimizer - часть route usecase, нужная воркеру
type RouteOptimizer interface {
	OptimizeRoute(ctx context.Context, req dto.OptimizeRouteRequest) (*dto.OptimizeRouteResponse, error)
	NearestNeighborRoute(ctx context.Context, req dto.NearestNeighborRequest) (*dto.OptimizeRouteResponse, error)
}

// OptimizeWorker обрабатывает события асинхронной оптимизации маршрутов.
// Каждое событие независимо: результат или ошибка публикуется в
// stream:route:done с тем же request_id, после чего событие подтверждается.
type OptimizeWorker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	optimizer  RouteOptimizer
}

// NewOptimizeWorker создает новый OptimizeWorker
func NewOptimizeWorker(
	streamRepo repository.StreamRepository,
	optimizer RouteOptimizer,
	consumerGroup string,
	logger *zap.Logger,
) *OptimizeWorker {
	return &OptimizeWorker{
		BaseWorker: worker.NewBaseWorker("route-optimize", consumerGroup, logger),
		streamRepo: streamRepo,
		optimizer:  optimizer,
	}
}

// Start запускает воркер
func (w *OptimizeWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting OptimizeWorker (batch mode)",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.Consumer()),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamRouteOptimize, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				if ctx.Err() != nil {
					continue // завершение обработает select
				}
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(errorSleep)
				continue
			}

			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch читает и обрабатывает пачку событий.
// Возвращает количество прочитанных сообщений.
func (w *OptimizeWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamRouteOptimize,
		w.ConsumerGroup(),
		w.Consumer(),
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil // очередь пуста
	}

	logger.Info("Processing batch", zap.Int("message_count", len(messages)))

	ackIDs := make([]string, 0, len(messages))

	for _, msg := range messages {
		if ctx.Err() != nil {
			break // непрочитанные сообщения останутся pending и будут перечитаны
		}

		event, err := w.parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			metrics.WorkerEvents.WithLabelValues("poison").Inc()
			// ACK битое сообщение чтобы не застревало
			_ = w.streamRepo.AckMessage(ctx, domain.StreamRouteOptimize, w.ConsumerGroup(), msg.ID)
			continue
		}

		doneEvent := w.handleEvent(ctx, event)
		if ctx.Err() != nil {
			break
		}

		if err := w.streamRepo.PublishToStream(ctx, domain.StreamRouteDone, doneEvent); err != nil {
			logger.Error("Failed to publish done event",
				zap.String("request_id", event.RequestID.String()),
				zap.Error(err))
			// Без ACK: событие будет переобработано
			continue
		}

		ackIDs = append(ackIDs, msg.ID)
	}

	if len(ackIDs) == 0 {
		return len(messages), nil // все сообщения были битые или не опубликовались
	}

	if err := w.streamRepo.AckMessages(ctx, domain.StreamRouteOptimize, w.ConsumerGroup(), ackIDs); err != nil {
		logger.Error("Failed to ack messages", zap.Error(err))
		// Не критично - сообщения будут переобработаны
	}

	return len(messages), nil
}

// handleEvent запускает оптимизацию по событию и строит ответное событие.
// Ошибки оптимизации не прерывают воркер: они уходят в done-событие,
// чтобы заказчик получил детерминированный ответ.
func (w *OptimizeWorker) handleEvent(ctx context.Context, event *domain.RouteOptimizeEvent) *domain.RouteDoneEvent {
	logger := w.Logger()

	var (
		resp *dto.OptimizeRouteResponse
		err  error
	)

	if event.HasExplicitStart() {
		resp, err = w.optimizer.NearestNeighborRoute(ctx, dto.NearestNeighborRequest{
			Locations:  event.Locations,
			StartIndex: event.StartIndex,
		})
	} else {
		resp, err = w.optimizer.OptimizeRoute(ctx, dto.OptimizeRouteRequest{
			Locations: event.Locations,
		})
	}

	if err != nil {
		logger.Warn("Route optimization failed",
			zap.String("request_id", event.RequestID.String()),
			zap.Error(err))
		metrics.WorkerEvents.WithLabelValues("failed").Inc()
		return &domain.RouteDoneEvent{
			RequestID: event.RequestID,
			Error:     err.Error(),
		}
	}

	metrics.WorkerEvents.WithLabelValues("ok").Inc()
	return &domain.RouteDoneEvent{
		RequestID:       event.RequestID,
		Order:           resp.Order,
		TotalDistanceKm: resp.TotalDistanceKm,
		Algorithm:       resp.Algorithm,
		Warnings:        resp.Warnings,
	}
}

// parseMessage парсит сообщение из стрима в RouteOptimizeEvent
func (w *OptimizeWorker) parseMessage(msg domain.StreamMessage) (*domain.RouteOptimizeEvent, error) {
	var event domain.RouteOptimizeEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if len(event.Locations) < 2 {
		return nil, fmt.Errorf("event has %d locations, need at least 2", len(event.Locations))
	}

	return &event, nil
}
