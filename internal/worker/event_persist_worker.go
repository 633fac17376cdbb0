package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"gopherpress/internal/model"
)

// EventRepo persists consumed audit events.
type EventRepo interface {
	Create(event *model.ArticleEvent) error
}

// EventPersistWorker drains the article event queue and stores each
// event as an audit row. Malformed or unpersistable deliveries are
// nacked without requeue.
type EventPersistWorker struct {
	conn      *amqp.Connection
	repo      EventRepo
	queueName string
	logger    *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewEventPersistWorker(conn *amqp.Connection, repo EventRepo, queueName string, logger *zap.Logger) *EventPersistWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventPersistWorker{
		conn:      conn,
		repo:      repo,
		queueName: queueName,
		logger:    logger,
	}
}

func (w *EventPersistWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				if err := w.handleDelivery(d.Body); err != nil {
					w.logger.Warn("article event dropped", zap.Error(err))
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *EventPersistWorker) handleDelivery(body []byte) error {
	var event model.ArticleEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode article event failed: %w", err)
	}
	if event.ArticleID == "" || event.Action == "" {
		return fmt.Errorf("article event missing required fields")
	}
	if err := w.repo.Create(&event); err != nil {
		return fmt.Errorf("persist article event failed: %w", err)
	}
	return nil
}

func (w *EventPersistWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
