package notify

import (
	"context"
	"log/slog"

	"listing_exchange/internal/config"
	"listing_exchange/internal/domain"
)

// Queue — постановка уведомлений покупателям в очередь.
// Доставку выполняет внешний воркер.
type Queue interface {
	// Enqueue ставит задания в очередь и возвращает число добавленных.
	Enqueue(ctx context.Context, jobs []domain.NotificationJob) (int, error)
	// IsEnabled проверяет, включена ли постановка.
	IsEnabled() bool
}

// JobStore — хранилище заданий (таблица notification_jobs).
type JobStore interface {
	Enqueue(ctx context.Context, jobs []domain.NotificationJob) (int, error)
}

type queue struct {
	store JobStore
	log   *slog.Logger
}

// NewQueue создаёт очередь уведомлений поверх хранилища.
func NewQueue(cfg config.NotifyConfig, store JobStore, log *slog.Logger) Queue {
	if !cfg.Enabled {
		return &noopQueue{log: log}
	}
	return &queue{store: store, log: log}
}

func (q *queue) Enqueue(ctx context.Context, jobs []domain.NotificationJob) (int, error) {
	n, err := q.store.Enqueue(ctx, jobs)
	if err != nil {
		return n, err
	}
	q.log.Debug("notification jobs enqueued", slog.Int("requested", len(jobs)), slog.Int("enqueued", n))
	return n, nil
}

func (q *queue) IsEnabled() bool {
	return true
}

// noopQueue — заглушка для случая, когда уведомления отключены.
type noopQueue struct {
	log *slog.Logger
}

func (q *noopQueue) Enqueue(_ context.Context, jobs []domain.NotificationJob) (int, error) {
	q.log.Debug("notifications are disabled, dropping jobs", slog.Int("jobs", len(jobs)))
	return 0, nil
}

func (q *noopQueue) IsEnabled() bool {
	return false
}
