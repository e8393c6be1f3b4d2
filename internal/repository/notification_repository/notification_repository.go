package notification_repository

import (
	"context"
	"fmt"
	"log/slog"

	"listing_exchange/internal/domain"
	"listing_exchange/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewNotificationRepository(db *pgxpool.Pool, log *slog.Logger) *NotificationRepository {
	return &NotificationRepository{db: db, log: log}
}

// Enqueue ставит задания в очередь одним батчем.
// Повторная постановка той же пары (потребность, объявление, канал) игнорируется;
// возвращается число реально добавленных заданий.
func (r *NotificationRepository) Enqueue(ctx context.Context, jobs []domain.NotificationJob) (int, error) {
	const op = "NotificationRepository.Enqueue"

	if len(jobs) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO notification_jobs (criteria_id, listing_id, channel, recipient, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (criteria_id, listing_id, channel) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, j := range jobs {
		batch.Queue(query, j.CriteriaID, j.ListingID, string(j.Channel), j.Recipient, string(j.Status))
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	inserted := 0
	for range jobs {
		tag, err := br.Exec()
		if err != nil {
			if repository.IsForeignKeyViolation(err) {
				return inserted, fmt.Errorf("%s: %w", op, repository.ErrReferenceNotFound)
			}
			return inserted, fmt.Errorf("%s: %w", op, err)
		}
		inserted += int(tag.RowsAffected())
	}

	if err := br.Close(); err != nil {
		return inserted, fmt.Errorf("%s: %w", op, err)
	}

	return inserted, nil
}
