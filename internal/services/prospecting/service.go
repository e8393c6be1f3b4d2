package prospecting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"listing_exchange/internal/config"
	"listing_exchange/internal/domain"
	"listing_exchange/internal/lib/logger/sl"
	"listing_exchange/internal/lib/metrics"
	"listing_exchange/internal/lib/notify"
	"listing_exchange/internal/repository"
	"listing_exchange/internal/services/matching"

	"github.com/google/uuid"
)

type ListingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Listing, error)
}

type CriteriaRepository interface {
	ListNeedCandidates(ctx context.Context, f domain.NeedCandidateFilter) ([]domain.Criteria, error)
}

type Service struct {
	log      *slog.Logger
	listings ListingRepository
	needs    CriteriaRepository
	queue    notify.Queue
	metrics  *metrics.MatchMetrics
	cfg      config.MatchingConfig
}

var (
	ErrListingNotFound = errors.New("listing not found")
)

func New(
	log *slog.Logger,
	listings ListingRepository,
	needs CriteriaRepository,
	queue notify.Queue,
	m *metrics.MatchMetrics,
	cfg config.MatchingConfig,
) *Service {
	return &Service{
		log:      log,
		listings: listings,
		needs:    needs,
		queue:    queue,
		metrics:  m,
		cfg:      cfg,
	}
}

// Prospects — потребности покупателей, которым подходит объявление (обратный поиск).
func (s *Service) Prospects(ctx context.Context, listingID uuid.UUID) (matching.Result[domain.Criteria], error) {
	const op = "prospecting.Service.Prospects"

	res, err := s.prospects(ctx, listingID)
	if err != nil {
		return matching.Result[domain.Criteria]{}, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// NotifyResult — итог постановки уведомлений.
type NotifyResult struct {
	Matched   int
	Enqueued  int
	NoContact int
}

// NotifyProspects ставит в очередь по одному уведомлению на каждую подходящую
// потребность с email или телефоном. Потребности без контактов пропускаются.
func (s *Service) NotifyProspects(ctx context.Context, listingID uuid.UUID) (NotifyResult, error) {
	const op = "prospecting.Service.NotifyProspects"
	log := s.log.With(slog.String("op", op), slog.String("listing_id", listingID.String()))

	res, err := s.prospects(ctx, listingID)
	if err != nil {
		return NotifyResult{}, fmt.Errorf("%s: %w", op, err)
	}

	jobs := domain.NotificationJobsFor(listingID, res.Matches)
	out := NotifyResult{
		Matched:   res.Count,
		NoContact: res.Count - len(jobs),
	}

	if len(jobs) == 0 {
		log.Info("no prospects to notify", slog.Int("matched", res.Count))
		return out, nil
	}

	enqueued, err := s.queue.Enqueue(ctx, jobs)
	if err != nil {
		log.Error("failed to enqueue notifications", sl.Err(err))
		return NotifyResult{}, fmt.Errorf("%s: %w", op, err)
	}
	out.Enqueued = enqueued

	log.Info("prospect notifications enqueued",
		slog.Int("matched", out.Matched),
		slog.Int("enqueued", out.Enqueued),
		slog.Int("no_contact", out.NoContact),
		slog.Bool("queue_enabled", s.queue.IsEnabled()),
	)

	return out, nil
}

func (s *Service) prospects(ctx context.Context, listingID uuid.UUID) (matching.Result[domain.Criteria], error) {
	log := s.log.With(slog.String("listing_id", listingID.String()))

	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return matching.Result[domain.Criteria]{}, ErrListingNotFound
		}
		log.Error("failed to get listing", sl.Err(err))
		return matching.Result[domain.Criteria]{}, err
	}

	candidates, err := s.needs.ListNeedCandidates(ctx, domain.NeedCandidatesFor(listing, s.cfg.CandidateLimit))
	if err != nil {
		log.Error("failed to load buyer need candidates", sl.Err(err))
		return matching.Result[domain.Criteria]{}, err
	}

	timer := s.metrics.StartTimer(metrics.PerspectiveReverseProspecting)
	res, err := matching.CountCriteria(listing, candidates, matching.ReverseProspecting)
	if err != nil {
		log.Warn("listing cannot be evaluated", sl.Err(err))
		return matching.Result[domain.Criteria]{}, err
	}
	timer.Stop(len(candidates)-len(res.Invalid), res.Count, len(res.Invalid))
	res.Truncated = s.cfg.CandidateLimit > 0 && len(candidates) >= s.cfg.CandidateLimit

	for _, inv := range res.Invalid {
		log.Warn("buyer need skipped", slog.String("criteria_id", candidates[inv.Index].ID.String()), sl.Err(inv.Err))
	}

	return res, nil
}
