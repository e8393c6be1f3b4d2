package hotsheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"listing_exchange/internal/config"
	"listing_exchange/internal/domain"
	"listing_exchange/internal/lib/logger/sl"
	"listing_exchange/internal/lib/metrics"
	"listing_exchange/internal/repository"
	"listing_exchange/internal/services/matching"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type CriteriaRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Criteria, error)
}

type ListingRepository interface {
	ListCandidates(ctx context.Context, f domain.ListingCandidateFilter) ([]domain.Listing, error)
}

type Service struct {
	log      *slog.Logger
	criteria CriteriaRepository
	listings ListingRepository
	metrics  *metrics.MatchMetrics
	cfg      config.MatchingConfig
}

var (
	ErrHotSheetNotFound = errors.New("hot sheet not found")
	ErrNotHotSheet      = errors.New("criteria is not a hot sheet")
)

func New(
	log *slog.Logger,
	criteria CriteriaRepository,
	listings ListingRepository,
	m *metrics.MatchMetrics,
	cfg config.MatchingConfig,
) *Service {
	return &Service{
		log:      log,
		criteria: criteria,
		listings: listings,
		metrics:  m,
		cfg:      cfg,
	}
}

// Matches — объявления, подходящие под сохранённый поиск.
// БД отдаёт кандидатов по штату, статусу, типу и цене; город и пороги
// по спальням/ванным проверяет matching.
func (s *Service) Matches(ctx context.Context, hotSheetID uuid.UUID) (matching.Result[domain.Listing], error) {
	const op = "hotsheet.Service.Matches"
	log := s.log.With(slog.String("op", op), slog.String("hot_sheet_id", hotSheetID.String()))

	hs, err := s.load(ctx, hotSheetID)
	if err != nil {
		return matching.Result[domain.Listing]{}, fmt.Errorf("%s: %w", op, err)
	}

	candidates, err := s.listings.ListCandidates(ctx, domain.ListingCandidatesFor(hs, s.cfg.CandidateLimit))
	if err != nil {
		log.Error("failed to load listing candidates", sl.Err(err))
		return matching.Result[domain.Listing]{}, fmt.Errorf("%s: %w", op, err)
	}

	timer := s.metrics.StartTimer(metrics.PerspectiveHotSheet)
	res, err := matching.CountListings(hs, candidates, matching.HotSheet)
	if err != nil {
		log.Warn("hot sheet cannot be evaluated", sl.Err(err))
		return matching.Result[domain.Listing]{}, fmt.Errorf("%s: %w", op, err)
	}
	timer.Stop(len(candidates)-len(res.Invalid), res.Count, len(res.Invalid))
	res.Truncated = s.cfg.CandidateLimit > 0 && len(candidates) >= s.cfg.CandidateLimit

	for _, inv := range res.Invalid {
		log.Warn("listing skipped", slog.String("listing_id", candidates[inv.Index].ID.String()), sl.Err(inv.Err))
	}

	return res, nil
}

// Count — значение бейджа для одного hot sheet.
// Err заполняется, если поиск не найден, не является hot sheet или некорректен.
type Count struct {
	HotSheetID uuid.UUID
	Count      int
	Invalid    int
	Truncated  bool
	Err        error
}

// RefreshCounts пересчитывает бейджи для нескольких hot sheet параллельно.
// Ошибки отдельных поисков попадают в Count.Err; ошибка БД прерывает весь вызов.
func (s *Service) RefreshCounts(ctx context.Context, ids []uuid.UUID) ([]Count, error) {
	const op = "hotsheet.Service.RefreshCounts"

	counts := make([]Count, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.cfg.RefreshConcurrency))

	for i, id := range ids {
		g.Go(func() error {
			counts[i].HotSheetID = id

			res, err := s.Matches(gctx, id)
			switch {
			case err == nil:
				counts[i].Count = res.Count
				counts[i].Invalid = len(res.Invalid)
				counts[i].Truncated = res.Truncated
				return nil
			case errors.Is(err, ErrHotSheetNotFound), errors.Is(err, ErrNotHotSheet), errors.Is(err, domain.ErrInvalidInput):
				counts[i].Err = err
				return nil
			default:
				return err
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Debug("hot sheet counts refreshed",
		slog.String("op", op),
		slog.Int("hot_sheets", len(ids)),
		slog.Any("stats", s.metrics.GetStats().HotSheet),
	)

	return counts, nil
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (domain.Criteria, error) {
	c, err := s.criteria.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCriteriaNotFound) {
			return domain.Criteria{}, ErrHotSheetNotFound
		}
		return domain.Criteria{}, err
	}
	if c.Kind != domain.CriteriaKindHotSheet {
		return domain.Criteria{}, ErrNotHotSheet
	}
	return c, nil
}
