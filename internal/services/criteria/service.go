package criteria

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"listing_exchange/internal/domain"
	"listing_exchange/internal/lib/logger/sl"
	"listing_exchange/internal/repository"
	"listing_exchange/internal/services/matching"

	"github.com/google/uuid"
)

type CriteriaRepository interface {
	CreateCriteria(ctx context.Context, c domain.Criteria) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Criteria, error)
	UpdateCriteria(ctx context.Context, id uuid.UUID, update domain.CriteriaFilter) error
	ListCriteria(ctx context.Context, filter domain.CriteriaFilter) (*domain.PaginatedResult[domain.Criteria], error)
}

type Service struct {
	log  *slog.Logger
	repo CriteriaRepository
}

var (
	ErrCriteriaNotFound = errors.New("criteria not found")
)

func New(log *slog.Logger, repo CriteriaRepository) *Service {
	return &Service{
		log:  log,
		repo: repo,
	}
}

// PerspectiveFor — направление, в котором используются критерии данного вида.
func PerspectiveFor(kind domain.CriteriaKind) matching.Perspective {
	switch kind {
	case domain.CriteriaKindBuyerNeed:
		return matching.ReverseProspecting
	case domain.CriteriaKindHotSheet:
		return matching.HotSheet
	default:
		return matching.PerspectiveUnspecified
	}
}

// KindFor — вид критериев, который сопоставляется в данном направлении.
func KindFor(p matching.Perspective) domain.CriteriaKind {
	switch p {
	case matching.ReverseProspecting:
		return domain.CriteriaKindBuyerNeed
	case matching.HotSheet:
		return domain.CriteriaKindHotSheet
	default:
		return domain.CriteriaKindUnspecified
	}
}

func validate(c domain.Criteria) error {
	if !c.Kind.IsValid() {
		return domain.InvalidField("kind", "unknown value "+c.Kind.String())
	}
	if !c.Status.IsValid() {
		return domain.InvalidField("status", "unknown value "+c.Status.String())
	}
	for _, st := range c.Statuses {
		if !st.IsValid() {
			return domain.InvalidField("statuses", "unknown value "+st.String())
		}
	}
	if c.MinPrice != nil && c.MaxPrice != nil && *c.MinPrice > *c.MaxPrice {
		return domain.InvalidField("minPrice", "exceeds maxPrice")
	}
	return matching.ValidateCriteria(c, PerspectiveFor(c.Kind))
}

// CreateCriteria — сохраняет потребность покупателя или hot sheet.
func (s *Service) CreateCriteria(ctx context.Context, c domain.Criteria) (uuid.UUID, error) {
	const op = "criteria.Service.CreateCriteria"
	log := s.log.With(slog.String("op", op), slog.String("kind", c.Kind.String()))

	if c.Status == domain.CriteriaStatusUnspecified {
		c.Status = domain.CriteriaStatusActive
	}
	if err := validate(c); err != nil {
		log.Warn("criteria rejected", sl.Err(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.CreateCriteria(ctx, c)
	if err != nil {
		log.Error("failed to create criteria", sl.Err(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("criteria created", slog.String("criteria_id", id.String()))

	return id, nil
}

// GetCriteria — получает критерии по ID.
func (s *Service) GetCriteria(ctx context.Context, id uuid.UUID) (domain.Criteria, error) {
	const op = "criteria.Service.GetCriteria"

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCriteriaNotFound) {
			s.log.Warn("criteria not found", slog.String("criteria_id", id.String()))
			return domain.Criteria{}, fmt.Errorf("%s: %w", op, ErrCriteriaNotFound)
		}
		s.log.Error("failed to get criteria", sl.Err(err))
		return domain.Criteria{}, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

// UpdateCriteria — частичное обновление; итоговая запись проверяется до записи в БД.
func (s *Service) UpdateCriteria(ctx context.Context, id uuid.UUID, update domain.CriteriaFilter) (domain.Criteria, error) {
	const op = "criteria.Service.UpdateCriteria"

	current, err := s.GetCriteria(ctx, id)
	if err != nil {
		return domain.Criteria{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := validate(current.Apply(update)); err != nil {
		return domain.Criteria{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.UpdateCriteria(ctx, id, update); err != nil {
		if errors.Is(err, repository.ErrCriteriaNotFound) {
			return domain.Criteria{}, fmt.Errorf("%s: %w", op, ErrCriteriaNotFound)
		}
		return domain.Criteria{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Criteria{}, fmt.Errorf("%s: failed to fetch updated criteria: %w", op, err)
	}

	return updated, nil
}

// ListCriteria — возвращает критерии по фильтру с пагинацией.
func (s *Service) ListCriteria(ctx context.Context, filter domain.CriteriaFilter) (*domain.PaginatedResult[domain.Criteria], error) {
	const op = "criteria.Service.ListCriteria"

	result, err := s.repo.ListCriteria(ctx, filter)
	if err != nil {
		s.log.Error("failed to list criteria", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}
