package listing

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

type ListingRepository interface {
	CreateListing(ctx context.Context, l domain.Listing) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Listing, error)
	UpdateListing(ctx context.Context, id uuid.UUID, update domain.ListingFilter) error
	ListListings(ctx context.Context, filter domain.ListingFilter) (*domain.PaginatedResult[domain.Listing], error)
}

type Service struct {
	log  *slog.Logger
	repo ListingRepository
}

var (
	ErrListingNotFound = errors.New("listing not found")
)

func New(log *slog.Logger, repo ListingRepository) *Service {
	return &Service{
		log:  log,
		repo: repo,
	}
}

// CreateListing — проверяет и сохраняет объявление.
// Некорректные данные (отрицательная цена, NaN) в базу не попадают.
func (s *Service) CreateListing(ctx context.Context, l domain.Listing) (uuid.UUID, error) {
	const op = "listing.Service.CreateListing"
	log := s.log.With(slog.String("op", op), slog.String("title", l.Title))

	if l.Status == domain.ListingStatusUnspecified {
		l.Status = domain.ListingStatusActive
	}
	if !l.Status.IsValid() {
		return uuid.Nil, fmt.Errorf("%s: %w", op, domain.InvalidField("status", "unknown value "+l.Status.String()))
	}
	if err := matching.ValidateListing(l); err != nil {
		log.Warn("listing rejected", sl.Err(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.CreateListing(ctx, l)
	if err != nil {
		log.Error("failed to create listing", sl.Err(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("listing created", slog.String("listing_id", id.String()))

	return id, nil
}

// GetListing — получает объявление по ID.
func (s *Service) GetListing(ctx context.Context, id uuid.UUID) (domain.Listing, error) {
	const op = "listing.Service.GetListing"

	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			s.log.Warn("listing not found", slog.String("listing_id", id.String()))
			return domain.Listing{}, fmt.Errorf("%s: %w", op, ErrListingNotFound)
		}
		s.log.Error("failed to get listing", sl.Err(err))
		return domain.Listing{}, fmt.Errorf("%s: %w", op, err)
	}

	return l, nil
}

// UpdateListing — частичное обновление; итоговая запись проверяется до записи в БД.
func (s *Service) UpdateListing(ctx context.Context, id uuid.UUID, update domain.ListingFilter) (domain.Listing, error) {
	const op = "listing.Service.UpdateListing"

	current, err := s.GetListing(ctx, id)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("%s: %w", op, err)
	}

	merged := current.Apply(update)
	if !merged.Status.IsValid() {
		return domain.Listing{}, fmt.Errorf("%s: %w", op, domain.InvalidField("status", "unknown value "+merged.Status.String()))
	}
	if err := matching.ValidateListing(merged); err != nil {
		return domain.Listing{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.UpdateListing(ctx, id, update); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return domain.Listing{}, fmt.Errorf("%s: %w", op, ErrListingNotFound)
		}
		return domain.Listing{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("%s: failed to fetch updated listing: %w", op, err)
	}

	return updated, nil
}

// ListListings — возвращает объявления по фильтру с пагинацией.
func (s *Service) ListListings(ctx context.Context, filter domain.ListingFilter) (*domain.PaginatedResult[domain.Listing], error) {
	const op = "listing.Service.ListListings"

	result, err := s.repo.ListListings(ctx, filter)
	if err != nil {
		s.log.Error("failed to list listings", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}
