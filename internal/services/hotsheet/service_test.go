package hotsheet

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"listing_exchange/internal/config"
	"listing_exchange/internal/domain"
	"listing_exchange/internal/lib/metrics"
	"listing_exchange/internal/repository"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestifyMockCriteriaRepository - мок репозитория критериев (с testify)
type TestifyMockCriteriaRepository struct {
	mock.Mock
}

func (m *TestifyMockCriteriaRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Criteria, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Criteria), args.Error(1)
}

// TestifyMockListingRepository - мок репозитория объявлений (с testify)
type TestifyMockListingRepository struct {
	mock.Mock
}

func (m *TestifyMockListingRepository) ListCandidates(ctx context.Context, f domain.ListingCandidateFilter) ([]domain.Listing, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func newService(criteria *TestifyMockCriteriaRepository, listings *TestifyMockListingRepository) *Service {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return New(log, criteria, listings, metrics.New(log), config.MatchingConfig{CandidateLimit: 100, RefreshConcurrency: 2})
}

func bostonHotSheet(id uuid.UUID) domain.Criteria {
	return domain.Criteria{
		ID:       id,
		Kind:     domain.CriteriaKindHotSheet,
		State:    lo.ToPtr("MA"),
		City:     lo.ToPtr("boston"),
		MaxPrice: lo.ToPtr[int64](600000),
		Bedrooms: lo.ToPtr[int32](2),
	}
}

func TestService_Matches_FiltersCityAndBedrooms(t *testing.T) {
	hotSheetID := uuid.New()
	criteriaRepo := new(TestifyMockCriteriaRepository)
	listingRepo := new(TestifyMockListingRepository)

	criteriaRepo.On("GetByID", mock.Anything, hotSheetID).Return(bostonHotSheet(hotSheetID), nil)

	candidates := []domain.Listing{
		{ID: uuid.New(), Title: "South Boston 2br", State: "MA", City: "South Boston", Price: 550000, Bedrooms: lo.ToPtr[int32](2)},
		{ID: uuid.New(), Title: "Cambridge 3br", State: "MA", City: "Cambridge", Price: 500000, Bedrooms: lo.ToPtr[int32](3)},
		{ID: uuid.New(), Title: "Boston studio", State: "MA", City: "Boston", Price: 300000, Bedrooms: lo.ToPtr[int32](0)},
		{ID: uuid.New(), Title: "Boston 4br", State: "MA", City: "Boston", Price: 590000, Bedrooms: lo.ToPtr[int32](4)},
	}
	listingRepo.On("ListCandidates", mock.Anything, mock.MatchedBy(func(f domain.ListingCandidateFilter) bool {
		return f.State != nil && *f.State == "MA" &&
			f.MaxPrice != nil && *f.MaxPrice == 600000 &&
			f.Limit == 100 &&
			assert.ObjectsAreEqual([]domain.ListingStatus{domain.ListingStatusActive}, f.Statuses)
	})).Return(candidates, nil)

	svc := newService(criteriaRepo, listingRepo)

	res, err := svc.Matches(context.Background(), hotSheetID)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Count)
	assert.Equal(t, "South Boston 2br", res.Matches[0].Title)
	assert.Equal(t, "Boston 4br", res.Matches[1].Title)
	assert.False(t, res.Truncated)

	criteriaRepo.AssertExpectations(t)
	listingRepo.AssertExpectations(t)
}

func TestService_Matches_CandidateLimitReached(t *testing.T) {
	hotSheetID := uuid.New()
	criteriaRepo := new(TestifyMockCriteriaRepository)
	listingRepo := new(TestifyMockListingRepository)

	criteriaRepo.On("GetByID", mock.Anything, hotSheetID).Return(bostonHotSheet(hotSheetID), nil)
	listingRepo.On("ListCandidates", mock.Anything, mock.MatchedBy(func(f domain.ListingCandidateFilter) bool {
		return f.Limit == 2
	})).Return([]domain.Listing{
		{State: "MA", City: "Boston", Price: 400000, Bedrooms: lo.ToPtr[int32](3)},
		{State: "MA", City: "Worcester", Price: 400000, Bedrooms: lo.ToPtr[int32](3)},
	}, nil)

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := New(log, criteriaRepo, listingRepo, metrics.New(log), config.MatchingConfig{CandidateLimit: 2, RefreshConcurrency: 1})

	res, err := svc.Matches(context.Background(), hotSheetID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.True(t, res.Truncated)

	counts, err := svc.RefreshCounts(context.Background(), []uuid.UUID{hotSheetID})
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.True(t, counts[0].Truncated)
}

func TestService_Matches_NotHotSheet(t *testing.T) {
	id := uuid.New()
	criteriaRepo := new(TestifyMockCriteriaRepository)
	listingRepo := new(TestifyMockListingRepository)

	criteriaRepo.On("GetByID", mock.Anything, id).Return(domain.Criteria{ID: id, Kind: domain.CriteriaKindBuyerNeed}, nil)

	svc := newService(criteriaRepo, listingRepo)

	_, err := svc.Matches(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotHotSheet)
	listingRepo.AssertNotCalled(t, "ListCandidates", mock.Anything, mock.Anything)
}

func TestService_RefreshCounts(t *testing.T) {
	okID, missingID, brokenID := uuid.New(), uuid.New(), uuid.New()
	criteriaRepo := new(TestifyMockCriteriaRepository)
	listingRepo := new(TestifyMockListingRepository)

	criteriaRepo.On("GetByID", mock.Anything, okID).Return(bostonHotSheet(okID), nil)
	criteriaRepo.On("GetByID", mock.Anything, missingID).Return(domain.Criteria{}, repository.ErrCriteriaNotFound)
	broken := bostonHotSheet(brokenID)
	broken.MinPrice = lo.ToPtr[int64](-10)
	criteriaRepo.On("GetByID", mock.Anything, brokenID).Return(broken, nil)

	listingRepo.On("ListCandidates", mock.Anything, mock.Anything).Return([]domain.Listing{
		{State: "MA", City: "Boston", Price: 400000, Bedrooms: lo.ToPtr[int32](3)},
		{State: "MA", City: "Boston", Price: -1},
	}, nil)

	svc := newService(criteriaRepo, listingRepo)

	counts, err := svc.RefreshCounts(context.Background(), []uuid.UUID{okID, missingID, brokenID})
	require.NoError(t, err)
	require.Len(t, counts, 3)

	assert.Equal(t, okID, counts[0].HotSheetID)
	assert.Equal(t, 1, counts[0].Count)
	assert.Equal(t, 1, counts[0].Invalid)
	assert.NoError(t, counts[0].Err)

	assert.Equal(t, missingID, counts[1].HotSheetID)
	assert.ErrorIs(t, counts[1].Err, ErrHotSheetNotFound)

	assert.ErrorIs(t, counts[2].Err, domain.ErrInvalidInput)
}

func TestService_RefreshCounts_StorageErrorFailsCall(t *testing.T) {
	id := uuid.New()
	criteriaRepo := new(TestifyMockCriteriaRepository)
	listingRepo := new(TestifyMockListingRepository)

	dbErr := errors.New("connection refused")
	criteriaRepo.On("GetByID", mock.Anything, id).Return(domain.Criteria{}, dbErr)

	svc := newService(criteriaRepo, listingRepo)

	_, err := svc.RefreshCounts(context.Background(), []uuid.UUID{id})
	assert.ErrorIs(t, err, dbErr)
}
