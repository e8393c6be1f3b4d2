package prospecting

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"listing_exchange/internal/config"
	"listing_exchange/internal/domain"
	"listing_exchange/internal/lib/metrics"
	"listing_exchange/internal/lib/notify"
	"listing_exchange/internal/repository"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockListingRepository
type MockListingRepository struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (domain.Listing, error)
}

func (m *MockListingRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Listing, error) {
	return m.GetByIDFunc(ctx, id)
}

// MockCriteriaRepository
type MockCriteriaRepository struct {
	ListNeedCandidatesFunc func(ctx context.Context, f domain.NeedCandidateFilter) ([]domain.Criteria, error)
}

func (m *MockCriteriaRepository) ListNeedCandidates(ctx context.Context, f domain.NeedCandidateFilter) ([]domain.Criteria, error) {
	return m.ListNeedCandidatesFunc(ctx, f)
}

// MockJobStore
type MockJobStore struct {
	jobs []domain.NotificationJob
}

func (m *MockJobStore) Enqueue(ctx context.Context, jobs []domain.NotificationJob) (int, error) {
	m.jobs = append(m.jobs, jobs...)
	return len(jobs), nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func need(maxPrice int64, bedrooms int32, email, phone string) domain.Criteria {
	return domain.Criteria{
		ID:            uuid.New(),
		Kind:          domain.CriteriaKindBuyerNeed,
		Status:        domain.CriteriaStatusActive,
		MaxPrice:      lo.ToPtr(maxPrice),
		Bedrooms:      lo.ToPtr(bedrooms),
		PropertyTypes: []domain.PropertyType{domain.PropertyTypeSingleFamily},
		ContactEmail:  lo.EmptyableToPtr(email),
		ContactPhone:  lo.EmptyableToPtr(phone),
	}
}

func setup(t *testing.T, listing domain.Listing, needs []domain.Criteria, notifyEnabled bool) (*Service, *MockJobStore) {
	t.Helper()
	log := testLogger()

	listings := &MockListingRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Listing, error) {
			if id != listing.ID {
				return domain.Listing{}, repository.ErrListingNotFound
			}
			return listing, nil
		},
	}
	criteria := &MockCriteriaRepository{
		ListNeedCandidatesFunc: func(ctx context.Context, f domain.NeedCandidateFilter) ([]domain.Criteria, error) {
			if f.Price != listing.Price {
				t.Errorf("expected prefilter price %d, got %d", listing.Price, f.Price)
			}
			return needs, nil
		},
	}
	store := &MockJobStore{}
	queue := notify.NewQueue(config.NotifyConfig{Enabled: notifyEnabled}, store, log)

	return New(log, listings, criteria, queue, metrics.New(log), config.MatchingConfig{CandidateLimit: 50}), store
}

func colonial() domain.Listing {
	return domain.Listing{
		ID:           uuid.New(),
		State:        "MA",
		City:         "Newton",
		PropertyType: domain.PropertyTypeSingleFamily,
		Price:        600000,
		Bedrooms:     lo.ToPtr[int32](4),
	}
}

func TestService_Prospects(t *testing.T) {
	listing := colonial()
	needs := []domain.Criteria{
		need(650000, 3, "a@example.com", ""),
		need(650000, 5, "b@example.com", ""),
		need(700000, 4, "", ""),
	}
	svc, _ := setup(t, listing, needs, true)

	res, err := svc.Prospects(context.Background(), listing.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Count)
	assert.Equal(t, needs[0].ID, res.Matches[0].ID)
	assert.Equal(t, needs[2].ID, res.Matches[1].ID)
	assert.False(t, res.Truncated)
}

func TestService_Prospects_CandidateLimitReached(t *testing.T) {
	listing := colonial()
	needs := lo.Times(50, func(int) domain.Criteria { return need(650000, 3, "", "") })
	svc, _ := setup(t, listing, needs, true)

	res, err := svc.Prospects(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, res.Count)
	assert.True(t, res.Truncated)
}

func TestService_Prospects_ListingNotFound(t *testing.T) {
	svc, _ := setup(t, colonial(), nil, true)

	_, err := svc.Prospects(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestService_NotifyProspects(t *testing.T) {
	listing := colonial()
	needs := []domain.Criteria{
		need(650000, 3, "a@example.com", "+15550001"),
		need(700000, 2, "", "+15550002"),
		need(700000, 4, "", ""),
		need(500000, 1, "too-poor@example.com", ""),
	}
	svc, store := setup(t, listing, needs, true)

	out, err := svc.NotifyProspects(context.Background(), listing.ID)
	require.NoError(t, err)

	assert.Equal(t, NotifyResult{Matched: 3, Enqueued: 2, NoContact: 1}, out)
	require.Len(t, store.jobs, 2)
	assert.Equal(t, domain.NotificationChannelEmail, store.jobs[0].Channel)
	assert.Equal(t, domain.NotificationChannelSMS, store.jobs[1].Channel)
	for _, j := range store.jobs {
		assert.Equal(t, listing.ID, j.ListingID)
	}
}

func TestService_NotifyProspects_Disabled(t *testing.T) {
	listing := colonial()
	svc, store := setup(t, listing, []domain.Criteria{need(650000, 3, "a@example.com", "")}, false)

	out, err := svc.NotifyProspects(context.Background(), listing.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Matched)
	assert.Equal(t, 0, out.Enqueued)
	assert.Empty(t, store.jobs)
}
