package criteria

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"listing_exchange/internal/domain"
	"listing_exchange/internal/repository"
	"listing_exchange/internal/services/matching"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockCriteriaRepository
type MockCriteriaRepository struct {
	CreateCriteriaFunc func(ctx context.Context, c domain.Criteria) (uuid.UUID, error)
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (domain.Criteria, error)
	UpdateCriteriaFunc func(ctx context.Context, id uuid.UUID, update domain.CriteriaFilter) error
}

func (m *MockCriteriaRepository) CreateCriteria(ctx context.Context, c domain.Criteria) (uuid.UUID, error) {
	if m.CreateCriteriaFunc != nil {
		return m.CreateCriteriaFunc(ctx, c)
	}
	return uuid.New(), nil
}
func (m *MockCriteriaRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Criteria, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return domain.Criteria{}, nil
}
func (m *MockCriteriaRepository) UpdateCriteria(ctx context.Context, id uuid.UUID, update domain.CriteriaFilter) error {
	if m.UpdateCriteriaFunc != nil {
		return m.UpdateCriteriaFunc(ctx, id, update)
	}
	return nil
}
func (m *MockCriteriaRepository) ListCriteria(ctx context.Context, filter domain.CriteriaFilter) (*domain.PaginatedResult[domain.Criteria], error) {
	return &domain.PaginatedResult[domain.Criteria]{}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestPerspectiveFor(t *testing.T) {
	assert.Equal(t, matching.ReverseProspecting, PerspectiveFor(domain.CriteriaKindBuyerNeed))
	assert.Equal(t, matching.HotSheet, PerspectiveFor(domain.CriteriaKindHotSheet))
	assert.Equal(t, matching.PerspectiveUnspecified, PerspectiveFor(""))

	for _, p := range []matching.Perspective{matching.ReverseProspecting, matching.HotSheet} {
		assert.Equal(t, p, PerspectiveFor(KindFor(p)))
	}
	assert.Equal(t, domain.CriteriaKindUnspecified, KindFor(matching.PerspectiveUnspecified))
}

func TestService_CreateCriteria(t *testing.T) {
	var stored domain.Criteria
	repo := &MockCriteriaRepository{
		CreateCriteriaFunc: func(ctx context.Context, c domain.Criteria) (uuid.UUID, error) {
			stored = c
			return uuid.New(), nil
		},
	}
	svc := New(testLogger(), repo)

	_, err := svc.CreateCriteria(context.Background(), domain.Criteria{
		Kind:          domain.CriteriaKindHotSheet,
		PropertyTypes: []domain.PropertyType{domain.PropertyTypeCondo, domain.PropertyTypeTownhouse},
		MaxPrice:      lo.ToPtr[int64](500000),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CriteriaStatusActive, stored.Status)
}

func TestService_CreateCriteria_Rejected(t *testing.T) {
	svc := New(testLogger(), &MockCriteriaRepository{})

	tests := []struct {
		name string
		c    domain.Criteria
	}{
		{"без вида", domain.Criteria{}},
		{"потребность с несколькими типами", domain.Criteria{
			Kind:          domain.CriteriaKindBuyerNeed,
			PropertyTypes: []domain.PropertyType{domain.PropertyTypeCondo, domain.PropertyTypeLand},
		}},
		{"неизвестный статус объявлений", domain.Criteria{
			Kind:     domain.CriteriaKindHotSheet,
			Statuses: []domain.ListingStatus{"archived"},
		}},
		{"отрицательный бюджет", domain.Criteria{
			Kind:     domain.CriteriaKindBuyerNeed,
			MaxPrice: lo.ToPtr[int64](-1),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCriteria(context.Background(), tt.c)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestService_UpdateCriteria_NotFound(t *testing.T) {
	repo := &MockCriteriaRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Criteria, error) {
			return domain.Criteria{}, repository.ErrCriteriaNotFound
		},
	}
	svc := New(testLogger(), repo)

	_, err := svc.UpdateCriteria(context.Background(), uuid.New(), domain.CriteriaFilter{Title: lo.ToPtr("x")})
	assert.ErrorIs(t, err, ErrCriteriaNotFound)
}

func TestService_UpdateCriteria_ValidatesMergedRecord(t *testing.T) {
	updated := false
	repo := &MockCriteriaRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Criteria, error) {
			return domain.Criteria{
				ID:            id,
				Kind:          domain.CriteriaKindBuyerNeed,
				Status:        domain.CriteriaStatusActive,
				PropertyTypes: []domain.PropertyType{domain.PropertyTypeCondo},
			}, nil
		},
		UpdateCriteriaFunc: func(ctx context.Context, id uuid.UUID, update domain.CriteriaFilter) error {
			updated = true
			return nil
		},
	}
	svc := New(testLogger(), repo)

	_, err := svc.UpdateCriteria(context.Background(), uuid.New(), domain.CriteriaFilter{
		PropertyTypes: &[]domain.PropertyType{domain.PropertyTypeCondo, domain.PropertyTypeLand},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, updated)

	_, err = svc.UpdateCriteria(context.Background(), uuid.New(), domain.CriteriaFilter{Title: lo.ToPtr("Family of four")})
	require.NoError(t, err)
	assert.True(t, updated)
}

func TestService_UpdateCriteria_PriceBounds(t *testing.T) {
	updated := false
	repo := &MockCriteriaRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Criteria, error) {
			return domain.Criteria{
				ID:       id,
				Kind:     domain.CriteriaKindHotSheet,
				Status:   domain.CriteriaStatusActive,
				MaxPrice: lo.ToPtr[int64](500000),
			}, nil
		},
		UpdateCriteriaFunc: func(ctx context.Context, id uuid.UUID, update domain.CriteriaFilter) error {
			updated = true
			return nil
		},
	}
	svc := New(testLogger(), repo)

	_, err := svc.UpdateCriteria(context.Background(), uuid.New(), domain.CriteriaFilter{MinPrice: lo.ToPtr[int64](900000)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorContains(t, err, "minPrice")
	assert.False(t, updated)

	_, err = svc.UpdateCriteria(context.Background(), uuid.New(), domain.CriteriaFilter{MinPrice: lo.ToPtr[int64](500000)})
	require.NoError(t, err)
	assert.True(t, updated)
}
