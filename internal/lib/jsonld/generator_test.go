package jsonld

import (
	"encoding/json"
	"testing"
	"time"

	"listing_exchange/internal/domain"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Listing(t *testing.T) {
	g := NewGenerator("https://api.example.com/v1/")
	id := uuid.New()
	l := domain.Listing{
		ID:           id,
		Title:        "Sunny condo",
		Address:      "12 Beacon St",
		City:         "Boston",
		State:        "MA",
		PropertyType: domain.PropertyTypeCondo,
		Price:        650000,
		Bedrooms:     lo.ToPtr(int32(2)),
		Bathrooms:    lo.ToPtr(1.5),
		SquareFeet:   lo.ToPtr(int32(980)),
		Status:       domain.ListingStatusPending,
		CreatedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	got := g.Listing(l)

	assert.Equal(t, "https://schema.org", got.Context)
	assert.Equal(t, "https://api.example.com/v1/listings/"+id.String(), got.ID)
	assert.Equal(t, "2026-03-01T12:00:00Z", got.DatePosted)
	assert.Empty(t, got.DateModified)
	assert.Equal(t, int64(650000), got.Offers.Price)
	assert.Equal(t, "https://schema.org/LimitedAvailability", got.Offers.Availability)
	assert.Equal(t, "Apartment", got.About.Type)
	assert.Equal(t, "MA", got.About.Address.AddressRegion)
	assert.Equal(t, 980.0, got.About.FloorSize.Value)

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"numberOfBathroomsTotal":1.5`)
}

func TestGenerator_Matches(t *testing.T) {
	g := NewGenerator("https://api.example.com")
	listings := []domain.Listing{{Title: "a"}, {Title: "b"}}

	got := g.Matches("downtown", listings)

	assert.Equal(t, 2, got.NumberOfItems)
	require.Len(t, got.ItemListElement, 2)
	assert.Equal(t, 1, got.ItemListElement[0].Position)
	assert.Equal(t, "b", got.ItemListElement[1].Item.Name)
	assert.Empty(t, got.ItemListElement[0].Item.Context)
	assert.Empty(t, got.ItemListElement[0].Item.ID)
}

func TestGenerator_Criteria(t *testing.T) {
	g := NewGenerator("https://api.example.com")

	need := g.Criteria(domain.Criteria{
		Kind:          domain.CriteriaKindBuyerNeed,
		PropertyTypes: []domain.PropertyType{domain.PropertyTypeSingleFamily},
		State:         lo.ToPtr("MA"),
		MaxPrice:      lo.ToPtr(int64(900000)),
	})
	assert.Equal(t, "WantAction", need.Type)
	assert.Empty(t, need.ID)
	assert.Equal(t, []string{"SingleFamilyResidence"}, need.Object.PropertyType)
	assert.Equal(t, "MA", need.Object.Location.AddressRegion)
	assert.Nil(t, need.Object.PriceRange.MinPrice)
	assert.Equal(t, int64(900000), *need.Object.PriceRange.MaxPrice)

	sheet := g.Criteria(domain.Criteria{ID: uuid.New(), Kind: domain.CriteriaKindHotSheet})
	assert.Equal(t, "SearchAction", sheet.Type)
	assert.NotEmpty(t, sheet.ID)
	assert.Nil(t, sheet.Object.Location)
	assert.Nil(t, sheet.Object.PriceRange)
}
