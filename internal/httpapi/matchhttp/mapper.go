package matchhttp

import (
	"time"

	"listing_exchange/internal/domain"
	"listing_exchange/internal/services/matching"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type listingDTO struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title"`
	Address      string   `json:"address,omitempty"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	PropertyType string   `json:"propertyType"`
	Price        int64    `json:"price"`
	Bedrooms     *int32   `json:"bedrooms,omitempty"`
	Bathrooms    *float64 `json:"bathrooms,omitempty"`
	SquareFeet   *int32   `json:"squareFeet,omitempty"`
	Status       string   `json:"status,omitempty"`
	AgentUserID  string   `json:"agentUserId,omitempty"`
	CreatedAt    string   `json:"createdAt,omitempty"`
	UpdatedAt    string   `json:"updatedAt,omitempty"`
}

type criteriaDTO struct {
	ID            string   `json:"id,omitempty"`
	Kind          string   `json:"kind"`
	Title         string   `json:"title,omitempty"`
	PropertyTypes []string `json:"propertyTypes"`
	Statuses      []string `json:"statuses,omitempty"`
	State         string   `json:"state,omitempty"`
	City          string   `json:"city,omitempty"`
	MinPrice      *int64   `json:"minPrice,omitempty"`
	MaxPrice      *int64   `json:"maxPrice,omitempty"`
	Bedrooms      *int32   `json:"bedrooms,omitempty"`
	Bathrooms     *float64 `json:"bathrooms,omitempty"`
	ContactName   string   `json:"contactName,omitempty"`
	ContactEmail  string   `json:"contactEmail,omitempty"`
	ContactPhone  string   `json:"contactPhone,omitempty"`
	Status        string   `json:"status,omitempty"`
	OwnerUserID   string   `json:"ownerUserId,omitempty"`
	CreatedAt     string   `json:"createdAt,omitempty"`
	UpdatedAt     string   `json:"updatedAt,omitempty"`
}

type invalidDTO struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type resultDTO[T any] struct {
	Count     int          `json:"count"`
	Matches   []T          `json:"matches"`
	Invalid   []invalidDTO `json:"invalid"`
	Truncated bool         `json:"truncated"`
}

type pageDTO[T any] struct {
	Items         []T    `json:"items"`
	NextPageToken string `json:"nextPageToken,omitempty"`
	TotalCount    int32  `json:"totalCount"`
	HasMore       bool   `json:"hasMore"`
}

func listingDomainToDTO(l domain.Listing) listingDTO {
	return listingDTO{
		ID:           idString(l.ID),
		Title:        l.Title,
		Address:      l.Address,
		City:         l.City,
		State:        l.State,
		PropertyType: l.PropertyType.String(),
		Price:        l.Price,
		Bedrooms:     l.Bedrooms,
		Bathrooms:    l.Bathrooms,
		SquareFeet:   l.SquareFeet,
		Status:       l.Status.String(),
		AgentUserID:  idString(l.AgentUserID),
		CreatedAt:    timeString(l.CreatedAt),
		UpdatedAt:    timeString(l.UpdatedAt),
	}
}

func criteriaDomainToDTO(c domain.Criteria) criteriaDTO {
	return criteriaDTO{
		ID:            idString(c.ID),
		Kind:          c.Kind.String(),
		Title:         c.Title,
		PropertyTypes: lo.Map(c.PropertyTypes, func(t domain.PropertyType, _ int) string { return t.String() }),
		Statuses:      lo.Map(c.Statuses, func(s domain.ListingStatus, _ int) string { return s.String() }),
		State:         lo.FromPtr(c.State),
		City:          lo.FromPtr(c.City),
		MinPrice:      c.MinPrice,
		MaxPrice:      c.MaxPrice,
		Bedrooms:      c.Bedrooms,
		Bathrooms:     c.Bathrooms,
		ContactName:   c.ContactName,
		ContactEmail:  lo.FromPtr(c.ContactEmail),
		ContactPhone:  lo.FromPtr(c.ContactPhone),
		Status:        c.Status.String(),
		OwnerUserID:   idString(c.OwnerUserID),
		CreatedAt:     timeString(c.CreatedAt),
		UpdatedAt:     timeString(c.UpdatedAt),
	}
}

func resultToDTO[T, D any](res matching.Result[T], conv func(T) D) resultDTO[D] {
	out := resultDTO[D]{
		Count:     res.Count,
		Matches:   make([]D, 0, res.Count),
		Invalid:   make([]invalidDTO, 0, len(res.Invalid)),
		Truncated: res.Truncated,
	}
	for m := range res.All() {
		out.Matches = append(out.Matches, conv(m))
	}
	for _, inv := range res.Invalid {
		out.Invalid = append(out.Invalid, invalidDTO{Index: inv.Index, Error: inv.Err.Error()})
	}
	return out
}

func pageToDTO[T, D any](p *domain.PaginatedResult[T], conv func(T) D) pageDTO[D] {
	return pageDTO[D]{
		Items:         lo.Map(p.Items, func(item T, _ int) D { return conv(item) }),
		NextPageToken: p.NextPageToken,
		TotalCount:    p.TotalCount,
		HasMore:       p.HasMore,
	}
}

func idString(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

func timeString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
