package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Listing — доменная сущность объявления о продаже/аренде.
type Listing struct {
	ID           uuid.UUID
	Title        string
	Address      string
	City         string
	// State — двухбуквенный код региона (MA, NY, ...)
	State        string
	PropertyType PropertyType
	// Price — цена в целых единицах валюты, неотрицательная
	Price        int64
	Bedrooms     *int32
	// Bathrooms — допускаются половинки (2.5)
	Bathrooms    *float64
	SquareFeet   *int32
	Status       ListingStatus
	AgentUserID  uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PropertyType — тип недвижимости.
type PropertyType string

const (
	PropertyTypeUnspecified  PropertyType = ""
	PropertyTypeSingleFamily PropertyType = "single_family"
	PropertyTypeCondo        PropertyType = "condo"
	PropertyTypeTownhouse    PropertyType = "townhouse"
	PropertyTypeMultiFamily  PropertyType = "multi_family"
	PropertyTypeLand         PropertyType = "land"
	PropertyTypeCommercial   PropertyType = "commercial"
)

var knownPropertyTypes = []PropertyType{
	PropertyTypeSingleFamily,
	PropertyTypeCondo,
	PropertyTypeTownhouse,
	PropertyTypeMultiFamily,
	PropertyTypeLand,
	PropertyTypeCommercial,
}

func (t PropertyType) String() string {
	return string(t)
}

// IsValid сообщает, входит ли тип в известный набор.
func (t PropertyType) IsValid() bool {
	for _, k := range knownPropertyTypes {
		if t == k {
			return true
		}
	}
	return false
}

// ParsePropertyType разбирает тип из формы: регистр, пробелы и дефисы не важны.
// "Single Family", "single-family" и "single_family" дают одно и то же значение.
func ParsePropertyType(s string) (PropertyType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	t := PropertyType(s)
	return t, t.IsValid()
}

// ListingStatus — статус жизненного цикла объявления.
type ListingStatus string

const (
	ListingStatusUnspecified ListingStatus = ""
	ListingStatusActive      ListingStatus = "active"
	ListingStatusPending     ListingStatus = "pending"
	ListingStatusSold        ListingStatus = "sold"
	ListingStatusWithdrawn   ListingStatus = "withdrawn"
)

func (s ListingStatus) String() string {
	return string(s)
}

// IsValid сообщает, известен ли статус.
func (s ListingStatus) IsValid() bool {
	switch s {
	case ListingStatusActive, ListingStatusPending, ListingStatusSold, ListingStatusWithdrawn:
		return true
	}
	return false
}

// ListingFilter — фильтр для выборок или частичного обновления объявлений.
type ListingFilter struct {
	Title        *string
	Address      *string
	City         *string
	State        *string
	PropertyType *PropertyType
	Price        *int64
	Bedrooms     *int32
	Bathrooms    *float64
	SquareFeet   *int32
	Status       *ListingStatus
	AgentUserID  *uuid.UUID
	MinPrice     *int64
	MaxPrice     *int64

	Pagination *PaginationParams
}

// ListingCandidateFilter — предфильтр уровня запроса для hot sheet.
// Покрывает только то, что БД умеет проверить точно; остальное
// перепроверяет matching в памяти.
type ListingCandidateFilter struct {
	State         *string
	Statuses      []ListingStatus
	PropertyTypes []PropertyType
	MinPrice      *int64
	MaxPrice      *int64
	Limit         int
}

// ListingCandidatesFor строит предфильтр объявлений по сохранённому поиску.
// Если статусы не заданы, берутся только активные объявления.
func ListingCandidatesFor(c Criteria, limit int) ListingCandidateFilter {
	statuses := c.Statuses
	if len(statuses) == 0 {
		statuses = []ListingStatus{ListingStatusActive}
	}
	f := ListingCandidateFilter{
		Statuses:      statuses,
		PropertyTypes: c.PropertyTypes,
		MinPrice:      c.MinPrice,
		MaxPrice:      c.MaxPrice,
		Limit:         limit,
	}
	if c.State != nil && *c.State != "" {
		state := NormalizeState(*c.State)
		f.State = &state
	}
	return f
}

// Apply возвращает копию объявления с заданными полями фильтра.
func (l Listing) Apply(f ListingFilter) Listing {
	assign(&l.Title, f.Title)
	assign(&l.Address, f.Address)
	assign(&l.City, f.City)
	assign(&l.State, f.State)
	assign(&l.PropertyType, f.PropertyType)
	assign(&l.Price, f.Price)
	assign(&l.Status, f.Status)
	assign(&l.AgentUserID, f.AgentUserID)
	if f.Bedrooms != nil {
		l.Bedrooms = f.Bedrooms
	}
	if f.Bathrooms != nil {
		l.Bathrooms = f.Bathrooms
	}
	if f.SquareFeet != nil {
		l.SquareFeet = f.SquareFeet
	}
	return l
}

func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
