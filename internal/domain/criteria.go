package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Criteria — структурированные критерии покупателя: потребность клиента
// (buyer need) или сохранённый поиск агента (hot sheet).
// Поле со значением nil означает «без ограничения».
type Criteria struct {
	ID    uuid.UUID
	Kind  CriteriaKind
	Title string

	// PropertyTypes — пустой набор не ограничивает выдачу
	PropertyTypes []PropertyType
	// Statuses — фильтр статусов объявлений, применяется на уровне запроса
	Statuses  []ListingStatus
	State     *string
	City      *string
	MinPrice  *int64
	MaxPrice  *int64
	Bedrooms  *int32
	Bathrooms *float64

	ContactName  string
	ContactEmail *string
	ContactPhone *string

	Status      CriteriaStatus
	OwnerUserID uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CriteriaKind — назначение набора критериев.
type CriteriaKind string

const (
	CriteriaKindUnspecified CriteriaKind = ""
	CriteriaKindBuyerNeed   CriteriaKind = "BUYER_NEED"
	CriteriaKindHotSheet    CriteriaKind = "HOT_SHEET"
)

func (k CriteriaKind) String() string {
	return string(k)
}

// IsValid сообщает, известен ли вид критериев.
func (k CriteriaKind) IsValid() bool {
	return k == CriteriaKindBuyerNeed || k == CriteriaKindHotSheet
}

// CriteriaStatus — статус набора критериев.
type CriteriaStatus string

const (
	CriteriaStatusUnspecified CriteriaStatus = ""
	CriteriaStatusActive      CriteriaStatus = "ACTIVE"
	CriteriaStatusPaused      CriteriaStatus = "PAUSED"
	CriteriaStatusClosed      CriteriaStatus = "CLOSED"
)

func (s CriteriaStatus) String() string {
	return string(s)
}

// IsValid сообщает, известен ли статус.
func (s CriteriaStatus) IsValid() bool {
	switch s {
	case CriteriaStatusActive, CriteriaStatusPaused, CriteriaStatusClosed:
		return true
	}
	return false
}

// HasContact — есть ли у потребности хотя бы один канал связи.
func (c Criteria) HasContact() bool {
	return (c.ContactEmail != nil && *c.ContactEmail != "") ||
		(c.ContactPhone != nil && *c.ContactPhone != "")
}

// CriteriaFilter — фильтр для выборок или частичного обновления критериев.
type CriteriaFilter struct {
	Kind          *CriteriaKind
	Title         *string
	PropertyTypes *[]PropertyType
	Statuses      *[]ListingStatus
	State         *string
	City          *string
	MinPrice      *int64
	MaxPrice      *int64
	Bedrooms      *int32
	Bathrooms     *float64
	ContactName   *string
	ContactEmail  *string
	ContactPhone  *string
	Status        *CriteriaStatus
	OwnerUserID   *uuid.UUID

	Pagination *PaginationParams
}

// NeedCandidateFilter — предфильтр потребностей покупателей для обратного поиска.
// Отбирает активные потребности того же штата, чей бюджет покрывает цену.
type NeedCandidateFilter struct {
	State string
	Price int64
	Limit int
}

// NeedCandidatesFor строит предфильтр потребностей по объявлению.
func NeedCandidatesFor(l Listing, limit int) NeedCandidateFilter {
	return NeedCandidateFilter{
		State: NormalizeState(l.State),
		Price: l.Price,
		Limit: limit,
	}
}

// Apply возвращает копию критериев с заданными полями фильтра.
// Пустые строки в State, City и контактах снимают значение.
func (c Criteria) Apply(f CriteriaFilter) Criteria {
	assign(&c.Kind, f.Kind)
	assign(&c.Title, f.Title)
	assign(&c.PropertyTypes, f.PropertyTypes)
	assign(&c.Statuses, f.Statuses)
	assign(&c.ContactName, f.ContactName)
	assign(&c.Status, f.Status)
	assign(&c.OwnerUserID, f.OwnerUserID)
	if f.State != nil {
		c.State = optional(*f.State)
	}
	if f.City != nil {
		c.City = optional(*f.City)
	}
	if f.ContactEmail != nil {
		c.ContactEmail = optional(*f.ContactEmail)
	}
	if f.ContactPhone != nil {
		c.ContactPhone = optional(*f.ContactPhone)
	}
	if f.MinPrice != nil {
		c.MinPrice = f.MinPrice
	}
	if f.MaxPrice != nil {
		c.MaxPrice = f.MaxPrice
	}
	if f.Bedrooms != nil {
		c.Bedrooms = f.Bedrooms
	}
	if f.Bathrooms != nil {
		c.Bathrooms = f.Bathrooms
	}
	return c
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
