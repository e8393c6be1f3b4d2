package criteriaform

import (
	"strconv"
	"strings"

	"listing_exchange/internal/domain"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Page — параметры страницы из строки запроса.
type Page struct {
	Size  Value
	Token Value
	Order Value
}

func (p Page) params() (*domain.PaginationParams, error) {
	params := &domain.PaginationParams{
		PageToken:      p.Token.String(),
		OrderDirection: domain.NormalizeOrderDirection(p.Order.String()),
	}
	if s := p.Size.String(); s != "" {
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil || n < 0 {
			return nil, domain.InvalidField("pageSize", "not a positive number")
		}
		params.PageSize = int32(n)
	}
	if params.PageToken != "" {
		if _, err := domain.DecodePageCursor(params.PageToken); err != nil {
			return nil, domain.InvalidField("pageToken", "malformed")
		}
	}
	return params, nil
}

// ListingQuery — фильтр списка объявлений.
type ListingQuery struct {
	State        Value
	City         Value
	Status       Value
	PropertyType Value
	MinPrice     Value
	MaxPrice     Value
	AgentUserID  Value
	Page         Page
}

func (q ListingQuery) Filter() (domain.ListingFilter, error) {
	var f domain.ListingFilter
	var err error

	f.State = lo.EmptyableToPtr(q.State.String())
	f.City = lo.EmptyableToPtr(q.City.String())

	if q.Status.String() != "" {
		st, err := parseListingStatus("status", q.Status)
		if err != nil {
			return domain.ListingFilter{}, err
		}
		f.Status = &st
	}
	if q.PropertyType.String() != "" {
		t, err := parsePropertyType("propertyType", q.PropertyType)
		if err != nil {
			return domain.ListingFilter{}, err
		}
		f.PropertyType = &t
	}
	if f.MinPrice, err = parseMoney("minPrice", q.MinPrice); err != nil {
		return domain.ListingFilter{}, err
	}
	if f.MaxPrice, err = parseMoney("maxPrice", q.MaxPrice); err != nil {
		return domain.ListingFilter{}, err
	}
	if q.AgentUserID.String() != "" {
		id, err := parseUUID("agentUserId", q.AgentUserID)
		if err != nil {
			return domain.ListingFilter{}, err
		}
		f.AgentUserID = &id
	}
	if f.Pagination, err = q.Page.params(); err != nil {
		return domain.ListingFilter{}, err
	}
	return f, nil
}

// CriteriaQuery — фильтр списка критериев.
type CriteriaQuery struct {
	Kind        Value
	Status      Value
	State       Value
	OwnerUserID Value
	Page        Page
}

func (q CriteriaQuery) Filter() (domain.CriteriaFilter, error) {
	var f domain.CriteriaFilter
	var err error

	if q.Kind.String() != "" {
		k, err := ParseKind(q.Kind.String())
		if err != nil {
			return domain.CriteriaFilter{}, err
		}
		f.Kind = &k
	}
	if q.Status.String() != "" {
		st, err := parseCriteriaStatus(q.Status)
		if err != nil {
			return domain.CriteriaFilter{}, err
		}
		f.Status = &st
	}
	f.State = lo.EmptyableToPtr(q.State.String())
	if q.OwnerUserID.String() != "" {
		id, err := parseUUID("ownerUserId", q.OwnerUserID)
		if err != nil {
			return domain.CriteriaFilter{}, err
		}
		f.OwnerUserID = &id
	}
	if f.Pagination, err = q.Page.params(); err != nil {
		return domain.CriteriaFilter{}, err
	}
	return f, nil
}

// ParseIDs разбирает список идентификаторов; пустые элементы пропускаются.
func ParseIDs(field string, raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, domain.InvalidField(field, "not a uuid: "+s)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
