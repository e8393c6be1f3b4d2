package criteriaform

import (
	"strings"

	"listing_exchange/internal/domain"

	"github.com/samber/lo"
)

// CriteriaForm — критерии в том виде, в каком их отправляет форма.
// Тип недвижимости можно прислать одним значением или списком.
type CriteriaForm struct {
	Kind          Value   `json:"kind" validate:"required"`
	Title         Value   `json:"title" validate:"max=200"`
	PropertyType  Value   `json:"propertyType" validate:"omitempty,propertytype"`
	PropertyTypes []Value `json:"propertyTypes" validate:"omitempty,dive,propertytype"`
	Statuses      []Value `json:"statuses"`
	State         Value   `json:"state" validate:"max=40"`
	City          Value   `json:"city" validate:"max=120"`
	MinPrice      Value   `json:"minPrice" validate:"omitempty,money"`
	MaxPrice      Value   `json:"maxPrice" validate:"omitempty,money"`
	Bedrooms      Value   `json:"bedrooms"`
	Bathrooms     Value   `json:"bathrooms"`
	ContactName   Value   `json:"contactName" validate:"max=200"`
	ContactEmail  Value   `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone  Value   `json:"contactPhone" validate:"max=32"`
	Status        Value   `json:"status"`
	OwnerUserID   Value   `json:"ownerUserId" validate:"omitempty,uuid"`
}

// ParseKind принимает "BUYER_NEED", "buyer-need", "hot sheet" и т.п.
func ParseKind(s string) (domain.CriteriaKind, error) {
	k := domain.CriteriaKind(strings.ToUpper(strings.NewReplacer("-", "_", " ", "_").Replace(strings.TrimSpace(s))))
	if !k.IsValid() {
		return domain.CriteriaKindUnspecified, domain.InvalidField("kind", "unknown value "+s)
	}
	return k, nil
}

func parseCriteriaStatus(v Value) (domain.CriteriaStatus, error) {
	st := domain.CriteriaStatus(strings.ToUpper(v.String()))
	if st == domain.CriteriaStatusUnspecified || st.IsValid() {
		return st, nil
	}
	return st, domain.InvalidField("status", "unknown value "+v.String())
}

// Criteria проверяет форму и строит domain.Criteria.
func (f CriteriaForm) Criteria() (domain.Criteria, error) {
	if err := check(f); err != nil {
		return domain.Criteria{}, err
	}

	kind, err := ParseKind(f.Kind.String())
	if err != nil {
		return domain.Criteria{}, err
	}

	types, err := f.propertyTypes()
	if err != nil {
		return domain.Criteria{}, err
	}

	statuses, err := parseStatuses(f.Statuses)
	if err != nil {
		return domain.Criteria{}, err
	}

	status, err := parseCriteriaStatus(f.Status)
	if err != nil {
		return domain.Criteria{}, err
	}

	c := domain.Criteria{
		Kind:          kind,
		Title:         f.Title.String(),
		PropertyTypes: types,
		Statuses:      statuses,
		ContactName:   f.ContactName.String(),
		ContactEmail:  lo.EmptyableToPtr(f.ContactEmail.String()),
		ContactPhone:  lo.EmptyableToPtr(f.ContactPhone.String()),
		Status:        status,
	}

	city, state := locality(f.City, f.State)
	c.City = lo.EmptyableToPtr(city)
	c.State = lo.EmptyableToPtr(state)

	if c.MinPrice, err = parseMoney("minPrice", f.MinPrice); err != nil {
		return domain.Criteria{}, err
	}
	if c.MaxPrice, err = parseMoney("maxPrice", f.MaxPrice); err != nil {
		return domain.Criteria{}, err
	}
	if c.MinPrice != nil && c.MaxPrice != nil && *c.MinPrice > *c.MaxPrice {
		return domain.Criteria{}, domain.InvalidField("minPrice", "exceeds maxPrice")
	}
	if c.Bedrooms, err = parseCount("bedrooms", f.Bedrooms); err != nil {
		return domain.Criteria{}, err
	}
	if c.Bathrooms, err = parseHalfStep("bathrooms", f.Bathrooms); err != nil {
		return domain.Criteria{}, err
	}
	if c.OwnerUserID, err = parseUUID("ownerUserId", f.OwnerUserID); err != nil {
		return domain.Criteria{}, err
	}

	return c, nil
}

func (f CriteriaForm) propertyTypes() ([]domain.PropertyType, error) {
	raw := f.PropertyTypes
	if f.PropertyType.String() != "" {
		raw = append([]Value{f.PropertyType}, raw...)
	}
	var out []domain.PropertyType
	for _, v := range raw {
		t, err := parsePropertyType("propertyTypes", v)
		if err != nil {
			return nil, err
		}
		if t != domain.PropertyTypeUnspecified {
			out = append(out, t)
		}
	}
	return lo.Uniq(out), nil
}

func parseStatuses(raw []Value) ([]domain.ListingStatus, error) {
	var out []domain.ListingStatus
	for _, v := range raw {
		st, err := parseListingStatus("statuses", v)
		if err != nil {
			return nil, err
		}
		if st != domain.ListingStatusUnspecified {
			out = append(out, st)
		}
	}
	return lo.Uniq(out), nil
}

// CriteriaPatch — частичное обновление критериев. nil — поле не меняется;
// пустая строка в городе, штате или контактах снимает значение.
type CriteriaPatch struct {
	Title         *Value   `json:"title" validate:"omitempty,max=200"`
	PropertyTypes *[]Value `json:"propertyTypes" validate:"omitempty,dive,propertytype"`
	Statuses      *[]Value `json:"statuses"`
	State         *Value   `json:"state" validate:"omitempty,max=40"`
	City          *Value   `json:"city" validate:"omitempty,max=120"`
	MinPrice      *Value   `json:"minPrice"`
	MaxPrice      *Value   `json:"maxPrice"`
	Bedrooms      *Value   `json:"bedrooms"`
	Bathrooms     *Value   `json:"bathrooms"`
	ContactName   *Value   `json:"contactName" validate:"omitempty,max=200"`
	ContactEmail  *Value   `json:"contactEmail" validate:"omitempty,len=0|email"`
	ContactPhone  *Value   `json:"contactPhone" validate:"omitempty,max=32"`
	Status        *Value   `json:"status"`
}

// Filter проверяет патч и строит domain.CriteriaFilter.
func (p CriteriaPatch) Filter() (domain.CriteriaFilter, error) {
	if err := check(p); err != nil {
		return domain.CriteriaFilter{}, err
	}

	var f domain.CriteriaFilter
	var err error

	if p.Title != nil {
		f.Title = lo.ToPtr(p.Title.String())
	}
	if p.PropertyTypes != nil {
		types, err := CriteriaForm{PropertyTypes: *p.PropertyTypes}.propertyTypes()
		if err != nil {
			return domain.CriteriaFilter{}, err
		}
		f.PropertyTypes = &types
	}
	if p.Statuses != nil {
		statuses, err := parseStatuses(*p.Statuses)
		if err != nil {
			return domain.CriteriaFilter{}, err
		}
		f.Statuses = &statuses
	}
	if p.State != nil {
		f.State = lo.ToPtr(p.State.String())
	}
	if p.City != nil {
		f.City = lo.ToPtr(p.City.String())
	}
	if p.MinPrice != nil {
		if f.MinPrice, err = parseMoney("minPrice", *p.MinPrice); err != nil || f.MinPrice == nil {
			return domain.CriteriaFilter{}, orEmpty(err, "minPrice")
		}
	}
	if p.MaxPrice != nil {
		if f.MaxPrice, err = parseMoney("maxPrice", *p.MaxPrice); err != nil || f.MaxPrice == nil {
			return domain.CriteriaFilter{}, orEmpty(err, "maxPrice")
		}
	}
	if p.Bedrooms != nil {
		if f.Bedrooms, err = parseCount("bedrooms", *p.Bedrooms); err != nil || f.Bedrooms == nil {
			return domain.CriteriaFilter{}, orEmpty(err, "bedrooms")
		}
	}
	if p.Bathrooms != nil {
		if f.Bathrooms, err = parseHalfStep("bathrooms", *p.Bathrooms); err != nil || f.Bathrooms == nil {
			return domain.CriteriaFilter{}, orEmpty(err, "bathrooms")
		}
	}
	if p.ContactName != nil {
		f.ContactName = lo.ToPtr(p.ContactName.String())
	}
	if p.ContactEmail != nil {
		f.ContactEmail = lo.ToPtr(p.ContactEmail.String())
	}
	if p.ContactPhone != nil {
		f.ContactPhone = lo.ToPtr(p.ContactPhone.String())
	}
	if p.Status != nil {
		st, err := parseCriteriaStatus(*p.Status)
		if err != nil {
			return domain.CriteriaFilter{}, err
		}
		if st == domain.CriteriaStatusUnspecified {
			return domain.CriteriaFilter{}, domain.InvalidField("status", "must not be empty")
		}
		f.Status = &st
	}

	return f, nil
}
