package criteriaform

import (
	"listing_exchange/internal/domain"

	"github.com/samber/lo"
)

// ListingForm — объявление из формы агента.
type ListingForm struct {
	Title        Value `json:"title" validate:"required,max=200"`
	Address      Value `json:"address" validate:"max=300"`
	City         Value `json:"city" validate:"required,max=120"`
	State        Value `json:"state" validate:"max=40"`
	PropertyType Value `json:"propertyType" validate:"required,propertytype"`
	Price        Value `json:"price" validate:"required,money"`
	Bedrooms     Value `json:"bedrooms"`
	Bathrooms    Value `json:"bathrooms"`
	SquareFeet   Value `json:"squareFeet"`
	Status       Value `json:"status"`
	AgentUserID  Value `json:"agentUserId" validate:"omitempty,uuid"`
}

// Listing проверяет форму и строит domain.Listing.
func (f ListingForm) Listing() (domain.Listing, error) {
	if err := check(f); err != nil {
		return domain.Listing{}, err
	}

	l := domain.Listing{
		Title:   f.Title.String(),
		Address: f.Address.String(),
	}
	l.City, l.State = locality(f.City, f.State)
	if l.State == "" {
		return domain.Listing{}, domain.InvalidField("state", "required")
	}

	var err error
	if l.PropertyType, err = parsePropertyType("propertyType", f.PropertyType); err != nil {
		return domain.Listing{}, err
	}
	price, err := parseMoney("price", f.Price)
	if err != nil || price == nil {
		return domain.Listing{}, orEmpty(err, "price")
	}
	l.Price = *price
	if l.Bedrooms, err = parseCount("bedrooms", f.Bedrooms); err != nil {
		return domain.Listing{}, err
	}
	if l.Bathrooms, err = parseHalfStep("bathrooms", f.Bathrooms); err != nil {
		return domain.Listing{}, err
	}
	if l.SquareFeet, err = parseCount("squareFeet", f.SquareFeet); err != nil {
		return domain.Listing{}, err
	}
	if l.Status, err = parseListingStatus("status", f.Status); err != nil {
		return domain.Listing{}, err
	}
	if l.AgentUserID, err = parseUUID("agentUserId", f.AgentUserID); err != nil {
		return domain.Listing{}, err
	}

	return l, nil
}

// ListingPatch — частичное обновление объявления. nil — поле не меняется.
type ListingPatch struct {
	Title        *Value `json:"title" validate:"omitempty,max=200"`
	Address      *Value `json:"address" validate:"omitempty,max=300"`
	City         *Value `json:"city" validate:"omitempty,max=120"`
	State        *Value `json:"state" validate:"omitempty,max=40"`
	PropertyType *Value `json:"propertyType" validate:"omitempty,propertytype"`
	Price        *Value `json:"price"`
	Bedrooms     *Value `json:"bedrooms"`
	Bathrooms    *Value `json:"bathrooms"`
	SquareFeet   *Value `json:"squareFeet"`
	Status       *Value `json:"status"`
}

// Filter проверяет патч и строит domain.ListingFilter.
func (p ListingPatch) Filter() (domain.ListingFilter, error) {
	if err := check(p); err != nil {
		return domain.ListingFilter{}, err
	}

	var f domain.ListingFilter
	var err error

	if p.Title != nil {
		f.Title = lo.ToPtr(p.Title.String())
	}
	if p.Address != nil {
		f.Address = lo.ToPtr(p.Address.String())
	}
	if p.City != nil {
		f.City = lo.ToPtr(p.City.String())
	}
	if p.State != nil {
		f.State = lo.ToPtr(domain.NormalizeState(p.State.String()))
	}
	if p.PropertyType != nil {
		t, err := parsePropertyType("propertyType", *p.PropertyType)
		if err != nil {
			return domain.ListingFilter{}, err
		}
		f.PropertyType = &t
	}
	if p.Price != nil {
		if f.Price, err = parseMoney("price", *p.Price); err != nil || f.Price == nil {
			return domain.ListingFilter{}, orEmpty(err, "price")
		}
	}
	if p.Bedrooms != nil {
		if f.Bedrooms, err = parseCount("bedrooms", *p.Bedrooms); err != nil || f.Bedrooms == nil {
			return domain.ListingFilter{}, orEmpty(err, "bedrooms")
		}
	}
	if p.Bathrooms != nil {
		if f.Bathrooms, err = parseHalfStep("bathrooms", *p.Bathrooms); err != nil || f.Bathrooms == nil {
			return domain.ListingFilter{}, orEmpty(err, "bathrooms")
		}
	}
	if p.SquareFeet != nil {
		if f.SquareFeet, err = parseCount("squareFeet", *p.SquareFeet); err != nil || f.SquareFeet == nil {
			return domain.ListingFilter{}, orEmpty(err, "squareFeet")
		}
	}
	if p.Status != nil {
		st, err := parseListingStatus("status", *p.Status)
		if err != nil {
			return domain.ListingFilter{}, err
		}
		if st == domain.ListingStatusUnspecified {
			return domain.ListingFilter{}, domain.InvalidField("status", "must not be empty")
		}
		f.Status = &st
	}

	return f, nil
}
