package matching

import (
	"math"

	"listing_exchange/internal/domain"
)

// ValidateListing проверяет, что объявление можно сопоставлять.
// Пустые необязательные поля ошибкой не считаются.
func ValidateListing(l domain.Listing) error {
	if l.Price < 0 {
		return domain.InvalidField("price", "must not be negative")
	}
	if l.PropertyType != domain.PropertyTypeUnspecified && !l.PropertyType.IsValid() {
		return domain.InvalidField("propertyType", "unknown value "+l.PropertyType.String())
	}
	if l.Bedrooms != nil && *l.Bedrooms < 0 {
		return domain.InvalidField("bedrooms", "must not be negative")
	}
	if err := checkBathrooms(l.Bathrooms); err != nil {
		return err
	}
	if l.SquareFeet != nil && *l.SquareFeet < 0 {
		return domain.InvalidField("squareFeet", "must not be negative")
	}
	return nil
}

// ValidateCriteria проверяет критерии для заданного направления.
// В обратном поиске потребность покупателя может указывать не больше одного типа.
func ValidateCriteria(c domain.Criteria, p Perspective) error {
	if !p.valid() {
		return domain.InvalidField("perspective", "unknown value "+p.String())
	}
	if c.MinPrice != nil && *c.MinPrice < 0 {
		return domain.InvalidField("minPrice", "must not be negative")
	}
	if c.MaxPrice != nil && *c.MaxPrice < 0 {
		return domain.InvalidField("maxPrice", "must not be negative")
	}
	if c.Bedrooms != nil && *c.Bedrooms < 0 {
		return domain.InvalidField("bedrooms", "must not be negative")
	}
	if err := checkBathrooms(c.Bathrooms); err != nil {
		return err
	}
	for _, t := range c.PropertyTypes {
		if !t.IsValid() {
			return domain.InvalidField("propertyTypes", "unknown value "+t.String())
		}
	}
	if p == ReverseProspecting && len(c.PropertyTypes) > 1 {
		return domain.InvalidField("propertyTypes", "buyer need must name a single property type")
	}
	return nil
}

func checkBathrooms(v *float64) error {
	if v == nil {
		return nil
	}
	switch {
	case math.IsNaN(*v) || math.IsInf(*v, 0):
		return domain.InvalidField("bathrooms", "not a number")
	case *v < 0:
		return domain.InvalidField("bathrooms", "must not be negative")
	}
	return nil
}
