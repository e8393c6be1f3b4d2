// Package matching сопоставляет объявления с критериями покупателей.
// Все функции пакета чистые: не хранят состояния, не делают I/O и безопасны
// для одновременного вызова.
package matching

import (
	"listing_exchange/internal/domain"

	"github.com/samber/lo"
)

// Match решает, подходит ли объявление под критерии в заданном направлении.
//
// Каждое заданное поле критериев проверяется независимо, результаты
// объединяются через AND. Незаданное (nil или пустое) поле ограничением не является.
// Город критериев ищется как подстрока города объявления без учёта регистра
// в обоих направлениях.
//
// Ошибка (domain.ErrInvalidInput) возвращается только для структурно
// некорректных данных; обычное несовпадение ошибкой не является.
func Match(listing domain.Listing, criteria domain.Criteria, p Perspective) (bool, error) {
	if err := ValidateCriteria(criteria, p); err != nil {
		return false, err
	}
	if err := ValidateListing(listing); err != nil {
		return false, err
	}
	return matches(listing, criteria, p), nil
}

// matches вызывается только для проверенных записей.
func matches(l domain.Listing, c domain.Criteria, p Perspective) bool {
	if state := lo.FromPtr(c.State); state != "" && !domain.StatesMatch(l.State, state) {
		return false
	}
	if city := lo.FromPtr(c.City); city != "" && !domain.CityContains(l.City, city) {
		return false
	}

	if !propertyTypeMatches(l.PropertyType, c.PropertyTypes, p) {
		return false
	}

	if c.MaxPrice != nil && l.Price > *c.MaxPrice {
		return false
	}
	// Обратный поиск смотрит только на потолок бюджета покупателя.
	if p == HotSheet && c.MinPrice != nil && l.Price < *c.MinPrice {
		return false
	}

	if c.Bedrooms != nil && (l.Bedrooms == nil || *l.Bedrooms < *c.Bedrooms) {
		return false
	}
	if c.Bathrooms != nil && (l.Bathrooms == nil || *l.Bathrooms < *c.Bathrooms) {
		return false
	}

	return true
}

func propertyTypeMatches(t domain.PropertyType, wanted []domain.PropertyType, p Perspective) bool {
	if len(wanted) == 0 {
		return true
	}
	if p == ReverseProspecting {
		return t == wanted[0]
	}
	return lo.Contains(wanted, t)
}
