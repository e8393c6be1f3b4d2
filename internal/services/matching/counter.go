package matching

import (
	"iter"
	"slices"

	"listing_exchange/internal/domain"
)

// InvalidRecord — запись коллекции, которую не удалось оценить.
// Не входит ни в совпадения, ни в несовпадения.
type InvalidRecord struct {
	Index int
	Err   error
}

// Result — итог сопоставления коллекции с одной опорной записью.
// Count всегда равен len(Matches), порядок Matches совпадает с порядком входа.
type Result[T any] struct {
	Count   int
	Matches []T
	Invalid []InvalidRecord

	// Truncated — набор кандидатов упёрся в лимит выборки, Count может быть занижен.
	// Выставляет вызывающий сервис.
	Truncated bool
}

// All отдаёт совпадения как повторно обходимую последовательность.
func (r Result[T]) All() iter.Seq[T] {
	return slices.Values(r.Matches)
}

// CountListings сопоставляет критерии со списком объявлений.
// Некорректные критерии прерывают весь вызов; некорректные объявления
// попадают в Invalid.
func CountListings(criteria domain.Criteria, listings []domain.Listing, p Perspective) (Result[domain.Listing], error) {
	if err := ValidateCriteria(criteria, p); err != nil {
		return Result[domain.Listing]{}, err
	}

	return count(listings, ValidateListing, func(l domain.Listing) bool {
		return matches(l, criteria, p)
	}), nil
}

// CountCriteria сопоставляет объявление со списком критериев.
// Некорректное объявление прерывает весь вызов; некорректные критерии
// попадают в Invalid.
func CountCriteria(listing domain.Listing, criteria []domain.Criteria, p Perspective) (Result[domain.Criteria], error) {
	if !p.valid() {
		return Result[domain.Criteria]{}, domain.InvalidField("perspective", "unknown value "+p.String())
	}
	if err := ValidateListing(listing); err != nil {
		return Result[domain.Criteria]{}, err
	}

	validate := func(c domain.Criteria) error { return ValidateCriteria(c, p) }
	return count(criteria, validate, func(c domain.Criteria) bool {
		return matches(listing, c, p)
	}), nil
}

func count[T any](items []T, validate func(T) error, match func(T) bool) Result[T] {
	res := Result[T]{Matches: make([]T, 0)}
	for i, item := range items {
		if err := validate(item); err != nil {
			res.Invalid = append(res.Invalid, InvalidRecord{Index: i, Err: err})
			continue
		}
		if match(item) {
			res.Matches = append(res.Matches, item)
		}
	}
	res.Count = len(res.Matches)
	return res
}
