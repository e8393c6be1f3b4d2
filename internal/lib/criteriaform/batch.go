package criteriaform

import (
	"cmp"
	"slices"

	"listing_exchange/internal/services/matching"
)

// Batch — коллекция форм после разбора. Records хранит только разобранные
// записи; Invalid — формы, которые не прошли разбор, с их исходными позициями.
type Batch[T any] struct {
	Records []T
	Invalid []matching.InvalidRecord
	origin  []int
}

// ParseBatch разбирает каждую форму по отдельности: ошибка одной формы
// не прерывает разбор остальных.
func ParseBatch[F, T any](forms []F, parse func(F) (T, error)) Batch[T] {
	b := Batch[T]{Records: make([]T, 0, len(forms)), origin: make([]int, 0, len(forms))}
	for i, f := range forms {
		rec, err := parse(f)
		if err != nil {
			b.Invalid = append(b.Invalid, matching.InvalidRecord{Index: i, Err: err})
			continue
		}
		b.Records = append(b.Records, rec)
		b.origin = append(b.origin, i)
	}
	return b
}

// Merge переводит индексы Invalid результата в позиции исходной коллекции
// и добавляет к ним ошибки разбора.
func (b Batch[T]) Merge(res matching.Result[T]) matching.Result[T] {
	invalid := slices.Clone(b.Invalid)
	for _, inv := range res.Invalid {
		invalid = append(invalid, matching.InvalidRecord{Index: b.origin[inv.Index], Err: inv.Err})
	}
	slices.SortFunc(invalid, func(a, b matching.InvalidRecord) int { return cmp.Compare(a.Index, b.Index) })
	res.Invalid = invalid
	return res
}
