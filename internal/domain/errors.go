package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput — значение поля структурно некорректно (NaN, отрицательная цена,
// неизвестный тип). Запись с такой ошибкой нельзя оценить.
var ErrInvalidInput = errors.New("invalid input")

// InvalidField оборачивает ErrInvalidInput с именем поля.
func InvalidField(field, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidInput, field, reason)
}
