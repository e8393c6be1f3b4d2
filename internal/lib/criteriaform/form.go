// Package criteriaform переводит строковые поля форм в типизированные записи.
// Всё, что не удалось разобрать, возвращается как domain.ErrInvalidInput
// с именем поля; NaN и пустые числа дальше формы не проходят.
package criteriaform

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"listing_exchange/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Value — поле формы. В JSON принимает и строку, и число.
type Value string

func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*v = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Value(s)
		return nil
	case len(b) > 0 && (b[0] == '-' || (b[0] >= '0' && b[0] <= '9')):
		*v = Value(b)
		return nil
	}
	return errors.New("form value must be a string or a number")
}

func (v Value) String() string {
	return strings.TrimSpace(string(v))
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
			s := stripMoney(fl.Field().String())
			if s == "" {
				return true
			}
			_, err := strconv.ParseInt(s, 10, 64)
			return err == nil
		})
		_ = v.RegisterValidation("propertytype", func(fl validator.FieldLevel) bool {
			_, ok := domain.ParsePropertyType(fl.Field().String())
			return ok
		})
		validate = v
	})
	return validate
}

// check прогоняет теги validate и переводит первую ошибку в ErrInvalidInput.
func check(form any) error {
	err := validatorInstance().Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		reason := "failed " + fe.Tag()
		if fe.Param() != "" {
			reason += "=" + fe.Param()
		}
		return domain.InvalidField(fe.Field(), reason)
	}
	return domain.InvalidField("form", err.Error())
}

func stripMoney(s string) string {
	return strings.NewReplacer("$", "", ",", "", " ", "", "_", "").Replace(strings.TrimSpace(s))
}

// parseMoney разбирает "450,000" или "$450000". Пустая строка — нет значения.
func parseMoney(field string, v Value) (*int64, error) {
	s := stripMoney(v.String())
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, domain.InvalidField(field, "not a whole amount")
	}
	if n < 0 {
		return nil, domain.InvalidField(field, "must not be negative")
	}
	return &n, nil
}

func parseCount(field string, v Value) (*int32, error) {
	s := v.String()
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return nil, domain.InvalidField(field, "not a whole number")
	}
	if n < 0 {
		return nil, domain.InvalidField(field, "must not be negative")
	}
	n32 := int32(n)
	return &n32, nil
}

// parseHalfStep разбирает число ванных: 1, 1.5, 2 ...
func parseHalfStep(field string, v Value) (*float64, error) {
	s := v.String()
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, domain.InvalidField(field, "not a number")
	}
	if f < 0 {
		return nil, domain.InvalidField(field, "must not be negative")
	}
	if f*2 != math.Trunc(f*2) {
		return nil, domain.InvalidField(field, "must be a multiple of 0.5")
	}
	return &f, nil
}

func parseUUID(field string, v Value) (uuid.UUID, error) {
	s := v.String()
	if s == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, domain.InvalidField(field, "not a uuid")
	}
	return id, nil
}

func parsePropertyType(field string, v Value) (domain.PropertyType, error) {
	s := v.String()
	if s == "" {
		return domain.PropertyTypeUnspecified, nil
	}
	t, ok := domain.ParsePropertyType(s)
	if !ok {
		return domain.PropertyTypeUnspecified, domain.InvalidField(field, "unknown value "+s)
	}
	return t, nil
}

func parseListingStatus(field string, v Value) (domain.ListingStatus, error) {
	st := domain.ListingStatus(strings.ToLower(v.String()))
	if st == domain.ListingStatusUnspecified || st.IsValid() {
		return st, nil
	}
	return st, domain.InvalidField(field, "unknown value "+v.String())
}

// locality разбирает город и штат; "Boston, MA" в поле города
// заполняет штат, если он не указан отдельно.
func locality(city, state Value) (string, string) {
	c, s := city.String(), state.String()
	if s == "" && strings.Contains(c, ",") {
		return domain.SplitLocality(c)
	}
	if s != "" {
		s = domain.NormalizeState(s)
	}
	return c, s
}

// orEmpty возвращает err, а если его нет, ошибку о пустом поле патча.
func orEmpty(err error, field string) error {
	if err != nil {
		return err
	}
	return domain.InvalidField(field, "must not be empty")
}
