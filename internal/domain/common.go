package domain

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultPageSize — размер страницы по умолчанию.
	DefaultPageSize = 20
	// MaxPageSize — верхняя граница размера страницы.
	MaxPageSize = 500
)

// OrderDirection — направление сортировки по created_at.
type OrderDirection string

const (
	OrderAsc  OrderDirection = "asc"
	OrderDesc OrderDirection = "desc"
)

// PaginationParams — параметры страницы списка.
type PaginationParams struct {
	PageSize       int32
	PageToken      string
	OrderDirection OrderDirection
}

// PageCursor — позиция последней выданной записи: (created_at, id).
type PageCursor struct {
	LastID        uuid.UUID `json:"id"`
	LastCreatedAt time.Time `json:"ca"`
}

var errEmptyCursor = errors.New("cursor has no record id")

// Encode упаковывает курсор в непрозрачный токен.
func (c *PageCursor) Encode() string {
	if c == nil {
		return ""
	}
	data, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodePageCursor разбирает токен страницы. Пустой токен — первая страница (nil, nil).
func DecodePageCursor(token string) (*PageCursor, error) {
	if token == "" {
		return nil, nil
	}
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return nil, err
	}
	var cursor PageCursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, err
	}
	if cursor.LastID == uuid.Nil {
		return nil, errEmptyCursor
	}
	return &cursor, nil
}

// PaginatedResult — страница записей и токен следующей.
type PaginatedResult[T any] struct {
	Items         []T
	NextPageToken string
	TotalCount    int32
	HasMore       bool
}

func NormalizePageSize(size int32) int32 {
	switch {
	case size <= 0:
		return DefaultPageSize
	case size > MaxPageSize:
		return MaxPageSize
	default:
		return size
	}
}

// NormalizeOrderDirection — всё, кроме "asc" (без учёта регистра), считается desc.
func NormalizeOrderDirection(dir string) OrderDirection {
	if strings.EqualFold(strings.TrimSpace(dir), string(OrderAsc)) {
		return OrderAsc
	}
	return OrderDesc
}
