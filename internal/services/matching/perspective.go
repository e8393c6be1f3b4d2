package matching

import (
	"fmt"
	"strings"

	"listing_exchange/internal/domain"
)

// Perspective — направление сопоставления: кто кого ищет.
type Perspective int

const (
	PerspectiveUnspecified Perspective = iota
	// ReverseProspecting — объявление ищет покупателей («кому нужен этот объект»).
	ReverseProspecting
	// HotSheet — сохранённый поиск ищет объявления.
	HotSheet
)

func (p Perspective) String() string {
	switch p {
	case ReverseProspecting:
		return "reverse-prospecting"
	case HotSheet:
		return "hot-sheet"
	default:
		return "unspecified"
	}
}

// ParsePerspective разбирает направление из строки запроса или флага CLI.
func ParsePerspective(s string) (Perspective, error) {
	switch strings.ToLower(strings.NewReplacer("_", "-", " ", "-").Replace(strings.TrimSpace(s))) {
	case "reverse-prospecting", "prospecting", "reverse":
		return ReverseProspecting, nil
	case "hot-sheet", "hotsheet", "search":
		return HotSheet, nil
	}
	return PerspectiveUnspecified, domain.InvalidField("perspective", fmt.Sprintf("unknown value %q", s))
}

func (p Perspective) valid() bool {
	return p == ReverseProspecting || p == HotSheet
}
