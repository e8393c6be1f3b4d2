package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"listing_exchange/internal/domain"
	"listing_exchange/internal/lib/criteriaform"
	"listing_exchange/internal/services/criteria"
	"listing_exchange/internal/services/matching"

	"github.com/samber/lo"
)

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

type listingSummary struct {
	Title        string `json:"title"`
	City         string `json:"city"`
	State        string `json:"state"`
	PropertyType string `json:"propertyType"`
	Price        int64  `json:"price"`
}

type needSummary struct {
	Title        string `json:"title,omitempty"`
	ContactName  string `json:"contactName,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
}

type invalidSummary struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type report[T any] struct {
	Perspective string           `json:"perspective"`
	Count       int              `json:"count"`
	Matches     []T              `json:"matches"`
	Invalid     []invalidSummary `json:"invalid"`
}

func newReport[T, S any](p matching.Perspective, res matching.Result[T], conv func(T) S) report[S] {
	return report[S]{
		Perspective: p.String(),
		Count:       res.Count,
		Matches:     lo.Map(res.Matches, func(m T, _ int) S { return conv(m) }),
		Invalid: lo.Map(res.Invalid, func(inv matching.InvalidRecord, _ int) invalidSummary {
			return invalidSummary{Index: inv.Index, Error: inv.Err.Error()}
		}),
	}
}

func summarizeListing(l domain.Listing) listingSummary {
	return listingSummary{
		Title:        l.Title,
		City:         l.City,
		State:        l.State,
		PropertyType: l.PropertyType.String(),
		Price:        l.Price,
	}
}

func summarizeNeed(c domain.Criteria) needSummary {
	return needSummary{
		Title:        c.Title,
		ContactName:  c.ContactName,
		ContactEmail: lo.FromPtr(c.ContactEmail),
		ContactPhone: lo.FromPtr(c.ContactPhone),
	}
}

func writeReport(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// criteriaFor разбирает форму критериев; без вида берётся вид, соответствующий направлению.
func criteriaFor(p matching.Perspective) func(criteriaform.CriteriaForm) (domain.Criteria, error) {
	return func(f criteriaform.CriteriaForm) (domain.Criteria, error) {
		if f.Kind.String() == "" {
			f.Kind = criteriaform.Value(criteria.KindFor(p))
		}
		return f.Criteria()
	}
}
