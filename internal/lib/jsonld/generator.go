package jsonld

import (
	"fmt"
	"strings"
	"time"

	"listing_exchange/internal/domain"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const schemaContext = "https://schema.org"

// Generator — генератор JSON-LD разметки (schema.org) для объявлений и критериев.
type Generator struct {
	baseURL  string
	currency string
}

// NewGenerator создаёт генератор; baseURL — префикс для @id и url.
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL:  strings.TrimRight(baseURL, "/"),
		currency: "USD",
	}
}

// RealEstateListing — объявление по schema.org.
type RealEstateListing struct {
	Context      string `json:"@context,omitempty"`
	Type         string `json:"@type"`
	ID           string `json:"@id,omitempty"`
	Name         string `json:"name"`
	URL          string `json:"url,omitempty"`
	DatePosted   string `json:"datePosted,omitempty"`
	DateModified string `json:"dateModified,omitempty"`

	Offers *Offer         `json:"offers,omitempty"`
	About  *Accommodation `json:"about,omitempty"`
}

// Accommodation — сам объект недвижимости.
type Accommodation struct {
	Type              string             `json:"@type"`
	Address           *PostalAddress     `json:"address,omitempty"`
	FloorSize         *QuantitativeValue `json:"floorSize,omitempty"`
	NumberOfBedrooms  *int32             `json:"numberOfBedrooms,omitempty"`
	NumberOfBathrooms *float64           `json:"numberOfBathroomsTotal,omitempty"`
}

// Offer — цена и доступность.
type Offer struct {
	Type          string `json:"@type"`
	Price         int64  `json:"price"`
	PriceCurrency string `json:"priceCurrency"`
	Availability  string `json:"availability,omitempty"`
}

// PostalAddress — почтовый адрес по schema.org.
type PostalAddress struct {
	Type            string `json:"@type"`
	StreetAddress   string `json:"streetAddress,omitempty"`
	AddressLocality string `json:"addressLocality,omitempty"`
	AddressRegion   string `json:"addressRegion,omitempty"`
	AddressCountry  string `json:"addressCountry,omitempty"`
}

// QuantitativeValue — количественное значение с единицей (FTK — кв. футы).
type QuantitativeValue struct {
	Type     string  `json:"@type"`
	Value    float64 `json:"value"`
	UnitCode string  `json:"unitCode"`
}

// Listing строит разметку объявления.
func (g *Generator) Listing(l domain.Listing) RealEstateListing {
	url := g.url("listings", l)
	out := RealEstateListing{
		Context:      schemaContext,
		Type:         "RealEstateListing",
		ID:           url,
		Name:         l.Title,
		URL:          url,
		DatePosted:   formatTime(l.CreatedAt),
		DateModified: formatTime(l.UpdatedAt),
		Offers: &Offer{
			Type:          "Offer",
			Price:         l.Price,
			PriceCurrency: g.currency,
			Availability:  availability(l.Status),
		},
		About: &Accommodation{
			Type: accommodationType(l.PropertyType),
			Address: &PostalAddress{
				Type:            "PostalAddress",
				StreetAddress:   l.Address,
				AddressLocality: l.City,
				AddressRegion:   l.State,
				AddressCountry:  "US",
			},
			NumberOfBedrooms:  l.Bedrooms,
			NumberOfBathrooms: l.Bathrooms,
		},
	}

	if l.SquareFeet != nil {
		out.About.FloorSize = &QuantitativeValue{
			Type:     "QuantitativeValue",
			Value:    float64(*l.SquareFeet),
			UnitCode: "FTK",
		}
	}

	return out
}

// ItemList — упорядоченный список совпадений.
type ItemList struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	Name            string     `json:"name,omitempty"`
	NumberOfItems   int        `json:"numberOfItems"`
	ItemListElement []ListItem `json:"itemListElement"`
}

type ListItem struct {
	Type     string            `json:"@type"`
	Position int               `json:"position"`
	Item     RealEstateListing `json:"item"`
}

// Matches строит ItemList из совпадений hot sheet; порядок сохраняется.
func (g *Generator) Matches(name string, listings []domain.Listing) ItemList {
	list := ItemList{
		Context:         schemaContext,
		Type:            "ItemList",
		Name:            name,
		NumberOfItems:   len(listings),
		ItemListElement: make([]ListItem, 0, len(listings)),
	}
	for i, l := range listings {
		item := g.Listing(l)
		item.Context = ""
		list.ItemListElement = append(list.ItemListElement, ListItem{
			Type:     "ListItem",
			Position: i + 1,
			Item:     item,
		})
	}
	return list
}

// SearchRequest — критерии как намерение найти объект (WantAction/SearchAction).
type SearchRequest struct {
	Context     string         `json:"@context"`
	Type        string         `json:"@type"`
	ID          string         `json:"@id,omitempty"`
	Name        string         `json:"name,omitempty"`
	DateCreated string         `json:"dateCreated,omitempty"`
	Object      *SeeksProperty `json:"object,omitempty"`
}

// SeeksProperty — желаемые характеристики недвижимости.
type SeeksProperty struct {
	Type              string              `json:"@type"`
	PropertyType      []string            `json:"additionalType,omitempty"`
	Location          *PostalAddress      `json:"address,omitempty"`
	PriceRange        *PriceSpecification `json:"priceSpecification,omitempty"`
	NumberOfBedrooms  *int32              `json:"numberOfBedrooms,omitempty"`
	NumberOfBathrooms *float64            `json:"numberOfBathroomsTotal,omitempty"`
}

// PriceSpecification — диапазон цены.
type PriceSpecification struct {
	Type          string `json:"@type"`
	MinPrice      *int64 `json:"minPrice,omitempty"`
	MaxPrice      *int64 `json:"maxPrice,omitempty"`
	PriceCurrency string `json:"priceCurrency"`
}

// Criteria строит разметку потребности покупателя (WantAction) или hot sheet (SearchAction).
func (g *Generator) Criteria(c domain.Criteria) SearchRequest {
	req := SearchRequest{
		Context:     schemaContext,
		Type:        lo.Ternary(c.Kind == domain.CriteriaKindHotSheet, "SearchAction", "WantAction"),
		Name:        c.Title,
		DateCreated: formatTime(c.CreatedAt),
		Object: &SeeksProperty{
			Type:              "Accommodation",
			PropertyType:      lo.Map(c.PropertyTypes, func(t domain.PropertyType, _ int) string { return accommodationType(t) }),
			NumberOfBedrooms:  c.Bedrooms,
			NumberOfBathrooms: c.Bathrooms,
		},
	}
	if c.ID != uuid.Nil {
		req.ID = fmt.Sprintf("%s/criteria/%s", g.baseURL, c.ID)
	}

	if c.City != nil || c.State != nil {
		req.Object.Location = &PostalAddress{
			Type:            "PostalAddress",
			AddressLocality: lo.FromPtr(c.City),
			AddressRegion:   lo.FromPtr(c.State),
			AddressCountry:  "US",
		}
	}
	if c.MinPrice != nil || c.MaxPrice != nil {
		req.Object.PriceRange = &PriceSpecification{
			Type:          "PriceSpecification",
			MinPrice:      c.MinPrice,
			MaxPrice:      c.MaxPrice,
			PriceCurrency: g.currency,
		}
	}

	return req
}

func (g *Generator) url(collection string, l domain.Listing) string {
	if l.ID == uuid.Nil {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", g.baseURL, collection, l.ID)
}

// accommodationType — ближайший тип schema.org для типа недвижимости.
func accommodationType(t domain.PropertyType) string {
	switch t {
	case domain.PropertyTypeSingleFamily:
		return "SingleFamilyResidence"
	case domain.PropertyTypeCondo:
		return "Apartment"
	case domain.PropertyTypeTownhouse, domain.PropertyTypeMultiFamily:
		return "House"
	case domain.PropertyTypeLand:
		return "Landform"
	default:
		return "Accommodation"
	}
}

func availability(s domain.ListingStatus) string {
	switch s {
	case domain.ListingStatusSold, domain.ListingStatusWithdrawn:
		return "https://schema.org/SoldOut"
	case domain.ListingStatusPending:
		return "https://schema.org/LimitedAvailability"
	default:
		return "https://schema.org/InStock"
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
