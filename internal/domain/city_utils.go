package domain

import (
	"strings"
)

// cityAliases — сокращения, которые агенты используют вместо полного названия.
// Применяются только к строке целиком.
var cityAliases = map[string]string{
	"nyc":    "new york",
	"sf":     "san francisco",
	"philly": "philadelphia",
}

// stateCodes — полные названия штатов в двухбуквенные коды.
var stateCodes = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT", "delaware": "DE",
	"district of columbia": "DC", "florida": "FL", "georgia": "GA", "hawaii": "HI",
	"idaho": "ID", "illinois": "IL", "indiana": "IN", "iowa": "IA",
	"kansas": "KS", "kentucky": "KY", "louisiana": "LA", "maine": "ME",
	"maryland": "MD", "massachusetts": "MA", "michigan": "MI", "minnesota": "MN",
	"mississippi": "MS", "missouri": "MO", "montana": "MT", "nebraska": "NE",
	"nevada": "NV", "new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM",
	"new york": "NY", "north carolina": "NC", "north dakota": "ND", "ohio": "OH",
	"oklahoma": "OK", "oregon": "OR", "pennsylvania": "PA", "rhode island": "RI",
	"south carolina": "SC", "south dakota": "SD", "tennessee": "TN", "texas": "TX",
	"utah": "UT", "vermont": "VT", "virginia": "VA", "washington": "WA",
	"west virginia": "WV", "wisconsin": "WI", "wyoming": "WY",
}

// NormalizeCity приводит название города к виду для сравнения:
// нижний регистр, без точек, одиночные пробелы, раскрытые сокращения.
func NormalizeCity(city string) string {
	city = strings.ToLower(city)
	city = strings.ReplaceAll(city, ".", "")
	city = strings.Join(strings.Fields(city), " ")

	if full, ok := cityAliases[city]; ok {
		return full
	}

	if rest, ok := strings.CutPrefix(city, "saint "); ok {
		city = "st " + rest
	}

	return city
}

// foldCity — нижний регистр и одиночные пробелы, без других замен.
func foldCity(city string) string {
	return strings.Join(strings.Fields(strings.ToLower(city)), " ")
}

// CityContains проверяет, что город из критериев входит в город объявления
// (аналог ILIKE '%city%' по городу объявления).
// Сокращения и "saint"/"st" учитываются только если буквальная подстрока не найдена.
func CityContains(listingCity, criteriaCity string) bool {
	if strings.Contains(foldCity(listingCity), foldCity(criteriaCity)) {
		return true
	}
	return strings.Contains(NormalizeCity(listingCity), NormalizeCity(criteriaCity))
}

// NormalizeState возвращает двухбуквенный код штата в верхнем регистре.
// Полные названия ("Massachusetts") переводятся в код; неизвестные значения
// возвращаются обрезанными и в верхнем регистре.
func NormalizeState(state string) string {
	s := strings.Join(strings.Fields(strings.ReplaceAll(state, ".", "")), " ")
	if code, ok := stateCodes[strings.ToLower(s)]; ok {
		return code
	}
	return strings.ToUpper(s)
}

// StatesMatch — регистронезависимое точное сравнение штатов.
func StatesMatch(a, b string) bool {
	return NormalizeState(a) == NormalizeState(b)
}

// SplitLocality разбирает строку вида "Boston, MA" на город и штат.
// Если запятой нет, вся строка считается городом.
func SplitLocality(s string) (city, state string) {
	idx := strings.LastIndex(s, ",")
	if idx < 0 {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(s[:idx]), NormalizeState(s[idx+1:])
}
