package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCity(t *testing.T) {
	tests := map[string]string{
		"  Boston ":        "boston",
		"St. Louis":        "st louis",
		"Saint Paul":       "st paul",
		"NYC":              "new york",
		"sf":               "san francisco",
		"New   York  City": "new york city",
		"":                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeCity(in), in)
	}
}

func TestCityContains(t *testing.T) {
	assert.True(t, CityContains("Boston", "bos"))
	assert.True(t, CityContains("BOSTON", "Boston"))
	assert.True(t, CityContains("Saint Louis", "st. louis"))
	assert.True(t, CityContains("New York City", "nyc"))
	assert.True(t, CityContains("Saint Paul", "saint"))
	assert.True(t, CityContains("Saint Louis", "Saint"))
	assert.True(t, CityContains("NYC", "ny"))
	assert.True(t, CityContains("Philly", "lly"))
	assert.True(t, CityContains("St. Louis", "st."))
	assert.True(t, CityContains("New  York", "new york"))
	assert.False(t, CityContains("Bos", "Boston"))
	assert.False(t, CityContains("Cambridge", "Boston"))
}

func TestNormalizeState(t *testing.T) {
	assert.Equal(t, "MA", NormalizeState("ma"))
	assert.Equal(t, "MA", NormalizeState(" Massachusetts "))
	assert.Equal(t, "NY", NormalizeState("new york"))
	assert.Equal(t, "DC", NormalizeState("District of Columbia"))
	assert.Equal(t, "ZZ", NormalizeState("zz"))
	assert.True(t, StatesMatch("ny", "NY"))
	assert.False(t, StatesMatch("NY", "NJ"))
}

func TestSplitLocality(t *testing.T) {
	city, state := SplitLocality("Boston, MA")
	assert.Equal(t, "Boston", city)
	assert.Equal(t, "MA", state)

	city, state = SplitLocality("Portland, Oregon")
	assert.Equal(t, "Portland", city)
	assert.Equal(t, "OR", state)

	city, state = SplitLocality(" Springfield ")
	assert.Equal(t, "Springfield", city)
	assert.Empty(t, state)
}
