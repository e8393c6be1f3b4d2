package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestEvaluateCommand(t *testing.T) {
	dir := t.TempDir()
	listings := writeFile(t, dir, "listings.json", `[
		{"title": "A", "city": "Boston", "state": "MA", "propertyType": "condo", "price": 450000},
		{"title": "B", "city": "Boston", "state": "MA", "propertyType": "condo", "price": "n/a"},
		{"title": "C", "city": "Worcester", "state": "MA", "propertyType": "condo", "price": 300000},
		{"title": "D", "city": "East Boston", "state": "MA", "propertyType": "townhouse", "price": 520000},
		{"title": "E", "city": "Boston", "state": "MA", "propertyType": "land", "price": 200000}
	]`)
	crit := writeFile(t, dir, "criteria.json", `{"city": "boston", "propertyTypes": ["condo", "townhouse"], "maxPrice": "600,000"}`)

	out, err := execute(t, "evaluate", "--listings", listings, "--criteria", crit, "--perspective", "hot-sheet")
	require.NoError(t, err)

	var got report[listingSummary]
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "hot-sheet", got.Perspective)
	assert.Equal(t, 2, got.Count)
	require.Len(t, got.Matches, 2)
	assert.Equal(t, "A", got.Matches[0].Title)
	assert.Equal(t, "D", got.Matches[1].Title)
	require.Len(t, got.Invalid, 1)
	assert.Equal(t, 1, got.Invalid[0].Index)
}

func TestEvaluateCommand_InvalidCriteria(t *testing.T) {
	dir := t.TempDir()
	listings := writeFile(t, dir, "listings.json", `[]`)
	crit := writeFile(t, dir, "criteria.json", `{"bathrooms": "NaN"}`)

	_, err := execute(t, "evaluate", "--listings", listings, "--criteria", crit, "--perspective", "hot-sheet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bathrooms")
}

func TestEvaluateCommand_UnknownPerspective(t *testing.T) {
	dir := t.TempDir()
	listings := writeFile(t, dir, "listings.json", `[]`)
	crit := writeFile(t, dir, "criteria.json", `{}`)

	_, err := execute(t, "evaluate", "--listings", listings, "--criteria", crit, "--perspective", "sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "perspective")
}

func TestProspectCommand(t *testing.T) {
	dir := t.TempDir()
	listing := writeFile(t, dir, "listing.json",
		`{"title": "Cape", "city": "Newton, MA", "propertyType": "single family", "price": 875000, "bedrooms": 4, "bathrooms": 2.5}`)
	needs := writeFile(t, dir, "needs.json", `[
		{"contactName": "Ann", "state": "MA", "maxPrice": 900000, "bedrooms": 3},
		{"contactName": "Bob", "state": "NY"},
		{"contactName": "Cy", "minPrice": 1000000, "propertyType": "single_family"},
		{"contactName": "Di", "bathrooms": 3},
		{"contactName": "Ed", "propertyTypes": ["condo", "townhouse"]}
	]`)

	out, err := execute(t, "prospect", "--listing", listing, "--needs", needs)
	require.NoError(t, err)

	var got report[needSummary]
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "reverse-prospecting", got.Perspective)
	require.Equal(t, 2, got.Count)
	assert.Equal(t, "Ann", got.Matches[0].ContactName)
	assert.Equal(t, "Cy", got.Matches[1].ContactName)
	require.Len(t, got.Invalid, 1)
	assert.Equal(t, 4, got.Invalid[0].Index)
}

func TestProspectCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "prospect", "--listing", "/nonexistent/listing.json", "--needs", "/nonexistent/needs.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}
