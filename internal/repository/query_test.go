package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgs_Numbering(t *testing.T) {
	var a Args
	a.Add("status = ANY($%d)", []string{"active"})
	a.Add("price BETWEEN $%d AND $%d", 100, 200)
	limit := a.Bind(50)

	assert.Equal(t, " WHERE status = ANY($1) AND price BETWEEN $2 AND $3", a.Where())
	assert.Equal(t, "$4", limit)
	assert.Equal(t, []any{[]string{"active"}, 100, 200, 50}, a.Params())
}

func TestArgs_CloneIsIndependent(t *testing.T) {
	var a Args
	a.Add("state = $%d", "MA")

	b := a.Clone()
	b.Add("city = $%d", "Boston")

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, " WHERE state = $1 AND city = $2", b.Where())
}

func TestArgs_EmptyWhere(t *testing.T) {
	var a Args
	assert.Equal(t, "", a.Where())
	assert.Equal(t, "name = $1", func() string { a.Add("name = $%d", "x"); return a.Join(", ") }())
}
