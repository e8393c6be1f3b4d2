package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatements(t *testing.T) {
	plain := statements(false)
	reset := statements(true)

	assert.Len(t, reset, len(plain)+len(dropStatements))
	assert.True(t, strings.HasPrefix(reset[0], "DROP TABLE"))
	for _, stmt := range plain {
		assert.NotContains(t, stmt, "DROP")
	}
}

func TestSchema_NotificationJobsAfterReferencedTables(t *testing.T) {
	idx := func(table string) int {
		for i, stmt := range schemaStatements {
			if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS "+table+" ") {
				return i
			}
		}
		return -1
	}

	jobs := idx("notification_jobs")
	assert.Greater(t, jobs, idx("listings"))
	assert.Greater(t, jobs, idx("criteria"))
	assert.Contains(t, schemaStatements[jobs], "UNIQUE (criteria_id, listing_id, channel)")
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "CREATE TABLE IF NOT EXISTS listings", firstLine(schemaStatements[0]))
	assert.Equal(t, "DROP TABLE IF EXISTS criteria CASCADE", firstLine(dropStatements[1]))
}
