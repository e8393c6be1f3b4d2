package slogpretty

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"listing_exchange/internal/lib/logger/sl"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrettyHandler_WritesMessageAndAttrs(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug}}
	log := slog.New(opts.NewPrettyHandler(&buf))

	log.With(slog.String("op", "matching.Count")).
		WithGroup("run").
		Info("hot sheet evaluated", slog.Int("matches", 3), sl.Err(errors.New("boom")))

	out := buf.String()
	assert.Contains(t, out, "INFO:")
	assert.Contains(t, out, "hot sheet evaluated")
	assert.Contains(t, out, `"op": "matching.Count"`)
	assert.Contains(t, out, `"run.matches": 3`)
	assert.Contains(t, out, `"run.error": "boom"`)
}
