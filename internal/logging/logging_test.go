package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Config{Level: "info"})

	log.Info().Str("stage", "scan").Msg("run started")

	out := buf.String()
	assert.Contains(t, out, "run started")
	assert.Contains(t, out, "stage")
}

func TestLevelParsing(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{"debug level", "debug", zerolog.DebugLevel},
		{"info level", "info", zerolog.InfoLevel},
		{"warn level", "warn", zerolog.WarnLevel},
		{"error level", "error", zerolog.ErrorLevel},
		{"empty defaults to info", "", zerolog.InfoLevel},
		{"unknown defaults to info", "verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(&buf, Config{Level: tt.level})
			assert.Equal(t, tt.want, log.GetLevel())
		})
	}
}

func TestLevelFiltersBelow(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Config{Level: "warn"})

	log.Info().Msg("invisible")
	log.Warn().Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "invisible")
	assert.Contains(t, out, "visible")
}

func TestQuietClampsToError(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Config{Level: "debug", Quiet: true})

	assert.Equal(t, zerolog.ErrorLevel, log.GetLevel())

	log.Warn().Msg("suppressed warning")
	log.Error().Msg("reported failure")

	out := buf.String()
	assert.NotContains(t, out, "suppressed warning")
	assert.Contains(t, out, "reported failure")
}

func TestNonFileWriterDisablesColor(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Config{})

	log.Error().Msg("plain output")

	assert.NotContains(t, buf.String(), "\x1b[")
}
