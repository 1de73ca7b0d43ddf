package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"hotel/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Helper()

	original, level := log.Logger, zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestInitLogger(t *testing.T) {
	restore(t)

	InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	ErrorWithStack(errors.New("pq: connection refused"))

	assert.Contains(t, buf.String(), "pq: connection refused")
}

func TestConfigure_Level(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: "warn", want: zerolog.WarnLevel},
		{level: "disabled", want: zerolog.Disabled},
		{level: "loud", want: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			restore(t)

			cfg := &config.Config{}
			cfg.Server.Env = envDevelopment
			cfg.Server.LogLevel = tt.level

			configure(cfg, &bytes.Buffer{})

			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestConfigure_JSONOutsideDevelopment(t *testing.T) {
	restore(t)

	var buf bytes.Buffer

	cfg := &config.Config{}
	cfg.Server.Env = "production"
	cfg.Server.LogLevel = "info"
	cfg.App.Name = "hotel"

	configure(cfg, &buf)
	log.Info().Str("booking_id", "b-1").Msg("checked in")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "hotel", entry["app"])
	assert.Equal(t, "production", entry["env"])
	assert.Equal(t, "b-1", entry["booking_id"])
	assert.Equal(t, "checked in", entry["message"])
}
