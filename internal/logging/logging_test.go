package logging

import (
	"bytes"
	"testing"

	"mapty/workout-tracker/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	Setup(config.LogConfig{Level: "debug"}, &buf)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Debug().Str("key", "workouts").Msg("hello")

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	assert.Contains(t, buf.String(), `"key":"workouts"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestSetupUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	Setup(config.LogConfig{Level: "loud"}, &buf)

	log.Debug().Msg("hidden")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	assert.Empty(t, buf.String())
}
