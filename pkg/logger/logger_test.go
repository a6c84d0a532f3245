package logger

import (
	"testing"

	"github.com/rs/zerolog"
	tassert "github.com/stretchr/testify/assert"
)

func TestSetLogLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	testCases := []struct {
		verbosity     string
		expectedLevel zerolog.Level
		expectErr     bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{"INFO", zerolog.InfoLevel, false},
		{"warn", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"trace", zerolog.TraceLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"loud", zerolog.Disabled, true},
	}

	for _, tc := range testCases {
		t.Run(tc.verbosity, func(t *testing.T) {
			assert := tassert.New(t)

			err := SetLogLevel(tc.verbosity)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expectedLevel, zerolog.GlobalLevel())
		})
	}
}

func TestConfigureDebugWins(t *testing.T) {
	assert := tassert.New(t)
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	assert.NoError(Configure("error", true))
	assert.Equal(zerolog.DebugLevel, zerolog.GlobalLevel())

	assert.NoError(Configure("warn", false))
	assert.Equal(zerolog.WarnLevel, zerolog.GlobalLevel())

	assert.Error(Configure("nope", false))
}
