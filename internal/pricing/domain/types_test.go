package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionType(t *testing.T) {
	for input, want := range map[string]OptionType{
		"call": OptionTypeCall,
		"CALL": OptionTypeCall,
		"Put":  OptionTypePut,
		"PUT":  OptionTypePut,
	} {
		got, err := ParseOptionType(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got)
	}

	_, err := ParseOptionType("straddle")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = ParseOptionType("")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseControlVariate(t *testing.T) {
	got, err := ParseControlVariate("")
	require.NoError(t, err)
	assert.Equal(t, ControlVariateNone, got)

	got, err = ParseControlVariate("GEOMETRIC")
	require.NoError(t, err)
	assert.Equal(t, ControlVariateGeometric, got)

	_, err = ParseControlVariate("antithetic")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSimulationConfigDefaults(t *testing.T) {
	cfg := SimulationConfig{Paths: 1000}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ControlVariateNone, cfg.ControlVariate)
	assert.Equal(t, defaultBatchSize, cfg.BatchSize)
	assert.Equal(t, defaultWorkers, cfg.Workers)

	bad := SimulationConfig{Paths: 0}
	assert.ErrorIs(t, bad.Validate(), ErrValidation)
}

func TestNewEstimationResultConfidenceInterval(t *testing.T) {
	r := newEstimationResult(10, 0.5)
	assert.InDelta(t, 10-1.96*0.5, r.ConfLow, 1e-12)
	assert.InDelta(t, 10+1.96*0.5, r.ConfHigh, 1e-12)

	exactR := exactResult(7)
	assert.Equal(t, 7.0, exactR.ConfLow)
	assert.Equal(t, 7.0, exactR.ConfHigh)
	assert.Zero(t, exactR.StdErr)
}

func TestPayoff(t *testing.T) {
	assert.Equal(t, 5.0, payoff(OptionTypeCall, 105, 100))
	assert.Equal(t, 0.0, payoff(OptionTypeCall, 95, 100))
	assert.Equal(t, 5.0, payoff(OptionTypePut, 95, 100))
	assert.Equal(t, 0.0, payoff(OptionTypePut, 105, 100))
}
