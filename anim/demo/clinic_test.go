package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowviz/flowviz/anim"
)

func runDemoLog(t *testing.T, cfg Config) []anim.EventRecord {
	t.Helper()
	sim, err := NewSimulator(cfg)
	require.NoError(t, err)
	return sim.Run()
}

func TestSimulator_LogSatisfiesLifecycleInvariants(t *testing.T) {
	// GIVEN a completed demo run
	log := runDemoLog(t, DefaultConfig())
	require.NotEmpty(t, log)

	// THEN every patient has exactly one arrival and one departure, with
	// timestamps in order
	arrivals := make(map[string]int)
	departs := make(map[string]int)
	for _, rec := range log {
		switch {
		case rec.IsArrival():
			arrivals[rec.EntityID]++
		case rec.IsDepart():
			departs[rec.EntityID]++
		}
	}
	for id, n := range arrivals {
		assert.Equalf(t, 1, n, "patient %s arrivals", id)
		assert.Equalf(t, 1, departs[id], "patient %s departures", id)
	}
}

func TestSimulator_LogTransformsCleanly(t *testing.T) {
	// GIVEN a demo log, its layout, and its scenario
	cfg := DefaultConfig()
	sim, err := NewSimulator(cfg)
	require.NoError(t, err)
	log := sim.Run()

	animCfg := anim.DefaultConfig()
	animCfg.WrapQueuesAt = 10

	// WHEN the full transform runs over it
	res, err := anim.Transform(log, Layout(), sim.Scenario(), animCfg)

	// THEN it succeeds with no data-quality findings
	require.NoError(t, err)
	assert.NotEmpty(t, res.Frames)
	assert.Empty(t, res.Diagnostics)
}

func TestSimulator_DeterministicPerSeed(t *testing.T) {
	// GIVEN two runs with the same seed and one with a different seed
	cfg := DefaultConfig()
	first := runDemoLog(t, cfg)
	second := runDemoLog(t, cfg)
	cfg.Seed = 7
	third := runDemoLog(t, cfg)

	// THEN equal seeds replay identically and a new seed diverges
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, third)
}

func TestSimulator_ResourceIDsStayWithinPool(t *testing.T) {
	// GIVEN a busy clinic with a small pool
	cfg := DefaultConfig()
	cfg.MeanInterarrival = 1
	cfg.Nurses = 2
	log := runDemoLog(t, cfg)

	// THEN every resource-tagged row names a real unit
	for _, rec := range log {
		if rec.HasResource {
			assert.GreaterOrEqual(t, rec.ResourceID, 1)
			assert.LessOrEqual(t, rec.ResourceID, cfg.Nurses)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero horizon", func(c *Config) { c.Horizon = 0 }},
		{"zero interarrival", func(c *Config) { c.MeanInterarrival = 0 }},
		{"zero nurses", func(c *Config) { c.Nurses = 0 }},
		{"inverted treatment bounds", func(c *Config) { c.TreatMin = 10; c.TreatMax = 5 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			_, err := NewSimulator(cfg)
			assert.Error(t, err)
		})
	}
}
