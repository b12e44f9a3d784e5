package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowviz/flowviz/anim"
	"github.com/flowviz/flowviz/anim/demo"
)

func demoResult(t *testing.T) (*anim.Result, *anim.Layout) {
	t.Helper()
	sim, err := demo.NewSimulator(demo.DefaultConfig())
	require.NoError(t, err)
	log := sim.Run()

	cfg := anim.DefaultConfig()
	cfg.WrapQueuesAt = 10
	res, err := anim.Transform(log, demo.Layout(), sim.Scenario(), cfg)
	require.NoError(t, err)
	return res, demo.Layout()
}

func TestBuildFigure_OneFramePerSampleInstant(t *testing.T) {
	// GIVEN a transform result
	res, layout := demoResult(t)

	// WHEN the figure is built
	fig := BuildFigure(res, layout, DefaultOptions())

	// THEN there is one frame per grid instant, each carrying the entity and
	// idle-marker traces, plus the static stage-label trace
	require.Len(t, fig.Frames, len(res.Grid))
	for _, fr := range fig.Frames {
		assert.Len(t, fr.Data, 2)
	}
	require.Len(t, fig.Data, 3)
	assert.Equal(t, "text", fig.Data[2].Mode)
	assert.Len(t, fig.Data[2].Text, len(layout.Entries()))

	// AND the scrubber has one step per frame
	require.Len(t, fig.Layout.Sliders, 1)
	assert.Len(t, fig.Layout.Sliders[0].Steps, len(fig.Frames))
}

func TestBuildFigure_FrameContentsMatchResult(t *testing.T) {
	res, layout := demoResult(t)
	fig := BuildFigure(res, layout, DefaultOptions())

	// Snapshot rows and idle markers are partitioned across frames without loss
	rows, idle := 0, 0
	for _, fr := range fig.Frames {
		rows += len(fr.Data[0].X)
		idle += len(fr.Data[1].X)
	}
	assert.Equal(t, len(res.Frames), rows)
	assert.Equal(t, len(res.IdleMarkers), idle)
}

func TestBuildFigure_AxisRanges(t *testing.T) {
	res, layout := demoResult(t)

	// Ranges derive from the layout bounds by default
	fig := BuildFigure(res, layout, DefaultOptions())
	maxX, maxY := layout.Bounds()
	assert.Equal(t, [2]float64{0, maxX * 1.25}, fig.Layout.XAxis.Range)
	assert.Equal(t, [2]float64{0, maxY * 1.1}, fig.Layout.YAxis.Range)

	// Overrides win when set
	opts := DefaultOptions()
	opts.OverrideXMax = 500
	opts.OverrideYMax = 400
	fig = BuildFigure(res, layout, opts)
	assert.Equal(t, [2]float64{0, 500}, fig.Layout.XAxis.Range)
	assert.Equal(t, [2]float64{0, 400}, fig.Layout.YAxis.Range)
}

func TestFigure_WriteJSONRoundTrips(t *testing.T) {
	res, layout := demoResult(t)
	fig := BuildFigure(res, layout, DefaultOptions())

	var buf bytes.Buffer
	require.NoError(t, fig.WriteJSON(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "data")
	assert.Contains(t, decoded, "layout")
	assert.Contains(t, decoded, "frames")
}
