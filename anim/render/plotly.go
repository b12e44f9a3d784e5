// Package render builds a plotly animated-scatter figure document from a
// transform Result. Only the JSON document is produced here; playback belongs
// to an external plotly player.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/flowviz/flowviz/anim"
)

// Options groups the figure presentation knobs.
type Options struct {
	Height             int
	Width              int
	IconSize           int
	FrameDurationMS    int
	TransitionMS       int
	DisplayStageLabels bool
	// OverrideXMax / OverrideYMax replace the ranges derived from the layout
	// bounds (1.25x / 1.1x the max anchor) when positive.
	OverrideXMax float64
	OverrideYMax float64
}

// DefaultOptions mirrors the presentation defaults of the original pathway
// animations.
func DefaultOptions() Options {
	return Options{
		Height:             900,
		IconSize:           24,
		FrameDurationMS:    400,
		TransitionMS:       600,
		DisplayStageLabels: true,
	}
}

// Figure is a plotly figure document: initial data, layout, and one frame
// per sample instant.
type Figure struct {
	Data   []Trace   `json:"data"`
	Layout FigLayout `json:"layout"`
	Frames []Frame   `json:"frames"`
}

// Trace is one plotly scatter trace.
type Trace struct {
	Type         string    `json:"type"`
	Mode         string    `json:"mode,omitempty"`
	X            []float64 `json:"x"`
	Y            []float64 `json:"y"`
	Text         []string  `json:"text,omitempty"`
	TextPosition string    `json:"textposition,omitempty"`
	TextFont     *Font     `json:"textfont,omitempty"`
	Marker       *Marker   `json:"marker,omitempty"`
	Opacity      *float64  `json:"opacity,omitempty"`
	HoverText    []string  `json:"hovertext,omitempty"`
	HoverInfo    string    `json:"hoverinfo,omitempty"`
	Name         string    `json:"name,omitempty"`
}

// Font sets trace text size.
type Font struct {
	Size int `json:"size,omitempty"`
}

// Marker styles a markers-mode trace.
type Marker struct {
	Color string `json:"color,omitempty"`
	Size  int    `json:"size,omitempty"`
}

// Frame is one animation frame.
type Frame struct {
	Name string  `json:"name"`
	Data []Trace `json:"data"`
}

// FigLayout is the figure-level layout block.
type FigLayout struct {
	XAxis       Axis         `json:"xaxis"`
	YAxis       Axis         `json:"yaxis"`
	Height      int          `json:"height,omitempty"`
	Width       int          `json:"width,omitempty"`
	ShowLegend  bool         `json:"showlegend"`
	Sliders     []Slider     `json:"sliders,omitempty"`
	UpdateMenus []UpdateMenu `json:"updatemenus,omitempty"`
}

// Axis hides ticks and pins the range so the canvas behaves like a stage,
// not a chart.
type Axis struct {
	Range      [2]float64 `json:"range"`
	Visible    bool       `json:"visible"`
	FixedRange bool       `json:"fixedrange"`
}

// Slider is the frame scrubber.
type Slider struct {
	Steps []SliderStep `json:"steps"`
}

// SliderStep selects one frame.
type SliderStep struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

// UpdateMenu holds the play button.
type UpdateMenu struct {
	Type    string   `json:"type"`
	Buttons []Button `json:"buttons"`
}

// Button is one updatemenu button.
type Button struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

// BuildFigure assembles the animated figure: one entity trace and one
// idle-marker trace per frame, an optional static stage-label trace, a
// scrubber slider, and a play button.
func BuildFigure(res *anim.Result, layout *anim.Layout, opts Options) *Figure {
	frames := make([]Frame, 0, len(res.Grid))
	rowAt, idleAt := 0, 0
	for _, t := range res.Grid {
		entities := emptyTrace("text")
		entities.TextFont = &Font{Size: opts.IconSize}
		for ; rowAt < len(res.Frames) && res.Frames[rowAt].SampleTime == t; rowAt++ {
			row := res.Frames[rowAt]
			entities.X = append(entities.X, row.X)
			entities.Y = append(entities.Y, row.Y)
			entities.Text = append(entities.Text, row.Icon)
			entities.HoverText = append(entities.HoverText,
				fmt.Sprintf("%s — %s", row.EntityID, row.Label))
		}

		idle := emptyTrace("markers")
		idle.Marker = &Marker{Color: "LightSkyBlue", Size: 15}
		idle.Opacity = ptr(0.8)
		idle.HoverInfo = "none"
		for ; idleAt < len(res.IdleMarkers) && res.IdleMarkers[idleAt].SampleTime == t; idleAt++ {
			m := res.IdleMarkers[idleAt]
			idle.X = append(idle.X, m.X)
			idle.Y = append(idle.Y, m.Y)
		}

		frames = append(frames, Frame{
			Name: frameName(t),
			Data: []Trace{entities, idle},
		})
	}

	fig := &Figure{Frames: frames}
	if len(frames) > 0 {
		fig.Data = append(fig.Data, frames[0].Data...)
	}
	if opts.DisplayStageLabels {
		labels := emptyTrace("text")
		labels.TextPosition = "middle right"
		labels.HoverInfo = "none"
		for _, e := range layout.Entries() {
			labels.X = append(labels.X, e.X+10)
			labels.Y = append(labels.Y, e.Y)
			labels.Text = append(labels.Text, e.Label)
		}
		fig.Data = append(fig.Data, labels)
	}

	maxX, maxY := layout.Bounds()
	xMax, yMax := maxX*1.25, maxY*1.1
	if opts.OverrideXMax > 0 {
		xMax = opts.OverrideXMax
	}
	if opts.OverrideYMax > 0 {
		yMax = opts.OverrideYMax
	}

	animArgs := map[string]any{
		"frame":      map[string]any{"duration": opts.FrameDurationMS, "redraw": false},
		"transition": map[string]any{"duration": opts.TransitionMS},
		"mode":       "immediate",
	}
	slider := Slider{}
	for _, fr := range frames {
		slider.Steps = append(slider.Steps, SliderStep{
			Label:  fr.Name,
			Method: "animate",
			Args:   []any{[]string{fr.Name}, animArgs},
		})
	}

	fig.Layout = FigLayout{
		XAxis:   Axis{Range: [2]float64{0, xMax}, FixedRange: true},
		YAxis:   Axis{Range: [2]float64{0, yMax}, FixedRange: true},
		Height:  opts.Height,
		Width:   opts.Width,
		Sliders: []Slider{slider},
		UpdateMenus: []UpdateMenu{{
			Type: "buttons",
			Buttons: []Button{{
				Label:  "Play",
				Method: "animate",
				Args:   []any{nil, animArgs},
			}},
		}},
	}
	return fig
}

// WriteJSON writes the figure document to w.
func (f *Figure) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encoding figure: %w", err)
	}
	return nil
}

func emptyTrace(mode string) Trace {
	return Trace{
		Type: "scatter",
		Mode: mode,
		X:    make([]float64, 0),
		Y:    make([]float64, 0),
	}
}

func frameName(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}

func ptr(f float64) *float64 { return &f }
