package anim

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Result is the complete output of one transform invocation.
type Result struct {
	// Frames is the long-format snapshot table, sorted by sample time then
	// entity id. Ordering is part of the contract: downstream renderers and
	// test comparisons rely on it.
	Frames []SnapshotRow `json:"frames"`
	// IdleMarkers holds unoccupied resource-slot markers, sorted by sample
	// time, event, slot. Empty unless Config.ShowIdleResources.
	IdleMarkers []IdleMarker `json:"idle_markers,omitempty"`
	// Grid is the sampled instants, strictly increasing, evenly spaced.
	Grid []float64 `json:"grid"`
	// Diagnostics lists recoverable data-quality findings, ingestion first,
	// then per-instant findings in grid order.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Transform reconstructs per-instant entity positions from a finished event
// log. It is a pure batch operation: identical inputs produce identical
// output, and no state survives between invocations.
//
// Sample instants are independent of each other — each entity's state at t
// depends only on that entity's own prior events — so frames are computed in
// parallel and flattened into canonical order afterwards.
//
// Fatal errors (schema, unresolved layout keys, invalid config, the
// capacity-exceeded guard) return a nil Result; recoverable findings come
// back in Result.Diagnostics next to best-effort output.
func Transform(log []EventRecord, layout *Layout, capacities CapacityProvider, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transform config: %w", err)
	}
	caps, err := layout.ResolveCapacities(capacities)
	if err != nil {
		return nil, fmt.Errorf("resolving layout capacities: %w", err)
	}
	idx, diags, err := buildIndex(log, layout, cfg)
	if err != nil {
		return nil, err
	}

	grid, truncated := buildTimeGrid(cfg, idx.minArrival, idx.maxTime)
	if truncated {
		diags = append(diags, Diagnostic{
			Kind:   DiagGridTruncated,
			Detail: fmt.Sprintf("sample grid capped at %v time units before the last departure", cfg.LimitDuration),
		})
	}
	logrus.Debugf("sampling %d instants at interval %v", len(grid), cfg.Interval)

	frames := make([]frameResult, len(grid))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, t := range grid {
		i, t := i, t
		g.Go(func() error {
			fr, err := assembleFrame(t, idx, layout, caps, cfg)
			if err != nil {
				return err
			}
			frames[i] = fr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Grid: grid, Diagnostics: diags}
	for _, fr := range frames {
		res.Frames = append(res.Frames, fr.rows...)
		res.IdleMarkers = append(res.IdleMarkers, fr.idle...)
		res.Diagnostics = append(res.Diagnostics, fr.diags...)
	}

	// Frames were built per instant in grid order, but re-sorting pins the
	// canonical ordering contract regardless of how the work was scheduled.
	sort.SliceStable(res.Frames, func(a, b int) bool {
		ra, rb := res.Frames[a], res.Frames[b]
		if ra.SampleTime != rb.SampleTime {
			return ra.SampleTime < rb.SampleTime
		}
		return ra.EntityID < rb.EntityID
	})
	sort.SliceStable(res.IdleMarkers, func(a, b int) bool {
		ma, mb := res.IdleMarkers[a], res.IdleMarkers[b]
		if ma.SampleTime != mb.SampleTime {
			return ma.SampleTime < mb.SampleTime
		}
		if ma.Event != mb.Event {
			return ma.Event < mb.Event
		}
		return ma.Slot < mb.Slot
	})

	logrus.Infof("transformed %d log rows into %d snapshot rows across %d frames (%d diagnostics)",
		len(log), len(res.Frames), len(grid), len(res.Diagnostics))
	return res, nil
}
