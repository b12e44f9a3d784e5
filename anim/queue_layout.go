package anim

import (
	"fmt"
	"sort"
)

// queuePlacement is one entity's resolved position within a packed group.
type queuePlacement struct {
	rec  EventRecord
	x, y float64
}

// layoutQueue packs a group of entities sharing one anchor at one sample
// instant. The group is ordered by when each entity's active event began
// (earliest first, insertion order breaking ties), then rank k maps to
//
//	row = k / R, col = k % R
//
// under row capacity R, with the column pitch growing leftward from the
// anchor and the row pitch growing upward. Every offset is computed directly
// from k: deriving row positions incrementally from the previous row is what
// caused the historical diagonal drift, so no cross-row adjustment is ever
// carried.
func layoutQueue(group []EventRecord, anchor LayoutEntry, t float64, cfg Config) ([]queuePlacement, []Diagnostic) {
	sort.SliceStable(group, func(a, b int) bool {
		if group[a].Time != group[b].Time {
			return group[a].Time < group[b].Time
		}
		return group[a].seq < group[b].seq
	})

	var diags []Diagnostic
	placements := make([]queuePlacement, 0, len(group))
	overflowed := 0
	for k, rec := range group {
		row, col := queueCell(k, cfg.WrapQueuesAt)
		if cfg.MaxQueueRows > 0 && row >= cfg.MaxQueueRows {
			overflowed++
			switch cfg.Overflow {
			case OverflowClip:
				row, col = cfg.MaxQueueRows-1, cfg.WrapQueuesAt-1
			case OverflowMarker:
				row, col = cfg.MaxQueueRows, 0
			}
		}
		placements = append(placements, queuePlacement{
			rec: rec,
			x:   anchor.X - float64(col)*cfg.GapBetweenEntities,
			y:   anchor.Y + float64(row)*cfg.GapBetweenRows,
		})
	}
	if overflowed > 0 && cfg.Overflow != OverflowGrow {
		diags = append(diags, Diagnostic{
			Kind:       DiagQueueOverflow,
			Event:      anchor.Event,
			SampleTime: t,
			Detail:     fmt.Sprintf("%d entities past the visible region (%s policy)", overflowed, cfg.Overflow),
		})
	}
	return placements, diags
}

// queueCell maps a 0-indexed rank to its row/column under row capacity R.
// R == 0 means no wrapping: one unbounded row.
func queueCell(rank, wrapAt int) (row, col int) {
	if wrapAt <= 0 {
		return 0, rank
	}
	return rank / wrapAt, rank % wrapAt
}
