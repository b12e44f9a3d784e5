package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutQueue_RanksByQueueEntryTime(t *testing.T) {
	// GIVEN entities A, B, C entering a queue at t=0, 1, 2 with row capacity 2
	anchor := LayoutEntry{Event: "wait", X: 205, Y: 275}
	group := []EventRecord{
		{EntityID: "C", Type: EventQueue, Event: "wait", Time: 2, seq: 2},
		{EntityID: "A", Type: EventQueue, Event: "wait", Time: 0, seq: 0},
		{EntityID: "B", Type: EventQueue, Event: "wait", Time: 1, seq: 1},
	}
	cfg := testConfig()
	cfg.WrapQueuesAt = 2

	// WHEN the group is packed
	placements, diags := layoutQueue(group, anchor, 5, cfg)

	// THEN A takes row0/col0, B row0/col1, C row1/col0
	assert.Empty(t, diags)
	if assert.Len(t, placements, 3) {
		assert.Equal(t, "A", placements[0].rec.EntityID)
		assert.Equal(t, 205.0, placements[0].x)
		assert.Equal(t, 275.0, placements[0].y)

		assert.Equal(t, "B", placements[1].rec.EntityID)
		assert.Equal(t, 195.0, placements[1].x)
		assert.Equal(t, 275.0, placements[1].y)

		assert.Equal(t, "C", placements[2].rec.EntityID)
		assert.Equal(t, 205.0, placements[2].x)
		assert.Equal(t, 305.0, placements[2].y)
	}
}

// Regression for the historical diagonal-drift defect: offsets must come
// straight from rank, with no cumulative per-row adjustment, across at least
// three rows.
func TestLayoutQueue_NoDriftAcrossRows(t *testing.T) {
	// GIVEN nine entities in one queue with row capacity 3
	anchor := LayoutEntry{Event: "wait", X: 300, Y: 100}
	var group []EventRecord
	for k := 0; k < 9; k++ {
		group = append(group, EventRecord{
			EntityID: string(rune('a' + k)),
			Type:     EventQueue, Event: "wait",
			Time: float64(k), seq: k,
		})
	}
	cfg := testConfig()
	cfg.WrapQueuesAt = 3

	// WHEN the group is packed
	placements, _ := layoutQueue(group, anchor, 20, cfg)

	// THEN every rank k sits exactly at the row/col the div/mod mapping
	// dictates; column 0 of every row realigns with the anchor
	for k, p := range placements {
		wantX := anchor.X - float64(k%3)*cfg.GapBetweenEntities
		wantY := anchor.Y + float64(k/3)*cfg.GapBetweenRows
		assert.Equalf(t, wantX, p.x, "rank %d x", k)
		assert.Equalf(t, wantY, p.y, "rank %d y", k)
	}
}

func TestLayoutQueue_NoWrapSingleRow(t *testing.T) {
	// GIVEN wrapping disabled (row capacity 0)
	anchor := LayoutEntry{Event: "wait", X: 100, Y: 50}
	group := []EventRecord{
		{EntityID: "A", Type: EventQueue, Event: "wait", Time: 0, seq: 0},
		{EntityID: "B", Type: EventQueue, Event: "wait", Time: 1, seq: 1},
		{EntityID: "C", Type: EventQueue, Event: "wait", Time: 2, seq: 2},
	}

	// WHEN the group is packed
	placements, _ := layoutQueue(group, anchor, 0, testConfig())

	// THEN the queue grows leftward in one row
	for k, p := range placements {
		assert.Equal(t, anchor.X-float64(k)*10, p.x)
		assert.Equal(t, anchor.Y, p.y)
	}
}

func TestLayoutQueue_OverflowPolicies(t *testing.T) {
	anchor := LayoutEntry{Event: "wait", X: 100, Y: 100}
	// GIVEN five entities against a 2x2 visible region (ranks 4+ overflow)
	var group []EventRecord
	for k := 0; k < 5; k++ {
		group = append(group, EventRecord{
			EntityID: string(rune('a' + k)),
			Type:     EventQueue, Event: "wait",
			Time: float64(k), seq: k,
		})
	}

	tests := []struct {
		name   string
		policy OverflowPolicy
		wantX  float64
		wantY  float64
		diags  int
	}{
		// grow keeps the direct rank mapping: rank 4 = row2/col0
		{"grow keeps packing", OverflowGrow, 100, 160, 0},
		// clip pins to the last visible cell: row1/col1
		{"clip pins to last cell", OverflowClip, 90, 130, 1},
		// marker collapses one row past the region: row2/col0
		{"marker collapses past region", OverflowMarker, 100, 160, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.WrapQueuesAt = 2
			cfg.MaxQueueRows = 2
			cfg.Overflow = tc.policy

			// WHEN the group is packed
			placements, diags := layoutQueue(group, anchor, 0, cfg)

			// THEN the overflowing rank lands per policy, never silently dropped
			assert.Len(t, placements, 5)
			assert.Equal(t, tc.wantX, placements[4].x)
			assert.Equal(t, tc.wantY, placements[4].y)
			assert.Len(t, diags, tc.diags)
			if tc.diags > 0 {
				assert.Equal(t, DiagQueueOverflow, diags[0].Kind)
			}
		})
	}
}

func TestQueueCell_DivModMapping(t *testing.T) {
	tests := []struct {
		rank, wrapAt  int
		wantRow, wantCol int
	}{
		{0, 2, 0, 0},
		{1, 2, 0, 1},
		{2, 2, 1, 0},
		{7, 3, 2, 1},
		{5, 0, 0, 5}, // no wrapping
	}
	for _, tc := range tests {
		row, col := queueCell(tc.rank, tc.wrapAt)
		if row != tc.wantRow || col != tc.wantCol {
			t.Errorf("queueCell(%d, %d) = (%d, %d), want (%d, %d)",
				tc.rank, tc.wrapAt, row, col, tc.wantRow, tc.wantCol)
		}
	}
}
