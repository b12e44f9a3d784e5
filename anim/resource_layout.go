package anim

import (
	"fmt"
	"sort"
)

// resourcePlacement is one entity's resolved resource-slot position.
type resourcePlacement struct {
	rec  EventRecord
	slot int
	x, y float64
}

// IdleMarker marks one unoccupied resource slot at one sample instant, so a
// renderer can show spare capacity.
type IdleMarker struct {
	SampleTime float64 `json:"sample_time"`
	Event      string  `json:"event"`
	Slot       int     `json:"slot"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}

// layoutResources assigns each occupying entity the slot determined solely
// by its resource id: slot = id − 1 for the 1-based ids resource pools mint.
// Slot offsets depend only on the slot index, never on arrival order, so an
// entity keeps the same screen position for its whole unbroken occupancy.
//
// Ids outside [1, capacity] and slot collisions are data/config mismatches:
// the affected entity is diagnosed and omitted from the frame rather than
// aborting the run.
func layoutResources(group []EventRecord, anchor LayoutEntry, capacity int, t float64, cfg Config) ([]resourcePlacement, []IdleMarker, []Diagnostic) {
	// Insertion order keeps collision diagnostics deterministic.
	sort.SliceStable(group, func(a, b int) bool { return group[a].seq < group[b].seq })

	var diags []Diagnostic
	occupied := make(map[int]string, len(group))
	placements := make([]resourcePlacement, 0, len(group))
	for _, rec := range group {
		slot := rec.ResourceID - 1
		if slot < 0 || slot >= capacity {
			diags = append(diags, Diagnostic{
				Kind:       DiagResourceOverflow,
				EntityID:   rec.EntityID,
				Event:      anchor.Event,
				SampleTime: t,
				Detail: fmt.Sprintf("resource_id %d outside capacity %d (%s); entity omitted",
					rec.ResourceID, capacity, anchor.Resource),
			})
			continue
		}
		if holder, taken := occupied[slot]; taken {
			diags = append(diags, Diagnostic{
				Kind:       DiagDuplicateResource,
				EntityID:   rec.EntityID,
				Event:      anchor.Event,
				SampleTime: t,
				Detail:     fmt.Sprintf("slot %d already held by entity %q; entity omitted", slot, holder),
			})
			continue
		}
		occupied[slot] = rec.EntityID
		x, y := resourceSlotOffset(anchor, slot, cfg)
		placements = append(placements, resourcePlacement{rec: rec, slot: slot, x: x, y: y})
	}

	var idle []IdleMarker
	if cfg.ShowIdleResources {
		for slot := 0; slot < capacity; slot++ {
			if _, taken := occupied[slot]; taken {
				continue
			}
			x, y := resourceSlotOffset(anchor, slot, cfg)
			idle = append(idle, IdleMarker{
				SampleTime: t,
				Event:      anchor.Event,
				Slot:       slot,
				X:          x,
				Y:          y - cfg.IdleMarkerDrop,
			})
		}
	}
	return placements, idle, diags
}

// resourceSlotOffset is the fixed offset of a slot from its anchor,
// proportional to the slot index and nothing else.
func resourceSlotOffset(anchor LayoutEntry, slot int, cfg Config) (x, y float64) {
	return anchor.X - float64(slot+1)*cfg.GapBetweenResources, anchor.Y
}
