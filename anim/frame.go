package anim

import (
	"sort"

	"github.com/cespare/xxhash/v2"
)

// SnapshotRow is one entity's resolved position at one sample instant — one
// row of the final long-format table handed to the renderer. Event and
// Pathway are informational pass-through for hover/tooltip use.
type SnapshotRow struct {
	EntityID   string  `json:"entity_id"`
	SampleTime float64 `json:"sample_time"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Event      string  `json:"event"`
	Label      string  `json:"label"`
	Pathway    string  `json:"pathway,omitempty"`
	Icon       string  `json:"icon"`
}

// iconPalette is the fixed set of person glyphs entities render as. The
// palette is finite on purpose: icons repeat across entities, but one entity
// always keeps one icon.
var iconPalette = []string{
	"🧔", "🧑", "👩", "👨", "👧", "👦", "👵", "👴", "👶", "🤰",
	"👱", "👲", "👳", "🧕", "👮", "👷", "💂", "🕵", "🧓", "🙍",
	"🙎", "🙋", "🤦", "🤷", "💁",
}

// IconFor assigns an entity its render icon: a deterministic hash of the
// entity id into the fixed palette, so the same entity carries the same icon
// across every frame of a run and across runs.
func IconFor(entityID string) string {
	return iconPalette[xxhash.Sum64String(entityID)%uint64(len(iconPalette))]
}

// frameResult is the assembled state of one sample instant.
type frameResult struct {
	rows  []SnapshotRow
	idle  []IdleMarker
	diags []Diagnostic
}

// assembleFrame resolves every active entity at instant t, routes each group
// through the layout engine its active event type selects, and enforces the
// frame-size safety guard.
func assembleFrame(t float64, idx *logIndex, layout *Layout, caps map[string]int, cfg Config) (frameResult, error) {
	type group struct {
		anchor   LayoutEntry
		resource bool
		recs     []EventRecord
	}
	groups := make(map[string]*group)
	var names []string
	pathways := make(map[string]string)

	active := 0
	for _, tl := range idx.entities {
		rec, ok := activeEventAt(tl, t)
		if !ok {
			continue
		}
		active++
		name := anchorName(rec)
		g, seen := groups[name]
		if !seen {
			anchor, _ := layout.Get(name) // presence checked at ingestion
			g = &group{anchor: anchor, resource: rec.Type == EventResourceUse}
			groups[name] = g
			names = append(names, name)
		}
		g.recs = append(g.recs, rec)
		pathways[rec.EntityID] = tl.pathway
	}
	if active > cfg.MaxActiveEntities {
		return frameResult{}, &CapacityExceededError{SampleTime: t, Active: active, Limit: cfg.MaxActiveEntities}
	}

	var fr frameResult
	sort.Strings(names)
	laidOut := make(map[string]bool, len(caps))
	for _, name := range names {
		g := groups[name]
		if g.resource {
			placements, idle, diags := layoutResources(g.recs, g.anchor, caps[name], t, cfg)
			for _, p := range placements {
				fr.rows = append(fr.rows, snapshotRow(p.rec, g.anchor, t, p.x, p.y, pathways))
			}
			fr.idle = append(fr.idle, idle...)
			fr.diags = append(fr.diags, diags...)
			laidOut[name] = true
			continue
		}
		// Queues, entities still at the entry point, and finished resource
		// users all pack at their anchor so co-located entities never overlap.
		placements, diags := layoutQueue(g.recs, g.anchor, t, cfg)
		for _, p := range placements {
			fr.rows = append(fr.rows, snapshotRow(p.rec, g.anchor, t, p.x, p.y, pathways))
		}
		fr.diags = append(fr.diags, diags...)
	}

	// Resource anchors with nobody in treatment still show their full spare
	// capacity.
	if cfg.ShowIdleResources {
		resourceNames := make([]string, 0, len(caps))
		for name := range caps {
			if !laidOut[name] {
				resourceNames = append(resourceNames, name)
			}
		}
		sort.Strings(resourceNames)
		for _, name := range resourceNames {
			anchor, _ := layout.Get(name)
			_, idle, _ := layoutResources(nil, anchor, caps[name], t, cfg)
			fr.idle = append(fr.idle, idle...)
		}
	}

	sort.Slice(fr.rows, func(a, b int) bool { return fr.rows[a].EntityID < fr.rows[b].EntityID })
	return fr, nil
}

func snapshotRow(rec EventRecord, anchor LayoutEntry, t, x, y float64, pathways map[string]string) SnapshotRow {
	return SnapshotRow{
		EntityID:   rec.EntityID,
		SampleTime: t,
		X:          x,
		Y:          y,
		Event:      rec.Event,
		Label:      anchor.Label,
		Pathway:    pathways[rec.EntityID],
		Icon:       IconFor(rec.EntityID),
	}
}
