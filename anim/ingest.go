package anim

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// entityTimeline holds one entity's events sorted by (time, insertion order),
// with its membership window resolved.
type entityTimeline struct {
	id        string
	pathway   string
	events    []EventRecord
	arrival   float64
	depart    float64
	hasDepart bool
}

// logIndex is the validated, per-entity view of an event log. It is derived
// once per invocation and never mutated afterwards.
type logIndex struct {
	entities   []*entityTimeline // sorted by entity id
	minArrival float64
	maxTime    float64 // latest departure, or latest event time if absent
}

// buildIndex validates the event log against the schema, lifecycle, and
// layout-key invariants, then groups it into per-entity timelines.
//
// Fatal conditions (SchemaError, UnresolvedLayoutKeyError) stop processing;
// recoverable findings come back as diagnostics next to the index.
func buildIndex(log []EventRecord, layout *Layout, cfg Config) (*logIndex, []Diagnostic, error) {
	var diags []Diagnostic
	byEntity := make(map[string]*entityTimeline)
	var order []string

	for i, rec := range log {
		if rec.EntityID == "" {
			return nil, nil, &SchemaError{Row: i, Msg: "missing entity_id"}
		}
		if rec.Event == "" {
			return nil, nil, &SchemaError{Row: i, Msg: "missing event name"}
		}
		if _, err := ParseEventType(string(rec.Type)); err != nil {
			return nil, nil, &SchemaError{Row: i, Msg: err.Error()}
		}
		switch rec.Type {
		case EventArrivalDeparture:
			if rec.Event != NameArrival && rec.Event != NameDepart {
				return nil, nil, &SchemaError{Row: i, Msg: fmt.Sprintf(
					"arrival_departure event must be %q or %q, got %q", NameArrival, NameDepart, rec.Event)}
			}
		case EventResourceUse, EventResourceUseEnd:
			if !rec.HasResource {
				return nil, nil, &SchemaError{Row: i, Msg: fmt.Sprintf(
					"%s event %q missing resource_id", rec.Type, rec.Event)}
			}
		}

		// Every non-reserved event name must anchor somewhere, and
		// resource_use anchors must declare a capacity attribute.
		if !rec.IsDepart() {
			entry, ok := layout.Get(anchorName(rec))
			if ok && rec.Type == EventResourceUse && entry.Resource == "" {
				ok = false
			}
			if !ok {
				if !cfg.SkipUnknownEvents {
					return nil, nil, &UnresolvedLayoutKeyError{Event: rec.Event, Row: i}
				}
				diags = append(diags, Diagnostic{
					Kind:     DiagUnknownEvent,
					EntityID: rec.EntityID,
					Event:    rec.Event,
					Detail:   fmt.Sprintf("row %d dropped", i),
				})
				continue
			}
		}

		rec.seq = i
		tl, ok := byEntity[rec.EntityID]
		if !ok {
			tl = &entityTimeline{id: rec.EntityID, pathway: rec.Pathway}
			byEntity[rec.EntityID] = tl
			order = append(order, rec.EntityID)
		}
		tl.events = append(tl.events, rec)
	}

	idx := &logIndex{}
	sort.Strings(order)
	first := true
	for _, id := range order {
		tl := byEntity[id]
		if err := resolveLifecycle(tl); err != nil {
			return nil, nil, err
		}
		sort.SliceStable(tl.events, func(a, b int) bool {
			ea, eb := tl.events[a], tl.events[b]
			if ea.Time != eb.Time {
				return ea.Time < eb.Time
			}
			return ea.seq < eb.seq
		})
		if !tl.hasDepart {
			diags = append(diags, Diagnostic{
				Kind:     DiagMissingDeparture,
				EntityID: tl.id,
				Detail:   "entity never departs; active through the end of the grid",
			})
		}

		last := tl.events[len(tl.events)-1].Time
		if tl.hasDepart && tl.depart > last {
			last = tl.depart
		}
		if first || tl.arrival < idx.minArrival {
			idx.minArrival = tl.arrival
		}
		if first || last > idx.maxTime {
			idx.maxTime = last
		}
		first = false
		idx.entities = append(idx.entities, tl)
	}
	if len(idx.entities) == 0 {
		return nil, nil, &SchemaError{Row: -1, Msg: "event log contains no entities"}
	}

	logrus.Debugf("indexed %d entities over [%v, %v], %d diagnostics",
		len(idx.entities), idx.minArrival, idx.maxTime, len(diags))
	return idx, diags, nil
}

// resolveLifecycle enforces exactly one arrival and at most one departure,
// with departure no earlier than arrival.
func resolveLifecycle(tl *entityTimeline) error {
	arrivals, departs := 0, 0
	for _, rec := range tl.events {
		switch {
		case rec.IsArrival():
			arrivals++
			tl.arrival = rec.Time
		case rec.IsDepart():
			departs++
			tl.depart = rec.Time
			tl.hasDepart = true
		}
	}
	if arrivals != 1 {
		return &SchemaError{Row: -1, Msg: fmt.Sprintf(
			"entity %q has %d arrival events, want exactly 1", tl.id, arrivals)}
	}
	if departs > 1 {
		return &SchemaError{Row: -1, Msg: fmt.Sprintf(
			"entity %q has %d depart events, want at most 1", tl.id, departs)}
	}
	if tl.hasDepart && tl.depart < tl.arrival {
		return &SchemaError{Row: -1, Msg: fmt.Sprintf(
			"entity %q departs at %v before arriving at %v", tl.id, tl.depart, tl.arrival)}
	}
	return nil
}

// anchorName maps a record to the layout entry it renders at. The arrival
// marker anchors at the configured entry point; everything else anchors at
// its own event name.
func anchorName(rec EventRecord) string {
	if rec.IsArrival() {
		return NameArrival
	}
	return rec.Event
}
