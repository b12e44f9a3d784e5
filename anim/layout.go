package anim

import "fmt"

// LayoutEntry anchors one named process step on the 2D canvas.
// The anchor is the packing origin for any group of entities at that step:
// queues grow leftward from it and wrap upward, resource slots sit at fixed
// offsets to its left.
type LayoutEntry struct {
	Event string  `yaml:"event"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Label string  `yaml:"label"`
	// Resource, when set, names a capacity attribute resolved through the
	// CapacityProvider. It marks this step as a resource-use anchor.
	Resource string `yaml:"resource,omitempty"`
}

// Layout is the full set of anchors for one model, keyed by event name.
type Layout struct {
	entries map[string]LayoutEntry
	order   []string
}

// NewLayout builds a Layout from entries. Event names must be unique and the
// reserved arrival entry point must be present.
func NewLayout(entries []LayoutEntry) (*Layout, error) {
	l := &Layout{entries: make(map[string]LayoutEntry, len(entries))}
	for _, e := range entries {
		if e.Event == "" {
			return nil, fmt.Errorf("layout entry with empty event name")
		}
		if _, dup := l.entries[e.Event]; dup {
			return nil, fmt.Errorf("duplicate layout entry %q", e.Event)
		}
		l.entries[e.Event] = e
		l.order = append(l.order, e.Event)
	}
	if _, ok := l.entries[NameArrival]; !ok {
		return nil, fmt.Errorf("layout has no %q entry point", NameArrival)
	}
	return l, nil
}

// Get returns the anchor for an event name.
func (l *Layout) Get(event string) (LayoutEntry, bool) {
	e, ok := l.entries[event]
	return e, ok
}

// Entries returns the anchors in their declaration order.
func (l *Layout) Entries() []LayoutEntry {
	out := make([]LayoutEntry, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, l.entries[name])
	}
	return out
}

// Bounds returns the maximum anchor coordinates, used by renderers to size
// the canvas.
func (l *Layout) Bounds() (maxX, maxY float64) {
	for _, e := range l.entries {
		if e.X > maxX {
			maxX = e.X
		}
		if e.Y > maxY {
			maxY = e.Y
		}
	}
	return maxX, maxY
}

// ResolveCapacities checks every resource-typed anchor against the provider
// and returns the resolved capacities keyed by event name.
func (l *Layout) ResolveCapacities(provider CapacityProvider) (map[string]int, error) {
	caps := make(map[string]int)
	for _, name := range l.order {
		e := l.entries[name]
		if e.Resource == "" {
			continue
		}
		n, ok := provider.Capacity(e.Resource)
		if !ok {
			return nil, fmt.Errorf("layout entry %q: capacity provider has no attribute %q", e.Event, e.Resource)
		}
		if n <= 0 {
			return nil, fmt.Errorf("layout entry %q: capacity %q must be positive, got %d", e.Event, e.Resource, n)
		}
		caps[e.Event] = n
	}
	return caps, nil
}

// CapacityProvider resolves named integer capacities, e.g. how many units of
// resource "n_nurses" exist. Simulation scenario objects implement this at
// the boundary; MapCapacityProvider covers the plain-mapping case.
type CapacityProvider interface {
	Capacity(name string) (int, bool)
}

// MapCapacityProvider is a CapacityProvider backed by a map.
type MapCapacityProvider map[string]int

// Capacity implements CapacityProvider.
func (m MapCapacityProvider) Capacity(name string) (int, bool) {
	n, ok := m[name]
	return n, ok
}
