package anim

import "fmt"

// OverflowPolicy selects what happens to queue ranks that fall past the
// visible packing region (MaxQueueRows full rows).
type OverflowPolicy string

const (
	// OverflowGrow keeps packing rows past the visible region. The queue can
	// walk off the canvas, but nothing is hidden.
	OverflowGrow OverflowPolicy = "grow"
	// OverflowClip pins every overflowing entity to the last visible cell.
	OverflowClip OverflowPolicy = "clip"
	// OverflowMarker collapses overflowing entities onto a single cell one
	// row past the visible region, acting as an "N more waiting" marker.
	OverflowMarker OverflowPolicy = "marker"
)

// Config groups the transform parameters.
type Config struct {
	// Interval is the spacing between sample instants, in log time units.
	// Must be positive.
	Interval float64
	// LimitDuration caps the sampled span measured from the first instant.
	// Zero means the grid runs to the latest departure.
	LimitDuration float64

	// GapBetweenEntities is the column pitch inside a queue.
	GapBetweenEntities float64
	// GapBetweenRows is the row pitch when a queue wraps.
	GapBetweenRows float64
	// GapBetweenResources is the pitch between resource slots.
	GapBetweenResources float64

	// WrapQueuesAt is the queue row capacity R: rank k packs to
	// row k/R, column k%R. Zero disables wrapping (one unbounded row).
	WrapQueuesAt int
	// MaxQueueRows bounds the visible packing region for the overflow
	// policy. Zero means unbounded.
	MaxQueueRows int
	// Overflow selects the queue overflow policy.
	Overflow OverflowPolicy

	// ShowIdleResources emits idle-capacity markers for unoccupied slots.
	ShowIdleResources bool
	// IdleMarkerDrop is how far below the anchor row idle markers sit.
	IdleMarkerDrop float64

	// MaxActiveEntities is the frame-size safety guard: if more entities are
	// simultaneously active at any sampled instant, the transform aborts.
	MaxActiveEntities int

	// SkipUnknownEvents downgrades unresolved layout keys from a fatal error
	// to a per-row diagnostic that drops the row.
	SkipUnknownEvents bool
}

// DefaultConfig returns the transform defaults. Gap and guard values follow
// the conventions of the original pathway animations.
func DefaultConfig() Config {
	return Config{
		Interval:            10,
		GapBetweenEntities:  10,
		GapBetweenRows:      30,
		GapBetweenResources: 10,
		WrapQueuesAt:        0,
		MaxQueueRows:        0,
		Overflow:            OverflowGrow,
		ShowIdleResources:   true,
		IdleMarkerDrop:      10,
		MaxActiveEntities:   1000,
	}
}

// Validate checks the configuration before any processing starts.
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", c.Interval)
	}
	if c.LimitDuration < 0 {
		return fmt.Errorf("limit duration must be non-negative, got %v", c.LimitDuration)
	}
	if c.GapBetweenEntities <= 0 || c.GapBetweenRows <= 0 || c.GapBetweenResources <= 0 {
		return fmt.Errorf("layout gaps must be positive")
	}
	if c.WrapQueuesAt < 0 {
		return fmt.Errorf("wrap-queues-at must be non-negative, got %d", c.WrapQueuesAt)
	}
	if c.MaxQueueRows < 0 {
		return fmt.Errorf("max-queue-rows must be non-negative, got %d", c.MaxQueueRows)
	}
	if c.MaxQueueRows > 0 && c.WrapQueuesAt == 0 {
		return fmt.Errorf("max-queue-rows requires wrap-queues-at")
	}
	switch c.Overflow {
	case OverflowGrow, OverflowClip, OverflowMarker:
	default:
		return fmt.Errorf("unknown overflow policy %q", c.Overflow)
	}
	if c.MaxActiveEntities <= 0 {
		return fmt.Errorf("max-active-entities guard must be positive, got %d", c.MaxActiveEntities)
	}
	return nil
}
