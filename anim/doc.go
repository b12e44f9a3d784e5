// Package anim turns a finished discrete-event simulation log into a dense
// sequence of per-interval spatial snapshots, ready for an external 2D
// animated scatter renderer.
//
// # Reading Guide
//
// Start with these three files to understand the transformation:
//   - event.go: the event-record variant types that make up an event log
//   - state.go: point-in-time reconstruction (last event at or before t)
//   - transform.go: the batch pipeline from log to snapshot table
//
// # Architecture
//
// The transform is a pure batch function over immutable input: it holds no
// state between invocations and performs no I/O. Layout refinement is split
// by the active event's type:
//   - queue_layout.go: deterministic row/column packing at a shared anchor
//   - resource_layout.go: stable per-resource-unit slot assignment
//
// Sub-packages:
//   - anim/render: plotly figure document built from a transform Result
//   - anim/demo: a self-contained clinic model that emits a valid event log
//
// Recoverable data-quality findings accumulate as Diagnostics on the Result;
// only schema violations, unresolved layout keys, and the frame-size safety
// guard abort a run.
package anim
