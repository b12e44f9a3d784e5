package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/flowviz/flowviz/anim"
)

// eventLogColumns are the required event-log columns; pathway and
// resource_id are optional.
var eventLogColumns = []string{"entity_id", "event_type", "event", "time"}

// readEventLog loads a tabular event log from CSV. Column order is free;
// columns are resolved by header name.
func readEventLog(path string) ([]anim.EventRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read event log header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range eventLogColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("event log missing required column %q", name)
		}
	}
	pathwayIdx, hasPathway := col["pathway"]
	resourceIdx, hasResource := col["resource_id"]

	var log []anim.EventRecord
	for row := 2; ; row++ {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read event log row %d: %w", row, err)
		}
		t, err := strconv.ParseFloat(fields[col["time"]], 64)
		if err != nil {
			return nil, fmt.Errorf("event log row %d: invalid time: %w", row, err)
		}
		rec := anim.EventRecord{
			EntityID: fields[col["entity_id"]],
			Type:     anim.EventType(fields[col["event_type"]]),
			Event:    fields[col["event"]],
			Time:     t,
		}
		if hasPathway {
			rec.Pathway = fields[pathwayIdx]
		}
		if hasResource && fields[resourceIdx] != "" {
			id, err := strconv.Atoi(fields[resourceIdx])
			if err != nil {
				return nil, fmt.Errorf("event log row %d: invalid resource_id: %w", row, err)
			}
			rec.ResourceID = id
			rec.HasResource = true
		}
		log = append(log, rec)
	}
	return log, nil
}

// writeEventLog writes a demo-generated event log in the same CSV shape
// readEventLog accepts.
func writeEventLog(w io.Writer, log []anim.EventRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"entity_id", "pathway", "event_type", "event", "time", "resource_id"}); err != nil {
		return err
	}
	for _, rec := range log {
		resource := ""
		if rec.HasResource {
			resource = strconv.Itoa(rec.ResourceID)
		}
		err := cw.Write([]string{
			rec.EntityID,
			rec.Pathway,
			string(rec.Type),
			rec.Event,
			formatFloat(rec.Time),
			resource,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// loadLayout reads a YAML list of layout entries.
func loadLayout(path string) (*anim.Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout config: %w", err)
	}
	var entries []anim.LayoutEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse layout config: %w", err)
	}
	layout, err := anim.NewLayout(entries)
	if err != nil {
		return nil, fmt.Errorf("invalid layout config: %w", err)
	}
	return layout, nil
}

// loadScenario reads a YAML mapping of capacity attribute names to counts.
func loadScenario(path string) (anim.MapCapacityProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario config: %w", err)
	}
	caps := make(map[string]int)
	if err := yaml.Unmarshal(data, &caps); err != nil {
		return nil, fmt.Errorf("parse scenario config: %w", err)
	}
	return anim.MapCapacityProvider(caps), nil
}

// writeFramesCSV writes the snapshot table.
func writeFramesCSV(w io.Writer, frames []anim.SnapshotRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"entity_id", "sample_time", "x", "y", "event", "label", "pathway", "icon"}); err != nil {
		return err
	}
	for _, row := range frames {
		err := cw.Write([]string{
			row.EntityID,
			formatFloat(row.SampleTime),
			formatFloat(row.X),
			formatFloat(row.Y),
			row.Event,
			row.Label,
			row.Pathway,
			row.Icon,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeIdleCSV writes the idle-capacity marker table.
func writeIdleCSV(w io.Writer, markers []anim.IdleMarker) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"sample_time", "event", "slot", "x", "y"}); err != nil {
		return err
	}
	for _, m := range markers {
		err := cw.Write([]string{
			formatFloat(m.SampleTime),
			m.Event,
			strconv.Itoa(m.Slot),
			formatFloat(m.X),
			formatFloat(m.Y),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
