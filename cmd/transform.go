package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flowviz/flowviz/anim"
	"github.com/flowviz/flowviz/anim/render"
)

var (
	// CLI flags for the transform inputs and outputs
	logPath      string // Event log CSV path
	layoutPath   string // Layout config YAML path
	scenarioPath string // Capacity scenario YAML path
	outPath      string // Output path ("-" = stdout)
	idleOutPath  string // Optional idle-marker CSV path (csv format only)
	outFormat    string // Output format: csv, json, plotly

	// CLI flags mapped onto anim.Config
	interval       float64 // Sample interval in log time units
	limitDuration  float64 // Cap on the sampled span (0 = none)
	gapEntities    float64 // Queue column pitch
	gapRows        float64 // Queue row pitch
	gapResources   float64 // Resource slot pitch
	wrapQueuesAt   int     // Queue row capacity (0 = no wrap)
	maxQueueRows   int     // Visible queue rows before overflow policy
	overflowPolicy string  // Queue overflow policy: grow, clip, marker
	idleMarkers    bool    // Emit idle-capacity markers
	idleDrop       float64 // Idle marker drop below the anchor row
	maxActive      int     // Frame-size safety guard
	skipUnknown    bool    // Drop rows with unknown event names instead of failing
)

// transformCmd runs the log-to-snapshot transformation.
var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Transform an event log into per-interval snapshot frames",
	Run: func(cmd *cobra.Command, args []string) {
		res, layout, err := runTransform()
		if err != nil {
			logrus.Fatalf("transform failed: %v", err)
		}
		for _, d := range res.Diagnostics {
			logrus.Warnf("diagnostic: %s", d)
		}
		if err := writeResult(res, layout); err != nil {
			logrus.Fatalf("writing output: %v", err)
		}
	},
}

func init() {
	transformCmd.Flags().StringVar(&logPath, "log", "", "Event log CSV (required)")
	transformCmd.Flags().StringVar(&layoutPath, "layout", "", "Layout config YAML (required)")
	transformCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Capacity scenario YAML")
	transformCmd.Flags().StringVar(&outPath, "out", "-", "Output path, - for stdout")
	transformCmd.Flags().StringVar(&idleOutPath, "idle-out", "", "Idle-marker CSV path (csv format only)")
	transformCmd.Flags().StringVar(&outFormat, "format", "csv", "Output format: csv, json, plotly")

	transformCmd.Flags().Float64Var(&interval, "interval", 10, "Sample interval in log time units")
	transformCmd.Flags().Float64Var(&limitDuration, "limit-duration", 0, "Cap on the sampled span, 0 for none")
	transformCmd.Flags().Float64Var(&gapEntities, "gap-entities", 10, "Distance between queued entities")
	transformCmd.Flags().Float64Var(&gapRows, "gap-rows", 30, "Distance between wrapped queue rows")
	transformCmd.Flags().Float64Var(&gapResources, "gap-resources", 10, "Distance between resource slots")
	transformCmd.Flags().IntVar(&wrapQueuesAt, "wrap-queues-at", 0, "Queue row capacity, 0 for a single row")
	transformCmd.Flags().IntVar(&maxQueueRows, "max-queue-rows", 0, "Visible queue rows before the overflow policy applies")
	transformCmd.Flags().StringVar(&overflowPolicy, "overflow", "grow", "Queue overflow policy: grow, clip, marker")
	transformCmd.Flags().BoolVar(&idleMarkers, "idle-markers", true, "Emit idle-capacity markers for unoccupied resource slots")
	transformCmd.Flags().Float64Var(&idleDrop, "idle-drop", 10, "How far below the anchor idle markers sit")
	transformCmd.Flags().IntVar(&maxActive, "max-active", 1000, "Abort if more entities are active at one instant")
	transformCmd.Flags().BoolVar(&skipUnknown, "skip-unknown-events", false, "Drop rows with unknown event names instead of failing")

	rootCmd.AddCommand(transformCmd)
}

func runTransform() (*anim.Result, *anim.Layout, error) {
	if logPath == "" || layoutPath == "" {
		return nil, nil, fmt.Errorf("--log and --layout are required")
	}
	log, err := readEventLog(logPath)
	if err != nil {
		return nil, nil, err
	}
	layout, err := loadLayout(layoutPath)
	if err != nil {
		return nil, nil, err
	}
	capacities := anim.MapCapacityProvider{}
	if scenarioPath != "" {
		capacities, err = loadScenario(scenarioPath)
		if err != nil {
			return nil, nil, err
		}
	}

	cfg := anim.Config{
		Interval:            interval,
		LimitDuration:       limitDuration,
		GapBetweenEntities:  gapEntities,
		GapBetweenRows:      gapRows,
		GapBetweenResources: gapResources,
		WrapQueuesAt:        wrapQueuesAt,
		MaxQueueRows:        maxQueueRows,
		Overflow:            anim.OverflowPolicy(overflowPolicy),
		ShowIdleResources:   idleMarkers,
		IdleMarkerDrop:      idleDrop,
		MaxActiveEntities:   maxActive,
		SkipUnknownEvents:   skipUnknown,
	}
	res, err := anim.Transform(log, layout, capacities, cfg)
	if err != nil {
		return nil, nil, err
	}
	return res, layout, nil
}

func writeResult(res *anim.Result, layout *anim.Layout) error {
	switch outFormat {
	case "csv":
		if err := writeTo(outPath, func(w io.Writer) error {
			return writeFramesCSV(w, res.Frames)
		}); err != nil {
			return err
		}
		if idleOutPath != "" {
			return writeTo(idleOutPath, func(w io.Writer) error {
				return writeIdleCSV(w, res.IdleMarkers)
			})
		}
		return nil
	case "json":
		return writeTo(outPath, func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		})
	case "plotly":
		fig := render.BuildFigure(res, layout, render.DefaultOptions())
		return writeTo(outPath, fig.WriteJSON)
	}
	return fmt.Errorf("unknown output format %q", outFormat)
}

// writeTo runs fn against the named output, leaving stdout open.
func writeTo(path string, fn func(io.Writer) error) error {
	if path == "-" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
