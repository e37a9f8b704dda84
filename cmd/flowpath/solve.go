package main

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/flowpath/motion"
	"github.com/lixenwraith/flowpath/navigation"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type solveReport struct {
	Scenario   string          `json:"scenario"`
	Status     string          `json:"status"`
	SearchID   string          `json:"search_id"`
	Expansions int             `json:"expansions"`
	Cost       float64         `json:"cost,omitempty"`
	Path       [][2]int        `json:"path,omitempty"`
	Segments   []segmentReport `json:"segments,omitempty"`
}

type segmentReport struct {
	Kind    string      `json:"kind"`
	Start   [2]float64  `json:"start"`
	Control *[2]float64 `json:"control,omitempty"`
	End     [2]float64  `json:"end"`
}

func newSolveCmd(a *app) *cobra.Command {
	var (
		file   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Plan a path for a scenario and print the map and smoothed segments",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, p, err := a.planner(file)
			if err != nil {
				return err
			}
			res, segs, err := p.Plan(cmd.Context())
			if err != nil && res.Status != navigation.StatusNoPath {
				return err
			}

			report := newSolveReport(s.Name, res, segs)
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, report)
			}

			field, err := p.GenerateFlowField()
			if err != nil {
				return err
			}
			fmt.Fprint(out, renderMap(p, field, res.Path))
			if res.Status == navigation.StatusNoPath {
				fmt.Fprintf(out, "no path (%d expansions)\n", res.Expansions)
				return nil
			}
			fmt.Fprintf(out, "path: %d cells, cost %.3f, %d expansions\n", len(res.Path), res.Cost, res.Expansions)
			for i, seg := range report.Segments {
				fmt.Fprintf(out, "%3d %-17s (%.2f,%.2f) -> (%.2f,%.2f)\n", i, seg.Kind, seg.Start[0], seg.Start[1], seg.End[0], seg.End[1])
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "scenario", "s", "", "scenario file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("scenario")
	return cmd
}

func newSolveReport(name string, res navigation.Result, segs []motion.Segment) solveReport {
	r := solveReport{
		Scenario:   name,
		Status:     res.Status.String(),
		SearchID:   res.ID,
		Expansions: res.Expansions,
		Cost:       res.Cost,
	}
	for _, c := range res.Path {
		r.Path = append(r.Path, [2]int{c.X, c.Y})
	}
	for _, seg := range segs {
		sr := segmentReport{
			Kind:  seg.Kind.String(),
			Start: [2]float64{seg.Start.X, seg.Start.Y},
			End:   [2]float64{seg.End.X, seg.End.Y},
		}
		if seg.HasControl {
			sr.Control = &[2]float64{seg.Control.X, seg.Control.Y}
		}
		r.Segments = append(r.Segments, sr)
	}
	return r
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
