package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/flowpath/maze"
	"github.com/lixenwraith/flowpath/scenario"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		cfg      maze.Config
		strength float64
		name     string
		out      string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a maze-seeded scenario file",
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := maze.Generate(cfg)
			if err != nil {
				return err
			}
			s := scenario.FromLayout(name, layout, strength)
			a.log.Info("scenario generated",
				zap.Int("width", layout.Width),
				zap.Int("height", layout.Height),
				zap.Int("walls", len(layout.Walls)),
				zap.Int("reference_length", len(layout.Reference)))

			if out != "" {
				return s.Save(out)
			}
			data, err := yaml.Marshal(s)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	f := cmd.Flags()
	f.IntVar(&cfg.Width, "width", 21, "grid width")
	f.IntVar(&cfg.Height, "height", 15, "grid height")
	f.Float64Var(&cfg.Braid, "braid", 0.2, "dead-end braiding probability [0,1]")
	f.Float64Var(&cfg.Density, "density", 0, "fraction of walls kept (0 keeps all)")
	f.Int64Var(&cfg.Seed, "seed", 0, "random seed (0 = time based)")
	f.Float64Var(&strength, "wall-strength", 1, "repulsion strength of each wall source")
	f.StringVar(&name, "name", "maze", "scenario name")
	f.StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}
