package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/lixenwraith/flowpath/config"
	"github.com/lixenwraith/flowpath/navigation"
	"github.com/lixenwraith/flowpath/observability"
	"github.com/lixenwraith/flowpath/scenario"
)

// app carries state resolved once by the root command for its subcommands
type app struct {
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "flowpath",
		Short:         "Flow-field biased grid pathfinding with curve smoothing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(viper.New(), a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			logCfg := cfg.Logger
			// The sandbox owns the terminal, so it only logs to file
			if cmd.Annotations["log"] == logFileOnly {
				logCfg.Console = false
			}
			a.log = observability.NewLogger(logCfg)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default ./flowpath.yaml)")

	root.AddCommand(
		newSolveCmd(a),
		newFieldCmd(a),
		newGenerateCmd(a),
		newSandboxCmd(a),
	)
	return root
}

// planner loads a scenario and builds a planner tuned by the active config
func (a *app) planner(path string) (*scenario.Scenario, *navigation.Planner, error) {
	s, err := scenario.Load(path)
	if err != nil {
		return nil, nil, err
	}
	opts := append(a.cfg.PlannerOptions(), navigation.WithLogger(a.log))
	p, err := s.NewPlanner(opts...)
	if err != nil {
		return nil, nil, err
	}
	return s, p, nil
}
