package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFieldCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "field",
		Short: "Print a scenario's flow field as 8-way arrows",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := a.planner(file)
			if err != nil {
				return err
			}
			field, err := p.GenerateFlowField()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderMap(p, field, nil))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "scenario", "s", "", "scenario file")
	_ = cmd.MarkFlagRequired("scenario")
	return cmd
}
