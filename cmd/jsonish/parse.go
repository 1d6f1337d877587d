package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/jsonish"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [FILE|-]",
		Short: "Print the value tree the parser reads from an input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			texts, err := readInputs(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			v, err := jsonish.Parse(texts[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.String())
			return nil
		},
	}
}
