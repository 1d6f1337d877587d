package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/jsonish/jsonschema"
	"github.com/reoring/jsonish/schema"
)

func newSchemaCmd() *cobra.Command {
	var schemaPath, target string
	cmd := &cobra.Command{
		Use:   "schema --schema FILE [--target TYPE]",
		Short: "Print the JSON Schema of coerced results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := schema.LoadFile(schemaPath)
			if err != nil {
				return err
			}
			t, err := resolveTarget(reg, target)
			if err != nil {
				return err
			}
			s, err := jsonschema.Export(reg, t)
			if err != nil {
				return err
			}
			b, err := jsonschema.MarshalIndent(s)
			if err != nil {
				return fmt.Errorf("render schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", "", "YAML schema file")
	cmd.Flags().StringVar(&target, "target", "", "target type expression")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}
