package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/reoring/jsonish"
	"github.com/reoring/jsonish/i18n"
	"github.com/reoring/jsonish/schema"
)

type coerceOptions struct {
	schemaPath string
	target     string
	partials   bool
	flags      bool
	lang       string
	workers    int
	maxDepth   int
}

func newCoerceCmd() *cobra.Command {
	o := &coerceOptions{}
	cmd := &cobra.Command{
		Use:   "coerce --schema FILE [--target TYPE] [FILE|-]...",
		Short: "Coerce each input onto a schema type",
		Long: `Parses every input and coerces it onto the target type. The target is a
type expression over the schema (for example "Person[]" or "Color | null");
without --target the first class, else the first enum, is used.

Each input prints one JSON line, or the error tree when coercion fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv()
			if err != nil {
				return err
			}
			fl := cmd.Flags()
			if !fl.Changed("partials") {
				o.partials = env.AllowPartials
			}
			if !fl.Changed("lang") {
				o.lang = env.Lang
			}
			if !fl.Changed("workers") {
				o.workers = env.Workers
			}
			if !fl.Changed("max-depth") {
				o.maxDepth = env.MaxDepth
			}
			return runCoerce(cmd, o, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.schemaPath, "schema", "", "YAML schema file")
	f.StringVar(&o.target, "target", "", "target type expression")
	f.BoolVar(&o.partials, "partials", false, "accept truncated input")
	f.BoolVar(&o.flags, "flags", false, "print the conversion flags of each result")
	f.StringVar(&o.lang, "lang", "en", "message language (en, ja)")
	f.IntVar(&o.workers, "workers", 0, "parallel coercions (0 means one per CPU)")
	f.IntVar(&o.maxDepth, "max-depth", jsonish.DefaultMaxDepth, "recursion limit")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func runCoerce(cmd *cobra.Command, o *coerceOptions, args []string) error {
	reg, err := schema.LoadFile(o.schemaPath)
	if err != nil {
		return err
	}
	target, err := resolveTarget(reg, o.target)
	if err != nil {
		return err
	}
	texts, err := readInputs(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	i18n.SetLanguage(o.lang)

	opts := jsonish.Options{AllowPartials: o.partials, MaxDepth: o.maxDepth, Logger: logger}
	results, err := jsonish.CoerceAll(cmd.Context(), reg, target, texts, opts, o.workers)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintln(out, r.Err)
			continue
		}
		b, err := r.Value.MarshalJSON()
		if err != nil {
			return fmt.Errorf("render result: %w", err)
		}
		fmt.Fprintln(out, string(b))
		if o.flags {
			printFlags(out, r.Value, target)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(results))
	}
	return nil
}

func resolveTarget(reg *schema.Registry, expr string) (*schema.FieldType, error) {
	if expr == "" {
		return reg.DefaultTarget()
	}
	t, err := schema.ParseType(expr, reg.Lookup)
	if err != nil {
		return nil, fmt.Errorf("target %q: %w", expr, err)
	}
	return t, nil
}

func printFlags(w io.Writer, v *jsonish.ValueWithFlags, target *schema.FieldType) {
	root := ""
	switch target.Kind {
	case schema.KindClass, schema.KindEnum, schema.KindAlias:
		root = target.Name
	}
	v.Walk(jsonish.RootScope(root), func(s jsonish.Scope, n *jsonish.ValueWithFlags) {
		for _, f := range n.Flags {
			fmt.Fprintf(w, "  %s: %s\n", s, f)
		}
	})
}
