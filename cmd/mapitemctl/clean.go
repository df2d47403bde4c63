package main

import (
	"fmt"

	"github.com/diwise/map-items/pkg/mapitems"
	"github.com/spf13/cobra"
)

func newCleanCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clean <marker|polyline>",
		Short: "Show the form fields of a new, empty map item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, ok := opts.registry.Variant(args[0])
			if !ok {
				return mapitems.NewUnknownVariantError(args[0])
			}

			mi, err := mapitems.Clean(v, mapitems.WithRegistry(opts.registry))
			if err != nil {
				return fmt.Errorf("creating clean %s: %w", v.Name, err)
			}

			fields, err := mi.APIResource()
			if err != nil {
				return err
			}

			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), fields)
			}

			printFieldsTable(cmd.OutOrStdout(), fields)
			return nil
		},
	}
}
