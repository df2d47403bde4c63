package main

import (
	"fmt"

	"github.com/diwise/map-items/pkg/mapitems"
	"github.com/diwise/map-items/pkg/model"
	"github.com/spf13/cobra"
)

func newFieldsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fields [file|-]",
		Short: "Show the form fields of a map item payload",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			payload, err := model.PayloadFromJSON(body)
			if err != nil {
				return err
			}

			mi, err := mapitems.New(payload, mapitems.WithRegistry(opts.registry))
			if err != nil {
				return fmt.Errorf("converting map item: %w", err)
			}

			fields, err := mi.APIResource()
			if err != nil {
				return fmt.Errorf("converting map item: %w", err)
			}

			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), fields)
			}

			printFieldsTable(cmd.OutOrStdout(), fields)
			return nil
		},
	}
}
