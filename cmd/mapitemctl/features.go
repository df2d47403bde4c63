package main

import (
	"github.com/diwise/map-items/pkg/mapitems"
	"github.com/diwise/map-items/pkg/model"
	"github.com/spf13/cobra"
)

func newFeaturesCmd(opts *cliOptions) *cobra.Command {
	var itemType string

	cmd := &cobra.Command{
		Use:   "features [file|-]",
		Short: "Export a list of map item payloads as GeoJSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			payloads, err := model.PayloadsFromJSON(body)
			if err != nil {
				return err
			}

			list, err := mapitems.NewList(payloads, mapitems.WithRegistry(opts.registry))
			if err != nil {
				return err
			}

			items := list.Items()
			if itemType != "" {
				items, err = list.ByType(itemType)
				if err != nil {
					return err
				}
			}

			fc, err := mapitems.FeatureCollection(items)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), fc)
		},
	}

	cmd.Flags().StringVar(&itemType, "type", "", "only export items of this type (name or code)")

	return cmd
}
