package main

import (
	"fmt"
	"os"

	"github.com/diwise/map-items/internal/pkg/application/catalog"
	"github.com/diwise/map-items/pkg/mapitems"
	"github.com/spf13/cobra"
)

type cliOptions struct {
	catalogPath string
	jsonOutput  bool

	registry *mapitems.Registry
}

func defaultCatalogPath() string {
	return os.Getenv("MAPITEMS_CATALOG_PATH")
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:           "mapitemctl <command>",
		Short:         "Convert map item payloads into their outbound representation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.registry = mapitems.DefaultRegistry()

			if opts.catalogPath == "" {
				return nil
			}

			f, err := os.Open(opts.catalogPath)
			if err != nil {
				return fmt.Errorf("failed to open catalogue: %w", err)
			}
			defer f.Close()

			cfg, err := catalog.LoadConfiguration(f)
			if err != nil {
				return fmt.Errorf("failed to load catalogue %s: %w", opts.catalogPath, err)
			}

			opts.registry = cfg.Registry()
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.catalogPath, "catalog", defaultCatalogPath(), "path to a catalogue of item types and actions")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(
		newFieldsCmd(opts),
		newCleanCmd(opts),
		newFeaturesCmd(opts),
	)

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
