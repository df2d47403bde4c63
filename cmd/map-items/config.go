package main

import (
	"context"
	"flag"

	"github.com/diwise/service-chassis/pkg/infrastructure/env"
)

type FlagType int
type FlagMap map[FlagType]string

const (
	listenAddress FlagType = iota
	servicePort

	catalogPath
	policiesPath
)

func defaultFlags() FlagMap {
	return FlagMap{
		listenAddress: "",
		servicePort:   "8080",
		catalogPath:   "/opt/diwise/config/catalog.yaml",
		policiesPath:  "/opt/diwise/config/authz.rego",
	}
}

// parseExternalConfig lets environment variables, and then command line
// flags, override the defaults.
func parseExternalConfig(ctx context.Context, flags FlagMap, args []string) (FlagMap, error) {
	apply := func(f FlagType, envName string) {
		flags[f] = env.GetVariableOrDefault(ctx, envName, flags[f])
	}

	apply(listenAddress, "LISTEN_ADDRESS")
	apply(servicePort, "SERVICE_PORT")
	apply(catalogPath, "MAPITEMS_CATALOG_PATH")
	apply(policiesPath, "MAPITEMS_POLICIES_PATH")

	fs := flag.NewFlagSet(serviceName, flag.ContinueOnError)

	fs.Func("catalog", "path to the catalogue of item types and actions", func(value string) error {
		flags[catalogPath] = value
		return nil
	})
	fs.Func("policies", "path to the authorization policies", func(value string) error {
		flags[policiesPath] = value
		return nil
	})

	err := fs.Parse(args)

	return flags, err
}
