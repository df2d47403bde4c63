package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/diwise/map-items/internal/pkg/application/catalog"
	"github.com/diwise/map-items/internal/pkg/infrastructure/router"
	"github.com/diwise/map-items/internal/pkg/presentation/api"
	"github.com/diwise/map-items/pkg/mapitems"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName string = "map-items"

func main() {
	serviceVersion := buildinfo.SourceVersion()

	ctx, logger, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion, "json")
	defer cleanup()

	flags, err := parseExternalConfig(ctx, defaultFlags(), os.Args[1:])
	if err != nil {
		logger.Error("failed to parse configuration", "err", err.Error())
		os.Exit(1)
	}

	registry, err := loadRegistry(ctx, flags[catalogPath])
	if err != nil {
		logger.Error("failed to load item catalogue", "err", err.Error())
		os.Exit(1)
	}

	policies, err := os.Open(flags[policiesPath])
	if err != nil {
		logger.Error("unable to open authorization policies", "err", err.Error())
		os.Exit(1)
	}
	defer policies.Close()

	r := router.New(serviceName)

	err = api.RegisterHandlers(ctx, r, policies, registry)
	if err != nil {
		logger.Error("failed to register api handlers", "err", err.Error())
		os.Exit(1)
	}

	addr := flags[listenAddress] + ":" + flags[servicePort]
	logger.Info("starting to listen for connections", "addr", addr, "version", serviceVersion)

	err = http.ListenAndServe(addr, otelhttp.NewHandler(r, serviceName))
	if err != nil {
		logger.Error("failed to listen for connections", "err", err.Error())
		os.Exit(1)
	}
}

// loadRegistry reads the item catalogue. A missing catalogue is not an
// error, the built in item types and actions are used instead.
func loadRegistry(ctx context.Context, path string) (*mapitems.Registry, error) {
	logger := logging.GetFromContext(ctx)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("no item catalogue found, using built in item types", "path", path)
			return mapitems.DefaultRegistry(), nil
		}
		return nil, fmt.Errorf("failed to open catalogue: %w", err)
	}
	defer f.Close()

	cfg, err := catalog.LoadConfiguration(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalogue %s: %w", path, err)
	}

	registry := cfg.Registry()
	logger.Info("loaded item catalogue", "path", path, "types", len(registry.Variants()), "actions", len(registry.Actions()))

	return registry, nil
}
