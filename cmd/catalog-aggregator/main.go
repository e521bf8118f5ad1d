package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/diwise/catalog-aggregator/internal/pkg/application/aggregator"
	"github.com/diwise/catalog-aggregator/internal/pkg/infrastructure/router"
	"github.com/diwise/catalog-aggregator/internal/pkg/presentation/api"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName string = "catalog-aggregator"

func main() {
	serviceVersion := buildinfo.SourceVersion()

	flags := parseExternalConfigFlags(context.Background())

	ctx, logger, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion, flags[logFormat])
	defer cleanup()

	cfg, err := newConfig(ctx, flags)
	if err != nil {
		logger.Error("failed to load configuration", "err", err.Error())
		os.Exit(1)
	}

	handler, err := initialize(ctx, flags, cfg)
	if err != nil {
		logger.Error("failed to initialize service", "err", err.Error())
		os.Exit(1)
	}

	addr := flags[listenAddress] + ":" + flags[servicePort]
	logger.Info("starting to listen for connections", "addr", addr)

	err = http.ListenAndServe(addr, handler)
	if err != nil {
		logger.Error("failed to listen for connections", "err", err.Error())
		os.Exit(1)
	}
}

func initialize(ctx context.Context, flags FlagMap, cfg *AppConfig) (http.Handler, error) {
	if cfg.policies != nil {
		defer cfg.policies.Close()
	}

	if flags[upstreamURL] != "" {
		cfg.aggregatorConfig.Upstream.BaseURL = flags[upstreamURL]
	}

	app, err := aggregator.New(ctx, cfg.aggregatorConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create aggregator: %w", err)
	}

	r := router.New(serviceName)

	err = api.RegisterHandlers(ctx, r, cfg.policies, app)
	if err != nil {
		return nil, err
	}

	return otelhttp.NewHandler(r, serviceName), nil
}

func newConfig(ctx context.Context, flags FlagMap) (*AppConfig, error) {
	appCfg := &AppConfig{
		aggregatorConfig: aggregator.DefaultConfig(),
	}

	if flags[configPath] != "" {
		configFile, err := os.Open(flags[configPath])
		if err != nil {
			return nil, fmt.Errorf("failed to open configuration file: %w", err)
		}
		defer configFile.Close()

		cfg, err := aggregator.LoadConfiguration(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration from %s: %w", flags[configPath], err)
		}
		appCfg.aggregatorConfig = *cfg
	}

	if flags[policiesPath] != "" {
		policies, err := os.Open(flags[policiesPath])
		if err != nil {
			return nil, fmt.Errorf("failed to open policies: %w", err)
		}
		appCfg.policies = policies
	}

	return appCfg, nil
}

func parseExternalConfigFlags(ctx context.Context) FlagMap {
	flags := FlagMap{
		listenAddress: env.GetVariableOrDefault(ctx, "LISTEN_ADDRESS", ""),
		servicePort:   env.GetVariableOrDefault(ctx, "SERVICE_PORT", "5100"),
		configPath:    env.GetVariableOrDefault(ctx, "CATALOG_CONFIG_PATH", ""),
		policiesPath:  env.GetVariableOrDefault(ctx, "POLICIES_PATH", ""),
		upstreamURL:   env.GetVariableOrDefault(ctx, "UPSTREAM_BASE_URL", ""),
		logFormat:     env.GetVariableOrDefault(ctx, "LOG_FORMAT", "json"),
	}

	apply := func(f FlagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	flag.Func("port", "port to listen for connections on", apply(servicePort))
	flag.Func("config", "path to a yaml configuration file", apply(configPath))
	flag.Func("policies", "path to a rego file with access policies", apply(policiesPath))
	flag.Func("upstream", "base url of the upstream catalog", apply(upstreamURL))
	flag.Parse()

	return flags
}
