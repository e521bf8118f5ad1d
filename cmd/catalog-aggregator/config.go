package main

import (
	"io"

	"github.com/diwise/catalog-aggregator/internal/pkg/application/aggregator"
)

type FlagType int
type FlagMap map[FlagType]string

const (
	listenAddress FlagType = iota
	servicePort

	configPath
	policiesPath
	upstreamURL

	logFormat
)

type AppConfig struct {
	aggregatorConfig aggregator.Config
	policies         io.ReadCloser
}
