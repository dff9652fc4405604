package main

import (
	"log"
	"net/http"
	"os"

	"github.com/custodia-labs/sharepoint-reader/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sharepoint-reader/internal/adapters/driving/cli"
	"github.com/custodia-labs/sharepoint-reader/internal/connectors"
	"github.com/custodia-labs/sharepoint-reader/internal/connectors/microsoft/sharepoint"
	"github.com/custodia-labs/sharepoint-reader/internal/core/services"
	"github.com/custodia-labs/sharepoint-reader/internal/normalisers"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cli.SetVersion(version)
	cli.SetBuilder(build)

	if err := cli.Execute(); err != nil {
		log.Printf("error: %v", err)
		return 1
	}
	return 0
}

// build wires the services once the --config flag is known.
func build(configPath string) (*cli.Services, error) {
	cfg, err := file.Load(configPath)
	if err != nil {
		return nil, err
	}

	// One client for both endpoints; tokens are still fetched per request.
	httpClient := &http.Client{Timeout: cfg.Timeout}

	backend, err := connectors.NewFactory().Create(sharepoint.StoreType, cfg, httpClient)
	if err != nil {
		return nil, err
	}
	extractors := normalisers.NewRegistry()

	return &cli.Services{
		Config:   cfg,
		Document: services.NewDocumentService(cfg, backend.Tokens, backend.Store, extractors),
	}, nil
}
