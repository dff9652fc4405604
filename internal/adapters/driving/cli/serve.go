package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sharepoint-reader/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/sharepoint-reader/internal/logger"
)

var serveAddress string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP trigger",
	Long: `Serve the document handler over HTTP until interrupted.

The listen address defaults to FUNCTIONS_CUSTOMHANDLER_PORT when the Azure
Functions host sets it, then to server.address from the config file.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddress, "address", "", "override the listen address, e.g. :8080")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	svc, err := requireService()
	if err != nil {
		return err
	}
	if config == nil {
		return errors.New("configuration not loaded")
	}

	cfg := *config
	if serveAddress != "" {
		cfg.Address = serveAddress
	}
	if cfg.Validate() != nil {
		logger.Warn("TENANT_ID, CLIENT_ID or CLIENT_SECRET is not set; requests will fail")
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return httpapi.NewServer(&cfg, svc).Run(ctx)
}
