package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sharepoint-reader/internal/core/domain"
	"github.com/custodia-labs/sharepoint-reader/internal/core/ports/driving"
	"github.com/custodia-labs/sharepoint-reader/internal/logger"
)

var (
	// Version is set by goreleaser ldflags.
	version = "dev"

	// Verbose enables debug logging.
	verbose bool

	// configPath points at an optional TOML config file.
	configPath string

	// Services holds injected service implementations for CLI commands.
	config          *domain.Config
	documentService driving.DocumentService

	// builder constructs services once flags are parsed.
	builder Builder
)

// Services holds configuration for CLI commands.
type Services struct {
	Config   *domain.Config
	Document driving.DocumentService
}

// Builder creates services from the config file path given on the command line.
type Builder func(configPath string) (*Services, error)

// SetServices injects service implementations for CLI commands.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	config = s.Config
	documentService = s.Document
}

// SetBuilder registers the function that wires services after flag parsing.
func SetBuilder(b Builder) {
	builder = b
}

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "sharepoint-reader",
	Short: "Read files from a SharePoint document library",
	Long: `sharepoint-reader lists the files of a SharePoint document library and
returns their plain-text content through Microsoft Graph.

Run 'sharepoint-reader serve' as an Azure Functions custom handler, or use
'list' and 'get' for one-off lookups. Credentials come from TENANT_ID,
CLIENT_ID and CLIENT_SECRET.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
}

// requireService returns the document service or an error when none was wired.
func requireService() (driving.DocumentService, error) {
	if documentService == nil {
		return nil, errors.New("document service not configured")
	}
	return documentService, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose debug output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")

	// Use PersistentPreRunE to set verbose mode and wire services before any command executes
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if builder == nil {
			return nil
		}
		s, err := builder(configPath)
		if err != nil {
			return err
		}
		SetServices(s)
		return nil
	}
}
