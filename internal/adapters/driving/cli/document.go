package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sharepoint-reader/internal/core/domain"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the files of the document library",
	Long:  `List the files at the root of the document library as JSON. Folders are skipped.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var getCmd = &cobra.Command{
	Use:   "get [file-id]",
	Short: "Print the text content of a file",
	Long: `Download a file by its drive item id and print its extracted text as JSON.

Examples:
  sharepoint-reader get 01ABCDEF2GHIJKL
  sharepoint-reader get 01ABCDEF2GHIJKL --summary --debug`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

// Flags for get.
var (
	getSummary bool
	getDebug   bool
)

func init() {
	getCmd.Flags().BoolVar(&getSummary, "summary", false, "truncate the text to the first 2000 characters")
	getCmd.Flags().BoolVar(&getDebug, "debug", false, "include the Graph content URL")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	svc, err := requireService()
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	session, err := svc.Open(ctx)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}

	files, err := session.ListFiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	return printJSON(cmd.OutOrStdout(), files)
}

func runGet(cmd *cobra.Command, args []string) error {
	svc, err := requireService()
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	session, err := svc.Open(ctx)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}

	content, err := session.GetContent(ctx, args[0], domain.ContentOptions{
		Summary: getSummary,
		Debug:   getDebug,
	})
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", args[0], err)
	}

	return printJSON(cmd.OutOrStdout(), content)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
