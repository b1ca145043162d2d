package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/myai-oss/memsync/internal/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP stdio server",
	Long: `Serve the memory engine over the Model Context Protocol on
stdin/stdout, for use as an assistant-configured MCP server.

Tools exposed: get_template, update_template, get_section,
update_section, sync_platforms, list_platforms, list_presets,
load_preset, create_preset.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	svc, err := loadService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	server := mcp.NewServer(svc)
	return server.Run(ctx)
}
