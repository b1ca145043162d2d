package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/myai-oss/memsync/internal/syncer"
	"github.com/myai-oss/memsync/internal/telemetry"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the memory document and sync on change",
	Long: `Watch the canonical memory document and push it to every destination
whenever it changes. Edits are debounced so one save triggers one sync.

Runs until interrupted.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
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

	cfg := svc.Config()
	logger := telemetry.NewLogger(cfg.Logging.Level, cfg.Logging.Format)

	onChange := func() {
		if err := svc.ReloadDocument(); err != nil {
			fmt.Fprintf(os.Stderr, "reload failed: %v\n", err)
			return
		}
		printRun(svc.SyncAll())
	}

	fmt.Printf("Watching %s (Ctrl+C to stop)\n", svc.StorePath())
	watcher := syncer.NewWatcher(svc.StorePath(), cfg.Debounce(), onChange, logger)
	return watcher.Watch(ctx)
}
