package cli

import (
	"fmt"
	"time"

	"github.com/myai-oss/memsync/internal/syncer"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync [destination]",
	Short: "Push the memory template to destinations",
	Long: `Push the current memory template to every configured destination,
or to a single named destination.

Each destination file's memory region (everything from the '# myAI Memory'
banner onward) is replaced; content above the banner is preserved. A
destination synced within its cooldown window is skipped.

Examples:
  memsync sync           # all destinations
  memsync sync claude    # one destination`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	svc, err := loadService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	var run syncer.Run
	if len(args) > 0 {
		run, err = svc.SyncOne(args[0])
		if err != nil {
			return err
		}
	} else {
		run = svc.SyncAll()
	}

	printRun(run)

	for _, res := range run.Results {
		if res.Status == syncer.StatusFailed {
			return fmt.Errorf("%d of %d destinations failed", failedCount(run), len(run.Results))
		}
	}
	return nil
}

func printRun(run syncer.Run) {
	fmt.Printf("Sync run %s (%s)\n", run.ID[:8], run.Duration.Round(time.Millisecond))
	for _, res := range run.Results {
		icon := resultIcon(res.Status)
		fmt.Printf("  %s %-12s %s\n", icon, res.Destination, res.Message)
	}
}

func failedCount(run syncer.Run) int {
	n := 0
	for _, res := range run.Results {
		if res.Status == syncer.StatusFailed {
			n++
		}
	}
	return n
}

func resultIcon(status syncer.Status) string {
	switch status {
	case syncer.StatusSynced:
		return "●"
	case syncer.StatusSkipped:
		return "◌"
	case syncer.StatusFailed:
		return "✗"
	default:
		return "?"
	}
}
