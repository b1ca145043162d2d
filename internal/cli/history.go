package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent sync results",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries")
}

func runHistory(cmd *cobra.Command, args []string) error {
	svc, err := loadService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	entries, err := svc.History(historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No sync history yet.")
		return nil
	}

	fmt.Println("Recent syncs:")
	for _, e := range entries {
		fmt.Printf("  %s  %s  %-12s %-8s %s\n",
			e.CreatedAt.Local().Format(time.RFC3339),
			e.RunID[:8],
			e.Destination,
			e.Status,
			e.Message,
		)
	}
	return nil
}
