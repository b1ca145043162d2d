package cli

import (
	"fmt"
	"time"

	"github.com/myai-oss/memsync/internal/template"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show document, destination, and sync state",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	svc, err := loadService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	doc := template.NewCodec().Parse(svc.GetTemplate())

	fmt.Printf("Memory document: %s\n", svc.StorePath())
	fmt.Println("Sections:")
	for _, sec := range doc.Sections {
		fmt.Printf("  %-28s %d items\n", sec.Title, len(sec.Items))
	}

	fmt.Println("\nDestinations:")
	for _, st := range svc.PlatformStates() {
		state := "ready"
		if st.InCooldown {
			state = "cooldown"
		}
		fmt.Printf("  %-12s %-8s %s\n", st.Name, state, st.Path)
	}

	entries, err := svc.History(5)
	if err == nil && len(entries) > 0 {
		fmt.Println("\nLast syncs:")
		for _, e := range entries {
			fmt.Printf("  %s  %-12s %s\n",
				e.CreatedAt.Local().Format(time.RFC3339), e.Destination, e.Status)
		}
	}

	return nil
}
