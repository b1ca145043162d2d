package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List configured sync destinations",
	RunE:  runPlatforms,
}

func runPlatforms(cmd *cobra.Command, args []string) error {
	svc, err := loadService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	states := svc.PlatformStates()
	if len(states) == 0 {
		fmt.Println("No destinations configured. Add platforms to memsync.yaml.")
		return nil
	}

	fmt.Println("Destinations:")
	for _, st := range states {
		cooldown := ""
		if st.InCooldown {
			cooldown = "  (cooldown)"
		}
		fmt.Printf("  %-12s %s%s\n", st.Name, st.Path, cooldown)
	}
	return nil
}
