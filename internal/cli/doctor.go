package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/myai-oss/memsync/internal/history"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and destinations",
	Long:  "Validate that the configuration, canonical store, history database, and every destination are usable.",
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Println("memsync doctor — checking your setup")
	fmt.Println()
	allOK := true

	fmt.Printf("  Go version: %s ✓\n", runtime.Version())
	fmt.Printf("  Platform:   %s/%s ✓\n", runtime.GOOS, runtime.GOARCH)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("  Config:     INVALID ✗\n    → %v\n", err)
		fmt.Println()
		fmt.Println("Fix the configuration before re-running doctor.")
		return nil
	}
	fmt.Printf("  Config:     %s ✓\n", cfg.Name)

	// Canonical store
	if _, err := os.Stat(cfg.Memory.Path); err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("  Memory:     not created yet (%s)\n", cfg.Memory.Path)
			fmt.Println("    → Any command that touches the document will create it")
		} else {
			fmt.Printf("  Memory:     FAILED (%v) ✗\n", err)
			allOK = false
		}
	} else {
		fmt.Printf("  Memory:     %s ✓\n", cfg.Memory.Path)
	}

	// Backup directory
	if err := checkWritableDir(cfg.Memory.BackupDir); err != nil {
		fmt.Printf("  Backups:    FAILED (%v) ✗\n", err)
		allOK = false
	} else {
		fmt.Printf("  Backups:    %s ✓\n", cfg.Memory.BackupDir)
	}

	// History database
	hist, err := history.NewManager(cfg.History.Driver, cfg.History.Path)
	if err != nil {
		fmt.Printf("  History:    FAILED (%v) ✗\n", err)
		allOK = false
	} else {
		_ = hist.Close()
		fmt.Printf("  History:    %s (%s) ✓\n", cfg.History.Driver, cfg.History.Path)
	}

	// Destinations
	if len(cfg.Platforms) == 0 {
		fmt.Println("  Platforms:  none configured ✗")
		fmt.Println("    → Add destinations to memsync.yaml")
		allOK = false
	}
	for _, p := range cfg.Platforms {
		if err := checkWritableDir(filepath.Dir(p.Path)); err != nil {
			fmt.Printf("  Platform:   %s NOT WRITABLE (%v) ✗\n", p.Name, err)
			allOK = false
			continue
		}
		fmt.Printf("  Platform:   %s → %s ✓\n", p.Name, p.Path)
	}

	fmt.Println()
	if allOK {
		fmt.Println("All checks passed!")
	} else {
		fmt.Println("Some checks failed. See above for details.")
	}
	return nil
}

// checkWritableDir ensures dir exists (creating it if needed) and
// accepts a probe file.
func checkWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	probe := filepath.Join(dir, ".memsync-doctor")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return err
	}
	return os.Remove(probe)
}
