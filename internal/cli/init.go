package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/myai-oss/memsync/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Initialize a memsync configuration",
	Long: `Create memsync.yaml plus the memory, backup, and preset directories.

With no argument the current directory is initialized; an existing
memsync.yaml is never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	configPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}

	for _, sub := range []string{"backups", "presets"} {
		if err := os.MkdirAll(filepath.Join(dir, ".memsync", sub), 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", sub, err)
		}
	}

	content := `# memsync.yaml - memory sync configuration
name: my-memory

# Canonical memory document and its sibling stores
memory:
  path: .memsync/memory.md
  backup_dir: .memsync/backups
  preset_dir: .memsync/presets

# Destination files that receive the memory region
platforms:
  - name: claude
    path: ${HOME}/CLAUDE.md
  # - name: windsurf
  #   path: ${HOME}/.codeium/windsurf/memories/global_rules.md
  # - name: cursor
  #   path: ${HOME}/.cursor/rules/memory.md

sync:
  cooldown: 5s      # per-destination throttle
  debounce: 500ms   # watch-mode settle time

history:
  driver: sqlite    # sqlite | memory
  path: .memsync/history.db

logging:
  level: info
  format: text      # text | json

hooks:
  enabled: false
  hooks: []
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	fmt.Printf("Initialized memsync in %s\n", dir)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit platforms in memsync.yaml")
	fmt.Println("  2. Run 'memsync section update' to record your first facts")
	fmt.Println("  3. Run 'memsync sync' to push the memory everywhere")
	return nil
}
