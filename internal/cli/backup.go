package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage document backups",
	Long: `Timestamped snapshots of the memory document. One is taken
automatically before every mutation; these commands manage them by hand.`,
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, newest first",
	RunE:  runBackupList,
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Snapshot the current document",
	RunE:  runBackupCreate,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <name>",
	Short: "Restore the document from a backup",
	Long: `Restore the memory document from a named backup. The current
document is snapshotted first, so a restore is always reversible.`,
	Args: cobra.ExactArgs(1),
	RunE: runBackupRestore,
}

func init() {
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupRestoreCmd)
}

func runBackupList(cmd *cobra.Command, args []string) error {
	svc, err := loadService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	backups, err := svc.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}
	for _, name := range backups {
		fmt.Println(name)
	}
	return nil
}

func runBackupCreate(cmd *cobra.Command, args []string) error {
	svc, err := loadService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	name, err := svc.CreateBackup()
	if err != nil {
		return err
	}
	fmt.Printf("Backup created: %s\n", name)
	return nil
}

func runBackupRestore(cmd *cobra.Command, args []string) error {
	svc, err := loadService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	if err := svc.RestoreBackup(args[0]); err != nil {
		return err
	}
	fmt.Printf("Restored document from %s. Run 'memsync sync' to push it to destinations.\n", args[0])
	return nil
}
