package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage memory presets",
	Long: `Presets are named snapshots of the whole memory document. Loading a
preset replaces the current document (the previous one is backed up)
and pushes the result to every destination.`,
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored presets",
	RunE:  runPresetList,
}

var presetCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Snapshot the current document as a preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetCreate,
}

var presetLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Replace the document with a preset and sync",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetLoad,
}

func init() {
	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetCreateCmd)
	presetCmd.AddCommand(presetLoadCmd)
}

func runPresetList(cmd *cobra.Command, args []string) error {
	svc, err := loadService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	presets, err := svc.ListPresets()
	if err != nil {
		return err
	}
	if len(presets) == 0 {
		fmt.Println("No presets found. Create one with 'memsync preset create <name>'.")
		return nil
	}
	for _, name := range presets {
		fmt.Println(name)
	}
	return nil
}

func runPresetCreate(cmd *cobra.Command, args []string) error {
	svc, err := loadService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	if err := svc.CreatePreset(args[0]); err != nil {
		return err
	}
	fmt.Printf("Preset %q created.\n", args[0])
	return nil
}

func runPresetLoad(cmd *cobra.Command, args []string) error {
	svc, err := loadService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	run, err := svc.LoadPreset(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Preset %q loaded.\n", args[0])
	printRun(run)
	return nil
}
