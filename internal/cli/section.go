package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sectionFile string

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Inspect and update memory sections",
	Long:  `Commands for working with individual sections of the memory document.`,
}

var sectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List section titles",
	RunE:  runSectionList,
}

var sectionGetCmd = &cobra.Command{
	Use:   "get <title>",
	Short: "Print one section as markdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runSectionGet,
}

var sectionUpdateCmd = &cobra.Command{
	Use:   "update <title> [content]",
	Short: "Merge new content into a section",
	Long: `Merge content into a section, creating the section if needed.

Content may be '-~- Key: Value' item lines, a markdown fragment, or a
plain sentence ("My name is Alice and I prefer concise answers") which
is mined for key/value facts. Existing items keep their position; keys
match case-insensitively.

Examples:
  memsync section update "User Information" "-~- Name: Alice"
  memsync section update preferences --file prefs.md
  echo "I prefer dark mode" | memsync section update preferences`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSectionUpdate,
}

func init() {
	sectionUpdateCmd.Flags().StringVarP(&sectionFile, "file", "f", "", "read the new content from a file")

	sectionCmd.AddCommand(sectionListCmd)
	sectionCmd.AddCommand(sectionGetCmd)
	sectionCmd.AddCommand(sectionUpdateCmd)
}

func runSectionList(cmd *cobra.Command, args []string) error {
	svc, err := loadService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	for _, title := range svc.ListSections() {
		fmt.Println(title)
	}
	return nil
}

func runSectionGet(cmd *cobra.Command, args []string) error {
	svc, err := loadService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	text, err := svc.GetSection(args[0])
	if err != nil {
		return err
	}
	fmt.Print(text)
	return nil
}

func runSectionUpdate(cmd *cobra.Command, args []string) error {
	content, err := readContent(args[1:], sectionFile)
	if err != nil {
		return err
	}

	svc, err := loadService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	if err := svc.UpdateSection(args[0], content); err != nil {
		return err
	}

	fmt.Printf("Section %q updated. Run 'memsync sync' to push it to destinations.\n", args[0])
	return nil
}
