package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var templateFile string

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Inspect and replace the memory template",
	Long:  `Commands for working with the full memory document.`,
}

var templateGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the memory template",
	RunE:  runTemplateGet,
}

var templateUpdateCmd = &cobra.Command{
	Use:   "update [markdown]",
	Short: "Replace the memory template",
	Long: `Replace the entire memory template with new markdown.

The new content is taken from the argument, from --file, or from stdin
when neither is given. A backup of the previous document is written
before the replacement; run 'memsync sync' to push it to destinations.

Examples:
  memsync template update --file new-memory.md
  cat new-memory.md | memsync template update`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTemplateUpdate,
}

func init() {
	templateUpdateCmd.Flags().StringVarP(&templateFile, "file", "f", "", "read the new template from a file")

	templateCmd.AddCommand(templateGetCmd)
	templateCmd.AddCommand(templateUpdateCmd)
}

func runTemplateGet(cmd *cobra.Command, args []string) error {
	svc, err := loadService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	fmt.Print(svc.GetTemplate())
	return nil
}

func runTemplateUpdate(cmd *cobra.Command, args []string) error {
	content, err := readContent(args, templateFile)
	if err != nil {
		return err
	}

	svc, err := loadService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	if err := svc.UpdateTemplate(content); err != nil {
		return err
	}

	fmt.Println("Template updated. Run 'memsync sync' to push it to destinations.")
	return nil
}

// readContent resolves input from an argument, a file flag, or stdin.
func readContent(args []string, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return args[0], nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("no content given: pass an argument, --file, or pipe to stdin")
	}
	return string(data), nil
}
