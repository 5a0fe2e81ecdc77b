package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools exposed by the server",
	RunE:  runTools,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

func runTools(cmd *cobra.Command, args []string) error {
	cfg, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	reg, err := buildRegistry(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, tool := range reg.Tools() {
		fmt.Fprintf(out, "%s - %s\n", tool.Name, tool.Description)
		for _, param := range tool.Parameters {
			required := "optional"
			if param.Required {
				required = "required"
			}
			fmt.Fprintf(out, "  %s (%s, %s)", param.Name, param.Type, required)
			if param.Default != nil {
				fmt.Fprintf(out, " default=%v", param.Default)
			}
			fmt.Fprintln(out)
		}
	}

	return nil
}
