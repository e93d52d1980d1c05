package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/archon/plugin"
)

// PluginsCmd lists the registered providers and checkers
var PluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List registered providers and checkers",
	Long:  `Display every registered plugin with its identifier, accepted arguments and description.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := newRegistry()
		if err != nil {
			return err
		}

		data := pterm.TableData{{"Kind", "Identifier", "Name", "Arguments", "Description"}}
		for _, reg := range registry.Providers() {
			data = append(data, []string{
				"provider", reg.Meta.Identifier(), reg.Meta.Name(),
				formatArguments(reg.Arguments), reg.Meta.Description(),
			})
		}
		for _, reg := range registry.Checkers() {
			data = append(data, []string{
				"checker", reg.Meta.Identifier(), reg.Meta.Name(),
				formatArguments(reg.Arguments), reg.Meta.Description(),
			})
		}

		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

// formatArguments renders a declaration list as "name (kind, required)" parts
func formatArguments(arguments []plugin.Argument) string {
	if len(arguments) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(arguments))
	for _, arg := range arguments {
		if arg.Required {
			parts = append(parts, fmt.Sprintf("%s (%s, required)", arg.Name, arg.Kind))
		} else {
			parts = append(parts, fmt.Sprintf("%s (%s)", arg.Name, arg.Kind))
		}
	}
	return strings.Join(parts, ", ")
}
