package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	padwan "github.com/padwan-ai/padwan-cli"
)

var modelsProviderFlag string

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available models grouped by provider",
	RunE:  runModels,
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show per-provider model counts",
	RunE:  runInfo,
}

func init() {
	modelsCmd.Flags().StringVarP(&modelsProviderFlag, "provider", "p", "", "only show models for this provider")
}

// modelGroups returns provider name to model set, plus display order
func modelGroups() (map[string][]string, []string) {
	groups := make(map[string][]string)
	order := make([]string, 0, len(padwan.Providers()))
	for _, provider := range padwan.Providers() {
		groups[string(provider)] = padwan.Models(provider)
		order = append(order, string(provider))
	}
	return groups, order
}

func runModels(cmd *cobra.Command, args []string) error {
	groups, order := modelGroups()
	if modelsProviderFlag != "" {
		models, ok := groups[modelsProviderFlag]
		if !ok {
			return fmt.Errorf("unknown provider: %s", modelsProviderFlag)
		}
		groups = map[string][]string{modelsProviderFlag: models}
		order = []string{modelsProviderFlag}
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderer.ModelTable(groups, order))
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	groups, order := modelGroups()
	fmt.Fprintln(cmd.OutOrStdout(), renderer.InfoTable(groups, order))
	return nil
}
