package cmd

import (
	"github.com/spf13/cobra"

	"github.com/egeria-tools/egc/internal/client"
)

// governanceCmd represents the governance command
var governanceCmd = &cobra.Command{
	Use:   "governance [search]",
	Short: "Search governance definitions",
	Long: `Search the governance definitions in the catalog: policies, principles,
obligations and related definitions. With no search argument every definition
in the paging window is listed.

Examples:
  egc governance
  egc governance "retention"
  egc governance retention --format REPORT`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGovernance,
}

var (
	governancePageSize  int
	governanceStartFrom int
)

func init() {
	rootCmd.AddCommand(governanceCmd)

	governanceCmd.Flags().IntVar(&governancePageSize, "page-size", 20, "Maximum results per page")
	governanceCmd.Flags().IntVar(&governanceStartFrom, "start-from", 0, "Paging offset")
}

func runGovernance(cmd *cobra.Command, args []string) error {
	search := ""
	if len(args) == 1 {
		search = args[0]
	}
	return kindSearch(cmd, "Governance Definitions", search, client.SearchOptions{
		StartFrom: governanceStartFrom,
		PageSize:  governancePageSize,
	})
}
