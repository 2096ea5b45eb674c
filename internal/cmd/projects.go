package cmd

import (
	"github.com/spf13/cobra"

	"github.com/egeria-tools/egc/internal/client"
)

// projectsCmd represents the projects command
var projectsCmd = &cobra.Command{
	Use:   "projects [search]",
	Short: "Search projects",
	Long: `Search the projects tracked in the metadata catalog. With no search argument
every project in the paging window is listed.

Examples:
  egc projects
  egc projects "migration"
  egc projects migration --format FORM`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProjects,
}

var (
	projectsPageSize  int
	projectsStartFrom int
)

func init() {
	rootCmd.AddCommand(projectsCmd)

	projectsCmd.Flags().IntVar(&projectsPageSize, "page-size", 20, "Maximum results per page")
	projectsCmd.Flags().IntVar(&projectsStartFrom, "start-from", 0, "Paging offset")
}

func runProjects(cmd *cobra.Command, args []string) error {
	search := ""
	if len(args) == 1 {
		search = args[0]
	}
	return kindSearch(cmd, "Projects", search, client.SearchOptions{
		StartFrom: projectsStartFrom,
		PageSize:  projectsPageSize,
	})
}
