package cmd

import (
	"github.com/spf13/cobra"

	"github.com/egeria-tools/egc/internal/client"
)

// collectionsCmd represents the collections command
var collectionsCmd = &cobra.Command{
	Use:   "collections [search]",
	Short: "Search collections",
	Long: `Search the collections known to the catalog: folders, data specifications,
data dictionaries and other element groupings.

With no search argument every collection in the paging window is listed.
--members lists the members of one collection instead of searching.

Examples:
  egc collections                       # List collections
  egc collections trials                # Search by name
  egc collections --members <guid>      # List a collection's members
  egc collections trials --format REPORT`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCollections,
}

var (
	collectionsMembers   string
	collectionsPageSize  int
	collectionsStartFrom int
)

func init() {
	rootCmd.AddCommand(collectionsCmd)

	collectionsCmd.Flags().StringVar(&collectionsMembers, "members", "", "List the members of the collection with this GUID")
	collectionsCmd.Flags().IntVar(&collectionsPageSize, "page-size", 20, "Maximum results per page")
	collectionsCmd.Flags().IntVar(&collectionsStartFrom, "start-from", 0, "Paging offset")
}

func runCollections(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	mode, err := s.mode()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := s.authenticate(ctx); err != nil {
		return err
	}

	opts := client.SearchOptions{StartFrom: collectionsStartFrom, PageSize: collectionsPageSize}

	if collectionsMembers != "" {
		members, err := s.client.GetCollectionMembers(ctx, collectionsMembers, opts)
		if err != nil {
			return err
		}
		// Members can be of any type; the Default columns fit them all.
		return s.render("Default", members, mode)
	}

	search := ""
	if len(args) == 1 {
		search = args[0]
	}
	elements, err := s.client.FindCollections(ctx, search, opts)
	if err != nil {
		return err
	}

	s.recordAndCache("Collections", search, mode, elements)
	return s.render("Collections", elements, mode)
}
