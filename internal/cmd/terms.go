package cmd

import (
	"github.com/spf13/cobra"

	"github.com/egeria-tools/egc/internal/client"
)

// termsCmd represents the terms command
var termsCmd = &cobra.Command{
	Use:   "terms [search]",
	Short: "Search glossary terms",
	Long: `Search the glossary terms known to the catalog. With no search argument
every term in the paging window is listed.

Examples:
  egc terms                         # List terms
  egc terms "patient"               # Search by name
  egc terms patient --format REPORT # Full definitions`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTerms,
}

var (
	termsPageSize  int
	termsStartFrom int
)

func init() {
	rootCmd.AddCommand(termsCmd)

	termsCmd.Flags().IntVar(&termsPageSize, "page-size", 20, "Maximum results per page")
	termsCmd.Flags().IntVar(&termsStartFrom, "start-from", 0, "Paging offset")
}

func runTerms(cmd *cobra.Command, args []string) error {
	search := ""
	if len(args) == 1 {
		search = args[0]
	}
	return kindSearch(cmd, "Glossary Terms", search, client.SearchOptions{
		StartFrom: termsStartFrom,
		PageSize:  termsPageSize,
	})
}

// kindSearch is the common body of the per-kind wrapper commands: search the
// kind's endpoint, record the search, render through the kind's format set.
func kindSearch(cmd *cobra.Command, kind, search string, opts client.SearchOptions) error {
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

	elements, err := s.findByKind(ctx, kind, search, opts)
	if err != nil {
		return err
	}

	s.recordAndCache(kind, search, mode, elements)
	return s.render(kind, elements, mode)
}
