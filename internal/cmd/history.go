package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/egeria-tools/egc/internal/format"
	"github.com/egeria-tools/egc/internal/store"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	Long: `Show the most recent searches recorded in the local cache, newest first.

Each entry carries the kind, query, output mode and result count, so a past
search is easy to re-run or re-render offline.

Examples:
  egc history               # Last 20 searches
  egc history --limit 50
  egc history --format JSON # Machine-readable`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of searches to show")
}

// historyRecord is the JSON shape of one history entry.
type historyRecord struct {
	Timestamp   string `json:"timestamp"`
	Kind        string `json:"kind"`
	Query       string `json:"query"`
	Mode        string `json:"mode"`
	ResultCount int    `json:"result_count"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	mode, err := s.mode()
	if err != nil {
		return err
	}

	st, err := s.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.RecentSearches(historyLimit)
	if err != nil {
		return err
	}

	if mode == format.ModeJSON || mode == format.ModeDict {
		records := make([]historyRecord, 0, len(entries))
		for _, e := range entries {
			records = append(records, historyRecord{
				Timestamp:   e.Timestamp.Format("2006-01-02 15:04:05"),
				Kind:        e.Kind,
				Query:       e.Query,
				Mode:        e.Mode,
				ResultCount: e.ResultCount,
			})
		}
		return printJSON(records)
	}

	if len(entries) == 0 {
		fmt.Println("No searches recorded yet")
		return nil
	}
	printHistoryTable(entries)
	return nil
}

func printHistoryTable(entries []*store.HistoryEntry) {
	fmt.Printf("%-19s  %-24s  %-8s  %7s  %s\n", "When", "Kind", "Mode", "Results", "Query")
	for _, e := range entries {
		fmt.Printf("%-19s  %-24s  %-8s  %7d  %s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.Kind, e.Mode, e.ResultCount, e.Query)
	}
}
