package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the local element cache",
	Long: `The local cache keeps the last-fetched elements and the search history in
~/.egc/egc.db so results can be re-rendered with --offline.

Subcommands:
  status  Show row counts and the age of the oldest cached element
  prune   Remove cached elements older than the configured (or given) max age
  clear   Remove all cached elements and history

Examples:
  egc cache status
  egc cache prune --max-age 24h
  egc cache clear`,
}

// cacheStatusCmd represents the cache status subcommand
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cache statistics",
	Args:  cobra.NoArgs,
	RunE:  runCacheStatus,
}

// cachePruneCmd represents the cache prune subcommand
var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove cached elements older than the max age",
	Args:  cobra.NoArgs,
	RunE:  runCachePrune,
}

// cacheClearCmd represents the cache clear subcommand
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached elements and history",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

var cachePruneMaxAge time.Duration

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cachePruneCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	cachePruneCmd.Flags().DurationVar(&cachePruneMaxAge, "max-age", 0, "Age cutoff (default: the configured cache max_age)")
}

func runCacheStatus(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	st, err := s.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := st.Stats()
	if err != nil {
		return err
	}

	fmt.Printf("Cache database: %s\n", st.Path())
	fmt.Printf("Cached elements: %d\n", stats.ElementCount)
	fmt.Printf("Recorded searches: %d\n", stats.HistoryCount)
	if stats.ElementCount > 0 {
		fmt.Printf("Oldest element fetched: %s (%s ago)\n",
			stats.OldestFetch.Format("2006-01-02 15:04:05"),
			time.Since(stats.OldestFetch).Round(time.Minute))
	}
	return nil
}

func runCachePrune(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	st, err := s.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	maxAge := cachePruneMaxAge
	if maxAge == 0 {
		maxAge = s.cfg.Cache.MaxAge
	}

	removed, err := st.Prune(maxAge)
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d cached element(s) older than %s\n", removed, maxAge)
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	st, err := s.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Clear(); err != nil {
		return err
	}
	fmt.Println("Cache cleared")
	return nil
}
