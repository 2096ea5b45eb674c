package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/egeria-tools/egc/internal/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Create the egc home directory and write a default config.yaml into it.

The home directory is ~/.egc, or $EGC_HOME when set. Existing configuration
is never overwritten; edit the file in place instead.

Examples:
  egc init               # Write ~/.egc/config.yaml
  EGC_HOME=/tmp egc init # Write /tmp/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := config.SaveDefault()
	if err != nil {
		return err
	}
	fmt.Printf("Wrote default configuration to %s\n", path)
	fmt.Println("Edit the platform section, then run 'egc login'.")
	return nil
}
