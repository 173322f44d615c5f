// Command finder-cli evaluates finder profiles against a catalog file and
// maintains the activity registry. It also lists pending leads.
//
// Usage:
//
//	finder-cli eval --tn 9.2 --dgnl 92 --award first-place
//	finder-cli eval --query "dgnl=92&hsgqg=first-place&tn=9.2"
//	finder-cli whatif --tn 7.9 --bonus-tn 0.5
//	finder-cli catalog validate configs/scholarships.json
//	finder-cli registry validate
//	finder-cli leads pending --redis-addr localhost:6379
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	catalogPath  string
	registryPath string
	jsonOutput   bool
)

var rootCmd = &cobra.Command{
	Use:           "finder-cli",
	Short:         "Scholarship finder tooling",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "configs/scholarships.json", "Path to the scholarship catalog (JSON or YAML)")
	rootCmd.PersistentFlags().StringVar(&registryPath, "registry", "configs/activity-registry.json", "Path to the activity registry")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of text")

	rootCmd.AddCommand(evalCmd, whatIfCmd, catalogCmd, registryCmd, leadsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
