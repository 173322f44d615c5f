package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scholarship-workers/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect scholarship catalog files",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Validate catalog files against the catalog schema",
	RunE:  runCatalogValidate,
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
}

// runCatalogValidate checks every file and fails if any of them is invalid.
// Without arguments the --catalog file is checked.
func runCatalogValidate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{catalogPath}
	}
	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		store, err := catalog.LoadStore(cmd.Context(), catalog.FileSource{Path: path})
		if err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(out, "ok   %s (%d scholarships)\n", path, store.Len())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d catalog files are invalid", failed, len(args))
	}
	return nil
}
