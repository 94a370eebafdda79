package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cmorgan/go-region-odds/internal/storage"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List regions present in the database",
	Args:  cobra.NoArgs,
	RunE:  runRegions,
}

func runRegions(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	regions, err := db.ListRegions()
	if err != nil {
		return fmt.Errorf("list regions: %w", err)
	}
	if len(regions) == 0 {
		fmt.Fprintln(os.Stdout, "No schools stored yet. Run 'regionodds load' to import a snapshot.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-8s  %-8s  %s\n", "SEASON", "CLASS", "REGION")
	fmt.Fprintf(os.Stdout, "%-8s  %-8s  %s\n", "────────", "────────", "──────")
	for _, k := range regions {
		fmt.Fprintf(os.Stdout, "%-8d  %-8d  %d\n", k.Season, k.Class, k.Region)
	}
	return nil
}
