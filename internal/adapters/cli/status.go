package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/colonysim-go/internal/domain/colony"
	"github.com/andrescamacho/colonysim-go/internal/infrastructure/database"
)

// NewStatusCommand creates the status command
func NewStatusCommand() *cobra.Command {
	var colonyID int64

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the stored state of a colony",
		Long: `Show the facilities of a stored colony with their status as of the
stored checkpoint. The checkpoint itself is not advanced; run simulate
first to bring it up to date.

Example:
  colonysim status --colony 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if colonyID == 0 {
				return fmt.Errorf("--colony flag is required")
			}

			svc, db, _, err := openService()
			if err != nil {
				return err
			}
			defer database.Close(db)

			col, err := svc.Load(cmd.Context(), colonyID)
			if err != nil {
				return err
			}
			summary := col.RefreshStatuses(col.CurrentSimTime)

			fmt.Printf("Colony %d (%s), checkpoint %s\n\n",
				col.ID, col.Name, col.CurrentSimTime.Format(time.RFC3339))
			printFacilityTable(col)
			fmt.Printf("\nproducing=%t storage-full=%t routes=%d\n",
				summary.Working, summary.StorageFull, len(col.Routes))
			return nil
		},
	}

	cmd.Flags().Int64Var(&colonyID, "colony", 0, "Colony ID (required)")
	return cmd
}

// printFacilityTable writes one row per facility, sorted by id
func printFacilityTable(col *colony.Colony) {
	facilities := col.Facilities()
	sort.Slice(facilities, func(i, j int) bool { return facilities[i].ID < facilities[j].ID })

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tSTATUS\tCAPACITY\tCONTENTS\tNEXT RUN")
	for _, f := range facilities {
		capacity := "-"
		if cap := f.Kind.Capacity(); cap > 0 && cap < 1e18 {
			capacity = fmt.Sprintf("%.1f/%.0f m3", f.CapacityUsed, cap)
		}
		next := "-"
		if at, ok := f.NextRunTime(col.CurrentSimTime); ok {
			next = at.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			f.ID, f.Kind, f.Status, capacity, formatContents(f.Contents), next)
	}
	w.Flush()
}

// formatContents renders a contents map as "typeID:qty" pairs
func formatContents(contents map[int64]int64) string {
	if len(contents) == 0 {
		return "-"
	}
	typeIDs := make([]int64, 0, len(contents))
	for typeID := range contents {
		typeIDs = append(typeIDs, typeID)
	}
	sort.Slice(typeIDs, func(i, j int) bool { return typeIDs[i] < typeIDs[j] })

	parts := make([]string, 0, len(typeIDs))
	for _, typeID := range typeIDs {
		parts = append(parts, fmt.Sprintf("%d:%d", typeID, contents[typeID]))
	}
	return strings.Join(parts, " ")
}
