package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/colonysim-go/internal/infrastructure/database"
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored colonies",
		Long: `List every stored colony with its checkpoint time and facility count.

Example:
  colonysim list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, db, _, err := openService()
			if err != nil {
				return err
			}
			defer database.Close(db)

			headers, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(headers) == 0 {
				fmt.Println("No colonies stored. Import one with 'colonysim import'.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tFACILITIES\tCHECKPOINT")
			for _, h := range headers {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\n",
					h.ColonyID, h.Name, h.Facilities, h.CheckpointTime.Format(time.RFC3339))
			}
			return w.Flush()
		},
	}
	return cmd
}
