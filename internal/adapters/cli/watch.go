package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/colonysim-go/internal/domain/colony"
	"github.com/andrescamacho/colonysim-go/internal/infrastructure/database"
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	var (
		colonyID int64
		steps    int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Replay a colony event by event",
		Long: `Step a stored colony through its key times one jump at a time,
printing the state after each jump. The replay is in-memory only; the
stored checkpoint is never modified.

The pace is limited by simulation.watch_rate in the config so the output
stays readable.

Examples:
  colonysim watch --colony 1
  colonysim watch --colony 1 --steps 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if colonyID == 0 {
				return fmt.Errorf("--colony flag is required")
			}

			svc, db, cfg, err := openService()
			if err != nil {
				return err
			}
			defer database.Close(db)

			col, err := svc.Load(cmd.Context(), colonyID)
			if err != nil {
				return err
			}

			limiter := rate.NewLimiter(rate.Limit(cfg.Simulation.WatchRate), cfg.Simulation.WatchBurst)
			sim := colony.NewSimulator(nil)

			fmt.Printf("Colony %d (%s), checkpoint %s\n",
				col.ID, col.Name, col.CurrentSimTime.Format(time.RFC3339))
			for step := 0; steps == 0 || step < steps; step++ {
				at, ok := colony.NextKeyTime(col)
				if !ok {
					fmt.Println("Colony is idle: no further key times.")
					return nil
				}
				if err := limiter.Wait(cmd.Context()); err != nil {
					return err
				}
				col = sim.Run(col, at)
				summary := col.RefreshStatuses(col.CurrentSimTime)
				fmt.Printf("%s  producing=%t storage-full=%t\n",
					col.CurrentSimTime.Format(time.RFC3339), summary.Working, summary.StorageFull)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&colonyID, "colony", 0, "Colony ID (required)")
	cmd.Flags().IntVar(&steps, "steps", 0, "Number of key-time jumps (0 = until idle)")
	return cmd
}
