package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/colonysim-go/internal/application/simulation"
	"github.com/andrescamacho/colonysim-go/internal/infrastructure/database"
)

// NewSimulateCommand creates the simulate command
func NewSimulateCommand() *cobra.Command {
	var (
		colonyID  int64
		target    string
		untilIdle bool
		save      bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Advance a stored colony to a target time",
		Long: `Advance a stored colony checkpoint through its production events.

Without --target the colony runs to the current wall-clock time. With
--until-idle it runs until no facility can act anymore (extractors
expired, factories starved, or storage full). --save stores the advanced
state as the new checkpoint; without it the run is a dry preview.

Examples:
  colonysim simulate --colony 1
  colonysim simulate --colony 1 --target 2024-03-02T00:00:00Z
  colonysim simulate --colony 1 --target +6h --save
  colonysim simulate --colony 1 --until-idle`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if colonyID == 0 {
				return fmt.Errorf("--colony flag is required")
			}
			if untilIdle && target != "" {
				return fmt.Errorf("--target and --until-idle are mutually exclusive")
			}

			svc, db, cfg, err := openService()
			if err != nil {
				return err
			}
			defer database.Close(db)

			doSave := save || cfg.Simulation.AutoSave
			var result *simulation.Result
			switch {
			case untilIdle:
				result, err = svc.SimulateUntilIdle(cmd.Context(), colonyID, doSave)
			case target != "":
				var at time.Time
				at, err = parseTargetTime(target, time.Now().UTC())
				if err != nil {
					return err
				}
				result, err = svc.SimulateTo(cmd.Context(), colonyID, at, doSave)
			default:
				result, err = svc.SimulateToNow(cmd.Context(), colonyID, doSave)
			}
			if err != nil {
				return err
			}

			printRunResult(result, doSave)
			return nil
		},
	}

	cmd.Flags().Int64Var(&colonyID, "colony", 0, "Colony ID (required)")
	cmd.Flags().StringVar(&target, "target", "",
		"Target time, RFC3339 or +duration from now (default: now)")
	cmd.Flags().BoolVar(&untilIdle, "until-idle", false,
		"Run until no facility can act anymore")
	cmd.Flags().BoolVar(&save, "save", false,
		"Store the advanced state as the new checkpoint")
	return cmd
}

// printRunResult writes the post-run summary
func printRunResult(result *simulation.Result, saved bool) {
	col := result.Colony
	fmt.Printf("✓ Run %s: colony %d (%s) %s\n", result.RunID, col.ID, col.Name, result.Events)
	fmt.Printf("  Producing:      %t\n", result.Summary.Working)
	fmt.Printf("  Storage full:   %t\n", result.Summary.StorageFull)
	for kind, count := range result.Summary.CountsByKind {
		fmt.Printf("  %-15s %d\n", kind.String()+":", count)
	}
	if saved {
		fmt.Printf("  Checkpoint saved at %s\n", col.CurrentSimTime.Format(time.RFC3339))
	} else {
		fmt.Println("  Dry run: checkpoint unchanged (use --save to persist)")
	}
}
