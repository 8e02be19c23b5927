package simulation

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/andrescamacho/colonysim-go/internal/application/common"
	"github.com/andrescamacho/colonysim-go/internal/domain/colony"
	"github.com/andrescamacho/colonysim-go/internal/domain/shared"
	"github.com/andrescamacho/colonysim-go/pkg/utils"
)

// Service is the application entry point for running colony simulations:
// it loads a stored snapshot, assembles the domain colony, advances it, and
// optionally stores the result back as the new checkpoint.
type Service struct {
	colonies  ColonyRepository
	assembler *Assembler
	simulator *colony.Simulator
	validator *common.Validator
	clock     shared.Clock
}

// NewService wires a simulation service from its ports
func NewService(colonies ColonyRepository, static StaticData, clock shared.Clock) *Service {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Service{
		colonies:  colonies,
		assembler: NewAssembler(static),
		simulator: colony.NewSimulator(clock),
		validator: common.NewValidator(),
		clock:     clock,
	}
}

// Result is the outcome of one simulation call
type Result struct {
	RunID   string
	Colony  *colony.Colony
	Summary colony.Summary
	Events  string // human-readable description of the horizon used
}

// Import validates a snapshot and stores it as the colony's checkpoint
func (s *Service) Import(ctx context.Context, snap *ColonySnapshot) error {
	if err := s.validator.Validate(snap); err != nil {
		return fmt.Errorf("invalid colony snapshot: %w", err)
	}
	// Assemble once up front so structurally broken snapshots are rejected
	// at import time rather than on first simulate.
	if _, err := s.assembler.Assemble(ctx, snap); err != nil {
		return fmt.Errorf("snapshot does not assemble: %w", err)
	}
	return s.colonies.Save(ctx, snap)
}

// Load assembles the stored snapshot of a colony without advancing it
func (s *Service) Load(ctx context.Context, colonyID int64) (*colony.Colony, error) {
	snap, err := s.colonies.FindByID(ctx, colonyID)
	if err != nil {
		return nil, err
	}
	return s.assembler.Assemble(ctx, snap)
}

// SimulateToNow advances the colony to the current wall-clock time
func (s *Service) SimulateToNow(ctx context.Context, colonyID int64, save bool) (*Result, error) {
	return s.SimulateTo(ctx, colonyID, s.clock.Now(), save)
}

// SimulateTo advances the colony to the target time
func (s *Service) SimulateTo(ctx context.Context, colonyID int64, target time.Time, save bool) (*Result, error) {
	col, err := s.Load(ctx, colonyID)
	if err != nil {
		return nil, err
	}
	runID := utils.RunID("sim")
	out := s.simulator.Run(col, target)
	summary := out.RefreshStatuses(out.CurrentSimTime)
	log.Printf("[%s] colony %d simulated %s -> %s", runID, colonyID,
		col.CurrentSimTime.Format(time.RFC3339), out.CurrentSimTime.Format(time.RFC3339))

	if save {
		if err := s.colonies.Save(ctx, SnapshotFromColony(out)); err != nil {
			return nil, fmt.Errorf("failed to store simulated checkpoint: %w", err)
		}
	}
	return &Result{
		RunID:   runID,
		Colony:  out,
		Summary: summary,
		Events:  fmt.Sprintf("advanced to %s", out.CurrentSimTime.Format(time.RFC3339)),
	}, nil
}

// SimulateUntilIdle advances the colony until all activity stops
func (s *Service) SimulateUntilIdle(ctx context.Context, colonyID int64, save bool) (*Result, error) {
	col, err := s.Load(ctx, colonyID)
	if err != nil {
		return nil, err
	}
	runID := utils.RunID("sim")
	out := s.simulator.RunUntilIdle(col)
	summary := out.RefreshStatuses(out.CurrentSimTime)
	log.Printf("[%s] colony %d ran until idle at %s", runID, colonyID,
		out.CurrentSimTime.Format(time.RFC3339))

	if save {
		if err := s.colonies.Save(ctx, SnapshotFromColony(out)); err != nil {
			return nil, fmt.Errorf("failed to store simulated checkpoint: %w", err)
		}
	}
	return &Result{
		RunID:   runID,
		Colony:  out,
		Summary: summary,
		Events:  fmt.Sprintf("idle at %s", out.CurrentSimTime.Format(time.RFC3339)),
	}, nil
}

// NextKeyTime reports the next instant the stored colony's state could
// change, for callers stepping the simulation in discrete jumps
func (s *Service) NextKeyTime(ctx context.Context, colonyID int64) (time.Time, bool, error) {
	col, err := s.Load(ctx, colonyID)
	if err != nil {
		return time.Time{}, false, err
	}
	at, ok := colony.NextKeyTime(col)
	return at, ok, nil
}

// List returns the stored colony headers
func (s *Service) List(ctx context.Context) ([]ColonyHeader, error) {
	return s.colonies.List(ctx)
}
