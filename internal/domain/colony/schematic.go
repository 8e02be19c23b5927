package colony

import (
	"fmt"
	"time"
)

// Schematic is a factory's fixed conversion rule: exact input quantities per
// cycle (not rates), one output type, and a cycle duration.
type Schematic struct {
	ID             int64
	OutputTypeID   int64
	OutputQuantity int64
	CycleTime      time.Duration
	Inputs         map[int64]int64 // input type id -> units required per cycle
}

// NewSchematic creates a schematic with validation
func NewSchematic(id, outputTypeID, outputQuantity int64, cycleTime time.Duration, inputs map[int64]int64) (*Schematic, error) {
	if id <= 0 {
		return nil, fmt.Errorf("schematic id must be positive")
	}
	if outputQuantity <= 0 {
		return nil, fmt.Errorf("schematic output quantity must be positive")
	}
	if cycleTime <= 0 {
		return nil, fmt.Errorf("schematic cycle time must be positive")
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("schematic requires at least one input")
	}
	for typeID, qty := range inputs {
		if qty <= 0 {
			return nil, fmt.Errorf("schematic input %d quantity must be positive", typeID)
		}
	}
	return &Schematic{
		ID:             id,
		OutputTypeID:   outputTypeID,
		OutputQuantity: outputQuantity,
		CycleTime:      cycleTime,
		Inputs:         inputs,
	}, nil
}

// RequiredInput returns the per-cycle requirement for a type (0 if the type
// is not part of the schematic)
func (s *Schematic) RequiredInput(typeID int64) int64 {
	return s.Inputs[typeID]
}

// Accepts reports whether the schematic consumes the given type at all
func (s *Schematic) Accepts(typeID int64) bool {
	_, ok := s.Inputs[typeID]
	return ok
}

// Clone returns an independent copy of the schematic
func (s *Schematic) Clone() *Schematic {
	if s == nil {
		return nil
	}
	inputs := make(map[int64]int64, len(s.Inputs))
	for id, qty := range s.Inputs {
		inputs[id] = qty
	}
	out := *s
	out.Inputs = inputs
	return &out
}

func (s *Schematic) String() string {
	return fmt.Sprintf("Schematic[%d -> %dx type %d every %s]",
		s.ID, s.OutputQuantity, s.OutputTypeID, s.CycleTime)
}
