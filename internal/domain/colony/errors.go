package colony

import "errors"

var (
	// ErrDuplicateFacility indicates a facility id was added twice
	ErrDuplicateFacility = errors.New("duplicate facility id")

	// ErrUnknownFacility indicates a facility id is not part of the colony
	ErrUnknownFacility = errors.New("unknown facility id")
)
