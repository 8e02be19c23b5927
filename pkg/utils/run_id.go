package utils

import (
	"strings"

	"github.com/google/uuid"
)

// RunID creates a short, human-readable identifier for one simulation run.
// Format: {prefix}-{8charHexUUID}, e.g. "sim-a3f8e2b1". The UUID suffix
// keeps ids unique across concurrent runs while staying log-friendly.
func RunID(prefix string) string {
	return prefix + "-" + shortUUID()
}

// shortUUID returns the first 8 hex characters of a fresh UUID
func shortUUID() string {
	id := uuid.New().String()
	return strings.ReplaceAll(id, "-", "")[:8]
}
