package types

import (
	"time"

	"github.com/google/uuid"
)

// StageReport is one importer's operator-facing outcome.
type StageReport struct {
	Stage     string
	Processed int
	Rejected  int

	NodesCreated         int
	RelationshipsCreated int
	PropertiesSet        int
}

// ImportReport aggregates a full pipeline run. On a stage failure it carries
// the reports of the stages that completed before the halt.
type ImportReport struct {
	RunID     uuid.UUID
	StartedAt time.Time
	Duration  time.Duration
	Stages    []StageReport
}
