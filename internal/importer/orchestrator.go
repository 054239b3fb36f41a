package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harvestgrid/agrograph-backend/internal/graph"
	"github.com/harvestgrid/agrograph-backend/internal/platform/logger"
	"github.com/harvestgrid/agrograph-backend/internal/types"
)

// Sources names the four tabular inputs of a full import run.
type Sources struct {
	CropCSV   string
	SoilCSV   string
	PolicyCSV string
	LimitCSV  string
}

// Run executes the full pipeline: constraints, then the four entity stages in
// order. The first stage failure halts the run; completed stages are not
// rolled back (every stage is an idempotent upsert, so the operator recovery
// path is fixing the cause and rerunning). The returned report carries the
// stages that completed even when err is non-nil.
func Run(ctx context.Context, q graph.Querier, log *logger.Logger, src Sources) (report types.ImportReport, err error) {
	log = log.With("component", "ImportOrchestrator")
	report = types.ImportReport{
		RunID:     uuid.New(),
		StartedAt: time.Now().UTC(),
	}
	defer func() {
		report.Duration = time.Since(report.StartedAt)
	}()
	log.Info("import run starting", "run_id", report.RunID.String())

	if err := graph.EnsureConstraints(ctx, q); err != nil {
		return report, fmt.Errorf("stage constraints: %w", err)
	}
	log.Info("constraints ensured")

	cropRows, err := LoadCropRows(src.CropCSV)
	if err != nil {
		return report, fmt.Errorf("stage crops: %w", err)
	}
	rep, err := ImportCrops(ctx, q, log, cropRows)
	report.Stages = append(report.Stages, rep)
	if err != nil {
		return report, fmt.Errorf("stage crops: %w", err)
	}

	soilRows, err := LoadSoilRows(src.SoilCSV)
	if err != nil {
		return report, fmt.Errorf("stage soils: %w", err)
	}
	rep, err = ImportSoils(ctx, q, log, soilRows)
	report.Stages = append(report.Stages, rep)
	if err != nil {
		return report, fmt.Errorf("stage soils: %w", err)
	}

	policyRows, err := LoadPolicyRows(src.PolicyCSV)
	if err != nil {
		return report, fmt.Errorf("stage policies: %w", err)
	}
	rep, err = ImportPolicies(ctx, q, log, policyRows)
	report.Stages = append(report.Stages, rep)
	if err != nil {
		return report, fmt.Errorf("stage policies: %w", err)
	}

	limitRows, err := LoadLimitRows(src.LimitCSV)
	if err != nil {
		return report, fmt.Errorf("stage limits: %w", err)
	}
	rep, err = ImportLimits(ctx, q, log, limitRows)
	report.Stages = append(report.Stages, rep)
	if err != nil {
		return report, fmt.Errorf("stage limits: %w", err)
	}

	log.Info("import run complete", "run_id", report.RunID.String(), "stages", len(report.Stages))
	return report, nil
}
