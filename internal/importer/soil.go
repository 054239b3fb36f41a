package importer

import (
	"context"
	"fmt"

	"github.com/harvestgrid/agrograph-backend/internal/graph"
	"github.com/harvestgrid/agrograph-backend/internal/platform/logger"
	"github.com/harvestgrid/agrograph-backend/internal/types"
)

const soilUpsertCypher = `
UNWIND $rows AS row
MERGE (s:Soil {type: row.type})
SET s.retention_capacity = row.retention_capacity
`

func ImportSoils(ctx context.Context, q graph.Querier, log *logger.Logger, rows []types.SoilRow) (types.StageReport, error) {
	rep := types.StageReport{Stage: "soils", Processed: len(rows)}

	batch := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		if row.SoilType == "" {
			rep.Rejected++
			continue
		}
		batch = append(batch, map[string]any{
			"type":               row.SoilType,
			"retention_capacity": floatOrNil(row.RetentionCapacity),
		})
	}
	if len(batch) == 0 {
		return rep, nil
	}

	summary, err := q.Write(ctx, soilUpsertCypher, map[string]any{"rows": batch})
	if err != nil {
		return rep, fmt.Errorf("import soils: %w", err)
	}
	applySummary(&rep, summary)
	log.Info("soil import complete",
		"processed", rep.Processed,
		"rejected", rep.Rejected,
		"nodes_created", rep.NodesCreated,
	)
	return rep, nil
}
