package importer

import (
	"context"
	"fmt"

	"github.com/harvestgrid/agrograph-backend/internal/graph"
	"github.com/harvestgrid/agrograph-backend/internal/platform/logger"
	"github.com/harvestgrid/agrograph-backend/internal/types"
)

// BiogasLimit is keyed by the region name it belongs to, which gives the 1:1
// Region->HAS_LIMIT->BiogasLimit shape for free on rerun.
const limitUpsertCypher = `
UNWIND $rows AS row
MERGE (reg:Region {name: row.region})
MERGE (b:BiogasLimit {region: row.region})
SET b.biogas_score = row.biogas_score,
    b.biogas_level = row.biogas_level,
    b.compost_capacity = row.compost_capacity,
    b.biochar_limit_pct = row.biochar_limit_pct,
    b.biochar_level = row.biochar_level
MERGE (reg)-[:HAS_LIMIT]->(b)
`

func ImportLimits(ctx context.Context, q graph.Querier, log *logger.Logger, rows []types.LimitRow) (types.StageReport, error) {
	rep := types.StageReport{Stage: "limits", Processed: len(rows)}

	batch := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		if row.Region == "" {
			rep.Rejected++
			continue
		}
		batch = append(batch, map[string]any{
			"region":            row.Region,
			"biogas_score":      floatOrNil(row.BiogasScore),
			"biogas_level":      row.BiogasLevel,
			"compost_capacity":  floatOrNil(row.CompostCapacity),
			"biochar_limit_pct": floatOrNil(row.BiocharLimitPct),
			"biochar_level":     row.BiocharLevel,
		})
	}
	if len(batch) == 0 {
		return rep, nil
	}

	summary, err := q.Write(ctx, limitUpsertCypher, map[string]any{"rows": batch})
	if err != nil {
		return rep, fmt.Errorf("import limits: %w", err)
	}
	applySummary(&rep, summary)
	log.Info("limit import complete",
		"processed", rep.Processed,
		"rejected", rep.Rejected,
		"nodes_created", rep.NodesCreated,
		"relationships_created", rep.RelationshipsCreated,
	)
	return rep, nil
}
