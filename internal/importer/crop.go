// Package importer builds the fact graph from tabular sources: one upsert
// stage per entity group, sequenced by Run. Stages are idempotent (MERGE by
// identity key, last write wins on attributes) so the recovery path for a
// failed run is simply rerunning it.
package importer

import (
	"context"
	"fmt"

	"github.com/harvestgrid/agrograph-backend/internal/graph"
	"github.com/harvestgrid/agrograph-backend/internal/platform/logger"
	"github.com/harvestgrid/agrograph-backend/internal/types"
)

const cropUpsertCypher = `
UNWIND $rows AS row
MERGE (c:Crop {name: row.crop})
MERGE (r:Residue {crop_name: row.crop, type: row.type})
SET r.residue_ratio = row.residue_ratio,
    r.nutrient_n = row.nutrient_n,
    r.nutrient_p = row.nutrient_p,
    r.nutrient_k = row.nutrient_k,
    r.common_uses = row.common_uses
MERGE (c)-[:HAS_RESIDUE]->(r)
`

// ImportCrops upserts one Crop and one Residue per valid row plus the
// HAS_RESIDUE link between them. Rows missing either identity key are
// rejected and counted, never fatal.
func ImportCrops(ctx context.Context, q graph.Querier, log *logger.Logger, rows []types.CropRow) (types.StageReport, error) {
	rep := types.StageReport{Stage: "crops", Processed: len(rows)}

	batch := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		if row.Crop == "" || row.ResidueType == "" {
			rep.Rejected++
			continue
		}
		batch = append(batch, map[string]any{
			"crop":          row.Crop,
			"type":          row.ResidueType,
			"residue_ratio": floatOrNil(row.ResidueRatio),
			"nutrient_n":    floatOrNil(row.NutrientN),
			"nutrient_p":    floatOrNil(row.NutrientP),
			"nutrient_k":    floatOrNil(row.NutrientK),
			"common_uses":   row.CommonUses,
		})
	}
	if len(batch) == 0 {
		return rep, nil
	}

	summary, err := q.Write(ctx, cropUpsertCypher, map[string]any{"rows": batch})
	if err != nil {
		return rep, fmt.Errorf("import crops: %w", err)
	}
	applySummary(&rep, summary)
	log.Info("crop import complete",
		"processed", rep.Processed,
		"rejected", rep.Rejected,
		"nodes_created", rep.NodesCreated,
		"relationships_created", rep.RelationshipsCreated,
	)
	return rep, nil
}

func floatOrNil(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func applySummary(rep *types.StageReport, s graph.WriteSummary) {
	rep.NodesCreated = s.NodesCreated
	rep.RelationshipsCreated = s.RelationshipsCreated
	rep.PropertiesSet = s.PropertiesSet
}
