package importer

import (
	"context"
	"fmt"

	"github.com/harvestgrid/agrograph-backend/internal/graph"
	"github.com/harvestgrid/agrograph-backend/internal/platform/logger"
	"github.com/harvestgrid/agrograph-backend/internal/types"
)

// The Region endpoint is MERGEd by key, not MATCHed: a policy row may arrive
// before the region's own source row, in which case a stub Region carrying
// only the name is created and filled in by a later stage.
const policyUpsertCypher = `
UNWIND $rows AS row
MERGE (reg:Region {name: row.region})
MERGE (p:Policy {name: row.policy})
SET p.compost_subsidy = row.compost_subsidy,
    p.biogas_subsidy = row.biogas_subsidy,
    p.co2_limit = row.co2_limit,
    p.burning_ban = row.burning_ban
MERGE (p)-[:APPLIES_TO]->(reg)
`

func ImportPolicies(ctx context.Context, q graph.Querier, log *logger.Logger, rows []types.PolicyRow) (types.StageReport, error) {
	rep := types.StageReport{Stage: "policies", Processed: len(rows)}

	batch := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		if row.Region == "" || row.PolicyName == "" {
			rep.Rejected++
			continue
		}
		batch = append(batch, map[string]any{
			"region":          row.Region,
			"policy":          row.PolicyName,
			"compost_subsidy": floatOrNil(row.CompostSubsidy),
			"biogas_subsidy":  floatOrNil(row.BiogasSubsidy),
			"co2_limit":       floatOrNil(row.CO2Limit),
			"burning_ban":     row.BurningBan,
		})
	}
	if len(batch) == 0 {
		return rep, nil
	}

	summary, err := q.Write(ctx, policyUpsertCypher, map[string]any{"rows": batch})
	if err != nil {
		return rep, fmt.Errorf("import policies: %w", err)
	}
	applySummary(&rep, summary)
	log.Info("policy import complete",
		"processed", rep.Processed,
		"rejected", rep.Rejected,
		"nodes_created", rep.NodesCreated,
		"relationships_created", rep.RelationshipsCreated,
	)
	return rep, nil
}
