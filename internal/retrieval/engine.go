// Package retrieval composes the per-request context subgraph: up to four
// independent pattern lookups (crop residues, soil retention, region
// policies, region biogas/biochar limits) merged into one ContextResult and
// rendered for prompt injection.
//
// Lookups are exact-match on trimmed keys. The upstream data is imported
// without case normalization, so "rice" does not find "Rice"; that is a
// documented property of the dataset, not something this layer papers over.
package retrieval

import (
	"context"
	"strings"

	"github.com/harvestgrid/agrograph-backend/internal/graph"
	"github.com/harvestgrid/agrograph-backend/internal/platform/envutil"
	"github.com/harvestgrid/agrograph-backend/internal/platform/logger"
	"github.com/harvestgrid/agrograph-backend/internal/types"
)

// defaultLookupCap bounds rows per sub-lookup, which in turn bounds the
// formatted prompt block.
const defaultLookupCap = 5

// Query carries the identity keys of one retrieval request. Any blank field
// skips its dependent sub-lookups.
type Query struct {
	Crop     string
	Region   string
	SoilType string
}

type Service struct {
	store graph.Querier
	log   *logger.Logger
	cap   int
}

func NewService(store graph.Querier, log *logger.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With("component", "ContextRetrieval"),
		cap:   envutil.Int("CONTEXT_LOOKUP_CAP", defaultLookupCap),
	}
}

const residueLookupCypher = `
MATCH (c:Crop {name: $crop})-[:HAS_RESIDUE]->(r:Residue)
RETURN c.name AS crop, r.type AS residue_type, r.residue_ratio AS residue_ratio,
       r.nutrient_n AS nutrient_n, r.nutrient_p AS nutrient_p, r.nutrient_k AS nutrient_k,
       r.common_uses AS common_uses
ORDER BY r.type
LIMIT $limit
`

const soilLookupCypher = `
MATCH (s:Soil {type: $soil})
RETURN s.type AS soil_type, s.retention_capacity AS retention_capacity
LIMIT 1
`

const policyLookupCypher = `
MATCH (p:Policy)-[:APPLIES_TO]->(:Region {name: $region})
RETURN p.name AS policy, p.compost_subsidy AS compost_subsidy,
       p.biogas_subsidy AS biogas_subsidy, p.co2_limit AS co2_limit,
       p.burning_ban AS burning_ban
ORDER BY p.name
LIMIT $limit
`

const limitLookupCypher = `
MATCH (:Region {name: $region})-[:HAS_LIMIT]->(b:BiogasLimit)
RETURN b.region AS region, b.biogas_score AS biogas_score, b.biogas_level AS biogas_level,
       b.compost_capacity AS compost_capacity, b.biochar_limit_pct AS biochar_limit_pct,
       b.biochar_level AS biochar_level
LIMIT 1
`

// Retrieve runs the sub-lookups the query keys allow. Sub-lookups are
// independent: a store failure in one is classified, logged, and recorded in
// Failures while the rest still run, so a partially grounded answer beats an
// ungrounded one. Retrieve never returns an error; total unavailability is
// visible via ContextResult.Unavailable.
func (s *Service) Retrieve(ctx context.Context, q Query) types.ContextResult {
	crop := strings.TrimSpace(q.Crop)
	region := strings.TrimSpace(q.Region)
	soil := strings.TrimSpace(q.SoilType)

	res := types.ContextResult{Region: region}

	if crop != "" {
		rows, err := s.store.Read(ctx, residueLookupCypher, map[string]any{
			"crop":  crop,
			"limit": int64(s.cap),
		})
		if err != nil {
			s.degrade(&res, "residues", err)
		} else {
			for _, row := range rows {
				res.Residues = append(res.Residues, types.ResidueFact{
					Crop:         asString(row["crop"]),
					ResidueType:  asString(row["residue_type"]),
					ResidueRatio: asFloat(row["residue_ratio"]),
					NutrientN:    asFloat(row["nutrient_n"]),
					NutrientP:    asFloat(row["nutrient_p"]),
					NutrientK:    asFloat(row["nutrient_k"]),
					CommonUses:   asString(row["common_uses"]),
				})
			}
		}
	}

	if soil != "" {
		rows, err := s.store.Read(ctx, soilLookupCypher, map[string]any{"soil": soil})
		if err != nil {
			s.degrade(&res, "soil", err)
		} else if len(rows) > 0 {
			res.Soil = &types.SoilFact{
				SoilType:          asString(rows[0]["soil_type"]),
				RetentionCapacity: asFloat(rows[0]["retention_capacity"]),
			}
		}
	}

	if region != "" {
		rows, err := s.store.Read(ctx, policyLookupCypher, map[string]any{
			"region": region,
			"limit":  int64(s.cap),
		})
		if err != nil {
			s.degrade(&res, "policies", err)
		} else {
			for _, row := range rows {
				res.Policies = append(res.Policies, types.PolicyFact{
					Policy:         asString(row["policy"]),
					CompostSubsidy: asFloat(row["compost_subsidy"]),
					BiogasSubsidy:  asFloat(row["biogas_subsidy"]),
					CO2Limit:       asFloat(row["co2_limit"]),
					BurningBan:     asString(row["burning_ban"]),
				})
			}
		}

		rows, err = s.store.Read(ctx, limitLookupCypher, map[string]any{"region": region})
		if err != nil {
			s.degrade(&res, "limits", err)
		} else if len(rows) > 0 {
			res.Limit = &types.LimitFact{
				Region:          asString(rows[0]["region"]),
				BiogasScore:     asFloat(rows[0]["biogas_score"]),
				BiogasLevel:     asString(rows[0]["biogas_level"]),
				CompostCapacity: asFloat(rows[0]["compost_capacity"]),
				BiocharLimitPct: asFloat(rows[0]["biochar_limit_pct"]),
				BiocharLevel:    asString(rows[0]["biochar_level"]),
			}
		}
	}

	return res
}

// degrade is the availability guard on the online path: classify, log for
// the operator, record for the caller, and move on.
func (s *Service) degrade(res *types.ContextResult, lookup string, err error) {
	f := graph.Classify(err)
	s.log.Warn("context lookup degraded",
		"lookup", lookup,
		"kind", string(f.Kind),
		"error", err,
	)
	res.Failures = append(res.Failures, types.LookupFailure{
		Lookup:  lookup,
		Kind:    string(f.Kind),
		Message: err.Error(),
	})
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case int64:
		f := float64(t)
		return &f
	default:
		return nil
	}
}
