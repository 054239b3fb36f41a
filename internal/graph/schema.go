package graph

import (
	"context"
	"fmt"
)

// One uniqueness constraint per identity rule. Residue identity is compound:
// the same residue type (straw, husk) recurs across crops.
var constraintStatements = []string{
	`CREATE CONSTRAINT crop_name_unique IF NOT EXISTS FOR (c:Crop) REQUIRE c.name IS UNIQUE`,
	`CREATE CONSTRAINT residue_crop_type_unique IF NOT EXISTS FOR (r:Residue) REQUIRE (r.crop_name, r.type) IS UNIQUE`,
	`CREATE CONSTRAINT soil_type_unique IF NOT EXISTS FOR (s:Soil) REQUIRE s.type IS UNIQUE`,
	`CREATE CONSTRAINT region_name_unique IF NOT EXISTS FOR (reg:Region) REQUIRE reg.name IS UNIQUE`,
	`CREATE CONSTRAINT policy_name_unique IF NOT EXISTS FOR (p:Policy) REQUIRE p.name IS UNIQUE`,
	`CREATE CONSTRAINT biogas_limit_region_unique IF NOT EXISTS FOR (b:BiogasLimit) REQUIRE b.region IS UNIQUE`,
}

// EnsureConstraints declares every uniqueness constraint the data model
// requires. Safe to rerun; any rejection aborts the caller's import run
// before data writes.
func EnsureConstraints(ctx context.Context, q Querier) error {
	for _, stmt := range constraintStatements {
		if _, err := q.Write(ctx, stmt, nil); err != nil {
			return fmt.Errorf("ensure constraint %q: %w", stmt, err)
		}
	}
	return nil
}
