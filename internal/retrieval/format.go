package retrieval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/harvestgrid/agrograph-backend/internal/types"
)

// NoContextMarker is what Format returns for a result with no facts, so the
// prompt-assembly side can detect the degraded case without string parsing
// of section headers. Never an empty string.
const NoContextMarker = "no contextual data available"

// Format renders a ContextResult as the labeled text block injected into the
// prompt. Pure and total: no side effects, never fails. Sections with no data
// are omitted entirely; row counts are truncated to the retrieval cap.
func Format(res types.ContextResult) string {
	if res.Empty() {
		return NoContextMarker
	}

	var b strings.Builder

	if len(res.Residues) > 0 {
		b.WriteString("## Crop and Residue Information:\n")
		rows := res.Residues
		if len(rows) > defaultLookupCap {
			rows = rows[:defaultLookupCap]
		}
		for _, r := range rows {
			fmt.Fprintf(&b, "- Crop: %s\n", r.Crop)
			fmt.Fprintf(&b, "  - Residue Type: %s\n", r.ResidueType)
			fmt.Fprintf(&b, "  - Residue Ratio: %s\n", num(r.ResidueRatio))
			fmt.Fprintf(&b, "  - Nutrients (N-P-K %%): %s-%s-%s\n", num(r.NutrientN), num(r.NutrientP), num(r.NutrientK))
			if r.CommonUses != "" {
				fmt.Fprintf(&b, "  - Common Uses: %s\n", r.CommonUses)
			}
		}
		b.WriteString("\n")
	}

	if res.Soil != nil {
		b.WriteString("## Soil Information:\n")
		fmt.Fprintf(&b, "- Soil Type: %s\n", res.Soil.SoilType)
		fmt.Fprintf(&b, "  - Retention Capacity: %s\n", num(res.Soil.RetentionCapacity))
		b.WriteString("\n")
	}

	if len(res.Policies) > 0 {
		fmt.Fprintf(&b, "## Regional Policies for %s:\n", res.Region)
		rows := res.Policies
		if len(rows) > defaultLookupCap {
			rows = rows[:defaultLookupCap]
		}
		for _, p := range rows {
			fmt.Fprintf(&b, "- Policy: %s\n", p.Policy)
			if p.BurningBan != "" {
				fmt.Fprintf(&b, "  - Burning Ban: %s\n", p.BurningBan)
			}
			if p.CompostSubsidy != nil {
				fmt.Fprintf(&b, "  - Compost Subsidy: %s INR per ton\n", num(p.CompostSubsidy))
			}
			if p.BiogasSubsidy != nil {
				fmt.Fprintf(&b, "  - Biogas Subsidy: %s%%\n", num(p.BiogasSubsidy))
			}
			if p.CO2Limit != nil {
				fmt.Fprintf(&b, "  - CO2 Limit: %s tons per hectare\n", num(p.CO2Limit))
			}
		}
		b.WriteString("\n")
	}

	if res.Limit != nil {
		fmt.Fprintf(&b, "## Local Capacities and Limits for %s:\n", res.Limit.Region)
		if res.Limit.CompostCapacity != nil {
			fmt.Fprintf(&b, "- Composting facility capacity: %s tons per day\n", num(res.Limit.CompostCapacity))
		}
		if res.Limit.BiogasLevel != "" && res.Limit.BiogasLevel != "None" {
			fmt.Fprintf(&b, "- Biogas production level: %s\n", res.Limit.BiogasLevel)
		}
		if res.Limit.BiogasScore != nil {
			fmt.Fprintf(&b, "- Biogas production score: %s\n", num(res.Limit.BiogasScore))
		}
		if res.Limit.BiocharLimitPct != nil {
			fmt.Fprintf(&b, "- Biochar allocation limit: up to %s%% of residue\n", num(res.Limit.BiocharLimitPct))
		}
		if res.Limit.BiocharLevel != "" {
			fmt.Fprintf(&b, "- Biochar potential level: %s\n", res.Limit.BiocharLevel)
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func num(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
