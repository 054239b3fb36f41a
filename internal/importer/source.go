package importer

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/harvestgrid/agrograph-backend/internal/types"
)

// Expected column names, matched exactly (no synonym tolerance). A source
// missing a required column fails its whole stage.

var (
	cropColumns   = []string{"Crop", "Residue_Type", "Residue_Factor", "N_pct", "P_pct", "K_pct", "Common_Use"}
	soilColumns   = []string{"Soil_Type", "Retention_Capacity"}
	policyColumns = []string{"Region", "Compost_Subsidy_INR_per_t", "Biogas_Subsidy_pct", "CO2_Limit_t_per_ha", "Burning_Ban"}
	limitColumns  = []string{"District", "Biogas_Production_Score", "Biogas_Limit_Level", "Compost_Capacity_t_per_day", "Biochar_Limit_pct", "Biochar_Level"}
)

// Policy_Name is optional: the upstream policy source keys rows by region and
// the importer derives "Policy_<region>" when the column is absent or blank.
const policyNameColumn = "Policy_Name"

type table struct {
	index map[string]int
	rows  [][]string
}

func (t *table) cell(row []string, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func readTable(path string, required []string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse source %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("source %s: missing header row", path)
	}

	header := records[0]
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		index[name] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("source %s: missing required column %q", path, name)
		}
	}
	return &table{index: index, rows: records[1:]}, nil
}

// parseFloat returns nil for blank or unparseable cells: the attribute lands
// in the graph as null, the row itself is not rejected.
func parseFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func LoadCropRows(path string) ([]types.CropRow, error) {
	t, err := readTable(path, cropColumns)
	if err != nil {
		return nil, err
	}
	out := make([]types.CropRow, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, types.CropRow{
			Crop:         t.cell(row, "Crop"),
			ResidueType:  t.cell(row, "Residue_Type"),
			ResidueRatio: parseFloat(t.cell(row, "Residue_Factor")),
			NutrientN:    parseFloat(t.cell(row, "N_pct")),
			NutrientP:    parseFloat(t.cell(row, "P_pct")),
			NutrientK:    parseFloat(t.cell(row, "K_pct")),
			CommonUses:   t.cell(row, "Common_Use"),
		})
	}
	return out, nil
}

func LoadSoilRows(path string) ([]types.SoilRow, error) {
	t, err := readTable(path, soilColumns)
	if err != nil {
		return nil, err
	}
	out := make([]types.SoilRow, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, types.SoilRow{
			SoilType:          t.cell(row, "Soil_Type"),
			RetentionCapacity: parseFloat(t.cell(row, "Retention_Capacity")),
		})
	}
	return out, nil
}

func LoadPolicyRows(path string) ([]types.PolicyRow, error) {
	t, err := readTable(path, policyColumns)
	if err != nil {
		return nil, err
	}
	out := make([]types.PolicyRow, 0, len(t.rows))
	for _, row := range t.rows {
		region := t.cell(row, "Region")
		name := t.cell(row, policyNameColumn)
		if name == "" && region != "" {
			name = "Policy_" + region
		}
		out = append(out, types.PolicyRow{
			Region:         region,
			PolicyName:     name,
			CompostSubsidy: parseFloat(t.cell(row, "Compost_Subsidy_INR_per_t")),
			BiogasSubsidy:  parseFloat(t.cell(row, "Biogas_Subsidy_pct")),
			CO2Limit:       parseFloat(t.cell(row, "CO2_Limit_t_per_ha")),
			BurningBan:     t.cell(row, "Burning_Ban"),
		})
	}
	return out, nil
}

func LoadLimitRows(path string) ([]types.LimitRow, error) {
	t, err := readTable(path, limitColumns)
	if err != nil {
		return nil, err
	}
	out := make([]types.LimitRow, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, types.LimitRow{
			Region:          t.cell(row, "District"),
			BiogasScore:     parseFloat(t.cell(row, "Biogas_Production_Score")),
			BiogasLevel:     t.cell(row, "Biogas_Limit_Level"),
			CompostCapacity: parseFloat(t.cell(row, "Compost_Capacity_t_per_day")),
			BiocharLimitPct: parseFloat(t.cell(row, "Biochar_Limit_pct")),
			BiocharLevel:    t.cell(row, "Biochar_Level"),
		})
	}
	return out, nil
}
