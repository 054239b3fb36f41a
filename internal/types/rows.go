package types

// Row records parsed from the tabular sources. Identity-key fields are plain
// strings (trimmed, never case-normalized); numeric attributes are pointers so
// an unparseable source cell lands in the graph as null rather than zero.

type CropRow struct {
	Crop        string
	ResidueType string

	ResidueRatio *float64
	NutrientN    *float64
	NutrientP    *float64
	NutrientK    *float64
	CommonUses   string
}

type SoilRow struct {
	SoilType          string
	RetentionCapacity *float64
}

type PolicyRow struct {
	Region     string
	PolicyName string

	CompostSubsidy *float64
	BiogasSubsidy  *float64
	CO2Limit       *float64
	BurningBan     string
}

type LimitRow struct {
	Region string

	BiogasScore     *float64
	BiogasLevel     string
	CompostCapacity *float64
	BiocharLimitPct *float64
	BiocharLevel    string
}
