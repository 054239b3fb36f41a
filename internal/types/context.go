package types

// Facts returned by the four context sub-lookups.

type ResidueFact struct {
	Crop         string
	ResidueType  string
	ResidueRatio *float64
	NutrientN    *float64
	NutrientP    *float64
	NutrientK    *float64
	CommonUses   string
}

type SoilFact struct {
	SoilType          string
	RetentionCapacity *float64
}

type PolicyFact struct {
	Policy         string
	CompostSubsidy *float64
	BiogasSubsidy  *float64
	CO2Limit       *float64
	BurningBan     string
}

type LimitFact struct {
	Region          string
	BiogasScore     *float64
	BiogasLevel     string
	CompostCapacity *float64
	BiocharLimitPct *float64
	BiocharLevel    string
}

// LookupFailure records a sub-lookup the availability guard degraded.
type LookupFailure struct {
	Lookup  string
	Kind    string
	Message string
}

// ContextResult is the merged outcome of up to four independent sub-lookups.
// An empty section means "no matching facts"; a section listed in Failures
// means "store unavailable for that lookup" — callers must not conflate the
// two.
type ContextResult struct {
	Region string

	Residues []ResidueFact
	Soil     *SoilFact
	Policies []PolicyFact
	Limit    *LimitFact

	Failures []LookupFailure
}

// Empty reports whether no section carries any facts.
func (r ContextResult) Empty() bool {
	return len(r.Residues) == 0 && r.Soil == nil && len(r.Policies) == 0 && r.Limit == nil
}

// Unavailable reports whether the result carries no facts because the store
// could not be reached, as opposed to the store holding no matching data.
func (r ContextResult) Unavailable() bool {
	return r.Empty() && len(r.Failures) > 0
}
