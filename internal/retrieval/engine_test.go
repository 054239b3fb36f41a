package retrieval

import (
	"context"
	"strings"
	"testing"

	"github.com/harvestgrid/agrograph-backend/internal/graph"
	"github.com/harvestgrid/agrograph-backend/internal/platform/logger"
)

// fakeStore dispatches canned rows per sub-lookup, keyed off the relationship
// or label each lookup pattern is built around.
type fakeStore struct {
	rows  map[string][]map[string]any
	errs  map[string]error
	calls []string
}

func lookupName(cypher string) string {
	switch {
	case strings.Contains(cypher, "HAS_RESIDUE"):
		return "residues"
	case strings.Contains(cypher, "(s:Soil"):
		return "soil"
	case strings.Contains(cypher, "APPLIES_TO"):
		return "policies"
	case strings.Contains(cypher, "HAS_LIMIT"):
		return "limits"
	default:
		return "unknown"
	}
}

func (f *fakeStore) Read(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	name := lookupName(cypher)
	f.calls = append(f.calls, name)
	if err := f.errs[name]; err != nil {
		return nil, err
	}
	return f.rows[name], nil
}

func (f *fakeStore) Write(ctx context.Context, cypher string, params map[string]any) (graph.WriteSummary, error) {
	return graph.WriteSummary{}, nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return log
}

func riceRows() []map[string]any {
	return []map[string]any{{
		"crop":          "Rice",
		"residue_type":  "straw",
		"residue_ratio": 1.5,
		"nutrient_n":    0.6,
		"nutrient_p":    0.1,
		"nutrient_k":    1.2,
		"common_uses":   "mulch",
	}}
}

func TestRetrieveMergesAllSections(t *testing.T) {
	store := &fakeStore{rows: map[string][]map[string]any{
		"residues": riceRows(),
		"soil":     {{"soil_type": "Clay", "retention_capacity": 0.8}},
		"policies": {{"policy": "Policy_Thanjavur", "compost_subsidy": 500.0, "burning_ban": "Yes"}},
		"limits":   {{"region": "Thanjavur", "compost_capacity": 12.0, "biogas_level": "High"}},
	}}
	svc := NewService(store, testLogger(t))

	res := svc.Retrieve(context.Background(), Query{Crop: "Rice", Region: "Thanjavur", SoilType: "Clay"})
	if len(res.Residues) != 1 || res.Residues[0].ResidueRatio == nil || *res.Residues[0].ResidueRatio != 1.5 {
		t.Fatalf("unexpected residue section: %#v", res.Residues)
	}
	if res.Soil == nil || res.Soil.SoilType != "Clay" {
		t.Fatalf("unexpected soil section: %#v", res.Soil)
	}
	if len(res.Policies) != 1 || res.Policies[0].Policy != "Policy_Thanjavur" {
		t.Fatalf("unexpected policy section: %#v", res.Policies)
	}
	if res.Limit == nil || res.Limit.Region != "Thanjavur" {
		t.Fatalf("unexpected limit section: %#v", res.Limit)
	}
	if res.Empty() || res.Unavailable() {
		t.Fatalf("populated result reported empty/unavailable")
	}
}

func TestRetrieveSkipsSubLookupsForBlankFields(t *testing.T) {
	store := &fakeStore{rows: map[string][]map[string]any{"residues": riceRows()}}
	svc := NewService(store, testLogger(t))

	res := svc.Retrieve(context.Background(), Query{Crop: "Rice"})
	if len(store.calls) != 1 || store.calls[0] != "residues" {
		t.Fatalf("expected only the residue lookup, got %v", store.calls)
	}
	if len(res.Residues) != 1 {
		t.Fatalf("expected residue facts, got %#v", res.Residues)
	}
}

func TestRetrieveSubLookupsAreIndependent(t *testing.T) {
	store := &fakeStore{
		rows: map[string][]map[string]any{
			"residues": riceRows(),
			"policies": {{"policy": "Policy_Salem"}},
		},
		errs: map[string]error{"soil": graph.ErrNotConfigured},
	}
	svc := NewService(store, testLogger(t))

	res := svc.Retrieve(context.Background(), Query{Crop: "Rice", Region: "Salem", SoilType: "Clay"})
	if len(res.Residues) != 1 || len(res.Policies) != 1 {
		t.Fatalf("healthy sub-lookups must still populate: %#v", res)
	}
	if res.Soil != nil {
		t.Fatalf("failed soil lookup must not populate")
	}
	if len(res.Failures) != 1 || res.Failures[0].Lookup != "soil" {
		t.Fatalf("expected one soil failure, got %#v", res.Failures)
	}
	if res.Failures[0].Kind != string(graph.FailureConnection) {
		t.Fatalf("expected connection classification, got %s", res.Failures[0].Kind)
	}
	if res.Unavailable() {
		t.Fatalf("partial context is available, not unavailable")
	}
}

func TestRetrieveIsCaseSensitive(t *testing.T) {
	store := &fakeStore{rows: map[string][]map[string]any{}}
	// The fake emulates the store's exact-match contract.
	exactOnly := &caseSensitiveStore{inner: store}
	svc := NewService(exactOnly, testLogger(t))

	res := svc.Retrieve(context.Background(), Query{Crop: "rice"})
	if len(res.Residues) != 0 {
		t.Fatalf("lowercase key must not match, got %#v", res.Residues)
	}
	if len(res.Failures) != 0 {
		t.Fatalf("a miss is empty, not a failure: %#v", res.Failures)
	}

	res = svc.Retrieve(context.Background(), Query{Crop: "Rice"})
	if len(res.Residues) != 1 {
		t.Fatalf("exact key must match, got %#v", res.Residues)
	}
}

type caseSensitiveStore struct {
	inner *fakeStore
}

func (c *caseSensitiveStore) Read(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	if params["crop"] == "Rice" {
		return riceRows(), nil
	}
	return nil, nil
}

func (c *caseSensitiveStore) Write(ctx context.Context, cypher string, params map[string]any) (graph.WriteSummary, error) {
	return graph.WriteSummary{}, nil
}

func TestRetrieveUnknownRegionLimitIsEmptyNotError(t *testing.T) {
	store := &fakeStore{rows: map[string][]map[string]any{}}
	svc := NewService(store, testLogger(t))

	res := svc.Retrieve(context.Background(), Query{Region: "Nowhere"})
	if res.Limit != nil || len(res.Policies) != 0 {
		t.Fatalf("unknown region must yield empty sections: %#v", res)
	}
	if len(res.Failures) != 0 {
		t.Fatalf("empty is not a failure: %#v", res.Failures)
	}
	if res.Unavailable() {
		t.Fatalf("empty-but-reachable is not unavailable")
	}
}

func TestRetrieveRecoversAfterStoreFailure(t *testing.T) {
	store := &fakeStore{
		rows: map[string][]map[string]any{"residues": riceRows()},
		errs: map[string]error{
			"residues": graph.ErrNotConfigured,
			"policies": graph.ErrNotConfigured,
			"limits":   graph.ErrNotConfigured,
		},
	}
	svc := NewService(store, testLogger(t))

	down := svc.Retrieve(context.Background(), Query{Crop: "Rice", Region: "Salem"})
	if !down.Unavailable() {
		t.Fatalf("expected unavailable result while store is down: %#v", down)
	}
	if len(down.Failures) != 3 {
		t.Fatalf("expected all attempted sub-lookups to fail, got %#v", down.Failures)
	}

	store.errs = nil
	up := svc.Retrieve(context.Background(), Query{Crop: "Rice", Region: "Salem"})
	if up.Unavailable() || len(up.Residues) != 1 {
		t.Fatalf("guard must not stay degraded after recovery: %#v", up)
	}
}

func TestRetrieveTrimsQueryKeys(t *testing.T) {
	store := &fakeStore{rows: map[string][]map[string]any{"residues": riceRows()}}
	svc := NewService(store, testLogger(t))

	res := svc.Retrieve(context.Background(), Query{Crop: "  Rice  "})
	if len(store.calls) != 1 {
		t.Fatalf("expected one lookup, got %v", store.calls)
	}
	if len(res.Residues) != 1 {
		t.Fatalf("trimmed key must be looked up: %#v", res)
	}
}
