package graph

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type recordingQuerier struct {
	writes   []string
	writeErr error
}

func (r *recordingQuerier) Write(ctx context.Context, cypher string, params map[string]any) (WriteSummary, error) {
	r.writes = append(r.writes, cypher)
	return WriteSummary{}, r.writeErr
}

func (r *recordingQuerier) Read(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	return nil, nil
}

func TestEnsureConstraintsCoversEveryIdentityRule(t *testing.T) {
	q := &recordingQuerier{}
	if err := EnsureConstraints(context.Background(), q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.writes) != 6 {
		t.Fatalf("expected 6 constraints, got %d", len(q.writes))
	}
	all := strings.Join(q.writes, "\n")
	for _, want := range []string{
		"(c:Crop) REQUIRE c.name IS UNIQUE",
		"(r:Residue) REQUIRE (r.crop_name, r.type) IS UNIQUE",
		"(s:Soil) REQUIRE s.type IS UNIQUE",
		"(reg:Region) REQUIRE reg.name IS UNIQUE",
		"(p:Policy) REQUIRE p.name IS UNIQUE",
		"(b:BiogasLimit) REQUIRE b.region IS UNIQUE",
	} {
		if !strings.Contains(all, want) {
			t.Fatalf("missing constraint %q", want)
		}
	}
	for _, stmt := range q.writes {
		if !strings.Contains(stmt, "IF NOT EXISTS") {
			t.Fatalf("constraint must be idempotent: %s", stmt)
		}
	}
}

func TestEnsureConstraintsFailsFast(t *testing.T) {
	q := &recordingQuerier{writeErr: errors.New("not allowed")}
	err := EnsureConstraints(context.Background(), q)
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(q.writes) != 1 {
		t.Fatalf("expected halt after first rejected constraint, got %d writes", len(q.writes))
	}
}
