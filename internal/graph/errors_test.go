package graph

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
)

func TestClassifyTimeout(t *testing.T) {
	f := Classify(fmt.Errorf("read soil: %w", context.DeadlineExceeded))
	if f.Kind != FailureTimeout {
		t.Fatalf("expected timeout, got %s", f.Kind)
	}
}

func TestClassifyNotConfigured(t *testing.T) {
	f := Classify(ErrNotConfigured)
	if f.Kind != FailureConnection {
		t.Fatalf("expected connection, got %s", f.Kind)
	}
}

func TestClassifyConstraintViolation(t *testing.T) {
	err := &db.Neo4jError{Code: "Neo.ClientError.Schema.ConstraintValidationFailed", Msg: "already exists"}
	f := Classify(fmt.Errorf("write crops: %w", err))
	if f.Kind != FailureConstraint {
		t.Fatalf("expected constraint, got %s", f.Kind)
	}
}

func TestClassifyAuthAsConnection(t *testing.T) {
	err := &db.Neo4jError{Code: "Neo.ClientError.Security.Unauthorized", Msg: "bad credentials"}
	f := Classify(err)
	if f.Kind != FailureConnection {
		t.Fatalf("expected connection, got %s", f.Kind)
	}
}

func TestClassifyUnknownIsQuery(t *testing.T) {
	f := Classify(errors.New("syntax error near MATCH"))
	if f.Kind != FailureQuery {
		t.Fatalf("expected query, got %s", f.Kind)
	}
}

func TestClassifyIsStable(t *testing.T) {
	first := Classify(ErrNotConfigured)
	second := Classify(first)
	if second != first {
		t.Fatalf("expected already-classified failure to pass through")
	}
	if !errors.Is(second, ErrNotConfigured) {
		t.Fatalf("expected failure to unwrap to original error")
	}
}
