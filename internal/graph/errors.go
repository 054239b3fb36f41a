package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
)

type FailureKind string

const (
	FailureConnection FailureKind = "connection"
	FailureTimeout    FailureKind = "timeout"
	FailureQuery      FailureKind = "query"
	FailureConstraint FailureKind = "constraint"
)

// ErrNotConfigured is returned by a Store whose underlying driver was never
// initialized (NEO4J_URI unset). The guard treats it as a connection failure.
var ErrNotConfigured = errors.New("graph: store not configured")

// Failure is a classified store error. The online retrieval path logs the
// classification and degrades; the offline import path surfaces it hard.
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("graph %s failure: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Classify maps a store error onto the failure taxonomy. Timeouts are folded
// into their own kind so operators can tell a slow store from a down one;
// auth rejections count as connection failures.
func Classify(err error) *Failure {
	if err == nil {
		return nil
	}
	var already *Failure
	if errors.As(err, &already) {
		return already
	}
	kind := FailureQuery
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = FailureTimeout
	case errors.Is(err, ErrNotConfigured):
		kind = FailureConnection
	case neo4j.IsConnectivityError(err):
		kind = FailureConnection
	default:
		var ne *db.Neo4jError
		if errors.As(err, &ne) {
			switch {
			case ne.IsAuthenticationFailed():
				kind = FailureConnection
			case strings.Contains(ne.Code, "ConstraintValidationFailed"),
				strings.Contains(ne.Code, "Schema.ConstraintViolation"):
				kind = FailureConstraint
			}
		}
	}
	return &Failure{Kind: kind, Err: err}
}
