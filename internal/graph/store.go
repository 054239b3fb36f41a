// Package graph is the single seam between this service and Neo4j: a small
// Querier surface (bounded writes and reads), the failure taxonomy the
// availability guard logs against, and the uniqueness constraints that back
// the data model's identity rules.
package graph

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/harvestgrid/agrograph-backend/internal/platform/logger"
	"github.com/harvestgrid/agrograph-backend/internal/platform/neo4jdb"
)

// WriteSummary carries the store counters an importer reports upward.
type WriteSummary struct {
	NodesCreated         int
	RelationshipsCreated int
	PropertiesSet        int
}

// Querier is the store surface the importers and the retrieval engine are
// written against. The Neo4j-backed Store implements it; tests substitute a
// fake to exercise the guard boundary.
type Querier interface {
	Write(ctx context.Context, cypher string, params map[string]any) (WriteSummary, error)
	Read(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error)
}

type Store struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewStore(client *neo4jdb.Client, log *logger.Logger) *Store {
	return &Store{client: client, log: log.With("component", "GraphStore")}
}

func (s *Store) configured() bool {
	return s != nil && s.client != nil && s.client.Driver != nil
}

func (s *Store) timeout() time.Duration {
	if s.client.QueryTimeout > 0 {
		return s.client.QueryTimeout
	}
	return 10 * time.Second
}

func (s *Store) Write(ctx context.Context, cypher string, params map[string]any) (WriteSummary, error) {
	if !s.configured() {
		return WriteSummary{}, ErrNotConfigured
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	session := s.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.client.Database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		summary, err := res.Consume(ctx)
		if err != nil {
			return nil, err
		}
		c := summary.Counters()
		return WriteSummary{
			NodesCreated:         c.NodesCreated(),
			RelationshipsCreated: c.RelationshipsCreated(),
			PropertiesSet:        c.PropertiesSet(),
		}, nil
	})
	if err != nil {
		return WriteSummary{}, err
	}
	return out.(WriteSummary), nil
}

func (s *Store) Read(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	if !s.configured() {
		return nil, ErrNotConfigured
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	session := s.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.client.Database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		var rows []map[string]any
		for res.Next(ctx) {
			rec := res.Record()
			row := make(map[string]any, len(rec.Keys))
			for i, key := range rec.Keys {
				row[key] = rec.Values[i]
			}
			rows = append(rows, row)
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return out.([]map[string]any), nil
}
