package main

import (
	"context"
	"fmt"
	"os"

	"github.com/harvestgrid/agrograph-backend/internal/graph"
	"github.com/harvestgrid/agrograph-backend/internal/handlers"
	"github.com/harvestgrid/agrograph-backend/internal/platform/envutil"
	"github.com/harvestgrid/agrograph-backend/internal/platform/logger"
	"github.com/harvestgrid/agrograph-backend/internal/platform/neo4jdb"
	"github.com/harvestgrid/agrograph-backend/internal/retrieval"
	"github.com/harvestgrid/agrograph-backend/internal/server"
)

func main() {
	logMode := envutil.String("LOG_MODE", "development")
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Graph store. Startup proceeds without it: the retrieval path degrades
	// to "no contextual data" until the store comes back.
	neo4jClient, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		log.Warn("Neo4j init failed, serving without graph context", "error", err)
		neo4jClient = nil
	}
	if neo4jClient == nil {
		log.Warn("Neo4j not configured, serving without graph context")
	} else {
		defer neo4jClient.Close(context.Background())
	}
	store := graph.NewStore(neo4jClient, log)

	// Optional formatted-context cache.
	cache, err := retrieval.NewCacheFromEnv(log)
	if err != nil {
		log.Warn("Context cache init failed, serving uncached", "error", err)
		cache = nil
	}
	defer cache.Close()

	contextService := retrieval.NewService(store, log)
	contextHandler := handlers.NewContextHandler(log, contextService, cache)

	router := server.NewRouter(server.RouterConfig{
		ContextHandler: contextHandler,
	})

	port := envutil.String("PORT", "8080")
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
