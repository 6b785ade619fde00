package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/florelab/bloomforge/pkg/cache"
	"github.com/florelab/bloomforge/pkg/pipeline"
	"github.com/florelab/bloomforge/pkg/store"

	"github.com/florelab/bloomforge/internal/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		mongoURI    string
		mongoDB     string
		redisAddr   string
		redisDB     int
		presetsFile string
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bloomforge HTTP API",
		Long: `Run the bloomforge HTTP API.

Designs are kept in memory unless --mongo-uri points at a MongoDB
instance. The pipeline cache is file-based unless --redis-addr selects a
shared Redis cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(presetsFile)
			if err != nil {
				return err
			}

			byteCache, err := serverCache(cmd.Context(), redisAddr, redisDB, noCache)
			if err != nil {
				return fmt.Errorf("initialize cache: %w", err)
			}

			st, err := serverStore(cmd.Context(), mongoURI, mongoDB)
			if err != nil {
				return fmt.Errorf("initialize store: %w", err)
			}
			defer st.Close(context.Background())

			srv := server.New(server.Config{
				Addr:    addr,
				Runner:  pipeline.NewRunner(byteCache, nil, c.Logger),
				Store:   st,
				Catalog: catalog,
				Logger:  c.Logger,
			})

			printInfo("Serving on %s", addr)
			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection string for design storage")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", "", "MongoDB database name")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis address for a shared pipeline cache")
	cmd.Flags().IntVar(&redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&presetsFile, "presets", "", "TOML file with extra size/material presets")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable pipeline caching")

	return cmd
}

// serverCache picks the pipeline cache backend for the server.
func serverCache(ctx context.Context, redisAddr string, redisDB int, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr, DB: redisDB})
	}
	return newCache(false)
}

// serverStore picks the design store backend for the server.
func serverStore(ctx context.Context, mongoURI, mongoDB string) (store.Store, error) {
	if mongoURI == "" {
		return store.NewMemoryStore(), nil
	}
	return store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURI, Database: mongoDB})
}
