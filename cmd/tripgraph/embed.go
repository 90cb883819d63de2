package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tripgraph/tripgraph"
	"github.com/tripgraph/tripgraph/embedding"
	"github.com/tripgraph/tripgraph/vector"
)

// ErrNoEmbeddingEndpoint is returned when no embedding service is
// configured.
var ErrNoEmbeddingEndpoint = errors.New("no embedding endpoint configured (use --endpoint or config embedding.endpoint)")

func embeddingFlags() []cli.Flag {
	return append(connectionFlags(),
		&cli.StringFlag{
			Name:    "endpoint",
			Usage:   "embedding service endpoint",
			Sources: cli.EnvVars("EMBEDDING_ENDPOINT"),
		},
		&cli.IntFlag{
			Name:  "dimension",
			Usage: "embedding dimension",
			Value: vector.DefaultDimension,
		},
	)
}

// newVectorManager wires the embedding client and vector manager from
// flags plus config.
func newVectorManager(cmd *cli.Command, cfg *tripgraph.Config, store tripgraph.Querier) (*vector.Manager, error) {
	endpoint := firstOf(cmd.String("endpoint"), cfg.Embedding.Endpoint)
	if endpoint == "" {
		return nil, ErrNoEmbeddingEndpoint
	}

	dimension := int(cmd.Int("dimension"))
	if cfg.Embedding.Dimension != 0 && !cmd.IsSet("dimension") {
		dimension = cfg.Embedding.Dimension
	}

	logger := newLogger(cmd.Bool("verbose"))

	return vector.New(store, embedding.NewClient(endpoint),
		vector.WithLogger(logger),
		vector.WithDimension(dimension),
	), nil
}

func embedCommand() *cli.Command {
	return &cli.Command{
		Name:  "embed",
		Usage: "Create the vector index and populate hotel embeddings",
		Flags: embeddingFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := loadedConfig()

			store, err := openStore(ctx, cmd, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			mgr, err := newVectorManager(cmd, cfg, store)
			if err != nil {
				return err
			}

			err = mgr.EnsureIndex(ctx)
			if err != nil {
				return err
			}

			count, err := mgr.Populate(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("embedded %d hotels\n", count)

			return nil
		},
	}
}

func searchCommand() *cli.Command {
	flags := append(embeddingFlags(),
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"k"},
			Usage:   "number of results",
			Value:   3,
		},
	)

	return &cli.Command{
		Name:      "search",
		Usage:     "Find hotels similar to a free-text description",
		ArgsUsage: "<query text>",
		Flags:     flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			query := cmd.Args().First()
			if query == "" {
				return errors.New("search: query text required")
			}

			cfg := loadedConfig()

			store, err := openStore(ctx, cmd, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			mgr, err := newVectorManager(cmd, cfg, store)
			if err != nil {
				return err
			}

			hits, err := mgr.Search(ctx, query, int(cmd.Int("top")))
			if err != nil {
				return err
			}

			fmt.Print(renderHits(hits))

			return nil
		},
	}
}
