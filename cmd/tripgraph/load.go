package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/tripgraph/tripgraph/ingest"
	"github.com/tripgraph/tripgraph/schema"
)

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "init-schema",
		Usage: "Declare the graph uniqueness constraints",
		Flags: connectionFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger := newLogger(cmd.Bool("verbose"))
			defer func() { _ = logger.Sync() }()

			store, err := openStore(ctx, cmd, loadedConfig())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			return schema.New(store, schema.WithLogger(logger)).EnsureConstraints(ctx)
		},
	}
}

func resetCommand() *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Delete the whole graph in bounded batches",
		Flags: connectionFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger := newLogger(cmd.Bool("verbose"))
			defer func() { _ = logger.Sync() }()

			store, err := openStore(ctx, cmd, loadedConfig())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			deleted, err := ingest.New(store, ingest.WithLogger(logger)).ResetAll(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("deleted %d nodes\n", deleted)

			return nil
		},
	}
}

func loadCommand() *cli.Command {
	flags := append(connectionFlags(),
		&cli.StringFlag{Name: "hotels", Usage: "hotels CSV path"},
		&cli.StringFlag{Name: "travellers", Usage: "travellers CSV path"},
		&cli.StringFlag{Name: "reviews", Usage: "reviews CSV path"},
		&cli.StringFlag{Name: "visas", Usage: "visa requirements CSV path"},
		&cli.BoolFlag{Name: "reset", Usage: "clear the graph before loading"},
	)

	return &cli.Command{
		Name:   "load",
		Usage:  "Build the knowledge graph from the CSV source files",
		Flags:  flags,
		Action: runLoad,
	}
}

func runLoad(ctx context.Context, cmd *cli.Command) error {
	logger := newLogger(cmd.Bool("verbose"))
	defer func() { _ = logger.Sync() }()

	cfg := loadedConfig()

	paths := map[string]string{
		"hotels":     firstOf(cmd.String("hotels"), cfg.Data.Hotels),
		"travellers": firstOf(cmd.String("travellers"), cfg.Data.Travellers),
		"reviews":    firstOf(cmd.String("reviews"), cfg.Data.Reviews),
		"visas":      firstOf(cmd.String("visas"), cfg.Data.Visas),
	}
	for name, path := range paths {
		if path == "" {
			return fmt.Errorf("no %s file configured (flag --%s or config data.%s)", name, name, name)
		}
	}

	store, err := openStore(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ing := ingest.New(store, ingest.WithLogger(logger))

	if cmd.Bool("reset") {
		_, err := ing.ResetAll(ctx)
		if err != nil {
			return err
		}
	}

	err = schema.New(store, schema.WithLogger(logger)).EnsureConstraints(ctx)
	if err != nil {
		return err
	}

	hotels, err := readFile(paths["hotels"], ingest.ReadHotels)
	if err != nil {
		return err
	}

	err = ing.LoadHotels(ctx, hotels)
	if err != nil {
		return err
	}

	travellers, err := readFile(paths["travellers"], ingest.ReadTravellers)
	if err != nil {
		return err
	}

	_, err = ing.LoadTravellers(ctx, travellers)
	if err != nil {
		return err
	}

	reviews, err := readFile(paths["reviews"], ingest.ReadReviews)
	if err != nil {
		return err
	}

	stats, err := ing.LoadReviews(ctx, reviews)
	if err != nil {
		return err
	}

	if stats.Skipped > 0 {
		logger.Warn("some review rows referenced unknown travellers or hotels",
			zap.Int("skipped", stats.Skipped))
	}

	visas, err := readFile(paths["visas"], ingest.ReadVisas)
	if err != nil {
		return err
	}

	err = ing.LoadVisaRequirements(ctx, visas)
	if err != nil {
		return err
	}

	return ing.RecomputeHotelScores(ctx)
}

// readFile opens a CSV file and decodes it with the given reader.
func readFile[T any](path string, read func(r io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer func() { _ = f.Close() }()

	return read(f)
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
