package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tripgraph/tripgraph"
	"github.com/tripgraph/tripgraph/planner"
)

func askCommand() *cli.Command {
	flags := append(connectionFlags(),
		&cli.StringFlag{
			Name:     "intent",
			Usage:    "intent category (search, recommendation, question)",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "entities",
			Usage: "entity slots as a JSON object",
			Value: "{}",
		},
	)

	return &cli.Command{
		Name:  "ask",
		Usage: "Run the retrieval planner for a classified intent",
		Description: "Takes the intent category and entity slots an NLU front end " +
			"extracted from a user query, selects the matching graph query " +
			"and prints its rows.",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger := newLogger(cmd.Bool("verbose"))
			defer func() { _ = logger.Sync() }()

			var entities tripgraph.Entities

			err := json.Unmarshal([]byte(cmd.String("entities")), &entities)
			if err != nil {
				return fmt.Errorf("ask: parse entities: %w", err)
			}

			store, err := openStore(ctx, cmd, loadedConfig())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ex := planner.NewExecutor(store, planner.WithLogger(logger))

			rows, err := ex.Execute(ctx, tripgraph.Intent{Category: cmd.String("intent")}, entities)
			if err != nil {
				return err
			}

			fmt.Print(renderRows(rows))

			return nil
		},
	}
}
