// Package main provides the tripgraph CLI tool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

var version = "dev"

func main() {
	app := &cli.Command{
		Name:    "tripgraph",
		Version: version,
		Usage:   "Hotel knowledge-graph ETL and retrieval tool",
		Commands: []*cli.Command{
			schemaCommand(),
			resetCommand(),
			loadCommand(),
			embedCommand(),
			searchCommand(),
			askCommand(),
		},
	}

	err := app.Run(context.Background(), os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
