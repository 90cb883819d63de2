package main

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tripgraph/tripgraph"
	"github.com/tripgraph/tripgraph/graphdb"
)

// connectionFlags are shared by every command that talks to the store.
func connectionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "uri",
			Usage:   "graph store connection URI",
			Sources: cli.EnvVars("NEO4J_URI"),
		},
		&cli.StringFlag{
			Name:    "username",
			Aliases: []string{"u"},
			Usage:   "graph store username",
			Sources: cli.EnvVars("NEO4J_USERNAME"),
		},
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"p"},
			Usage:   "graph store password",
			Sources: cli.EnvVars("NEO4J_PASSWORD"),
		},
		&cli.StringFlag{
			Name:    "database",
			Usage:   "graph database name",
			Sources: cli.EnvVars("NEO4J_DATABASE"),
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "verbose output",
		},
	}
}

// loadedConfig returns the nearest config file, or an empty config when
// none exists. Flags always win over file values.
func loadedConfig() *tripgraph.Config {
	cfg, err := tripgraph.LoadConfig(".")
	if err != nil {
		return &tripgraph.Config{}
	}

	return cfg
}

// resolveConn merges connection flags with the config file.
func resolveConn(cmd *cli.Command, cfg *tripgraph.Config) (tripgraph.ConnConfig, error) {
	conn := cfg.Connection

	if v := cmd.String("uri"); v != "" {
		conn.URI = v
	}

	if v := cmd.String("username"); v != "" {
		conn.Username = v
	}

	if v := cmd.String("password"); v != "" {
		conn.Password = v
	}

	if v := cmd.String("database"); v != "" {
		conn.Database = v
	}

	return conn, conn.Validate()
}

// newLogger builds the CLI logger: console output on a terminal, JSON
// otherwise.
func newLogger(verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	config := zap.NewProductionConfig()
	if isatty.IsTerminal(os.Stderr.Fd()) {
		config = zap.NewDevelopmentConfig()
	}

	config.OutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(level)

	logger, err := config.Build()
	if err != nil {
		panic(err)
	}

	return logger
}

// openStore connects to the graph store using flags plus config file.
func openStore(ctx context.Context, cmd *cli.Command, cfg *tripgraph.Config) (*graphdb.Store, error) {
	conn, err := resolveConn(cmd, cfg)
	if err != nil {
		return nil, err
	}

	return graphdb.Open(ctx, conn)
}
