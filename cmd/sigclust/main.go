// SPDX-License-Identifier: MIT

// Command sigclust clusters a signed edge list and writes one label per node.
//
// Usage:
//
//	sigclust -graph edges.tsv [-config sigclust.yaml] [-out clusters.csv] [flags]
//
// Flags given on the command line override the config file, which in turn
// overrides the built-in defaults. Label 0 marks fuzzy nodes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/katalvlaran/sigclust/cluster"
	"github.com/katalvlaran/sigclust/config"
	"github.com/katalvlaran/sigclust/graphio"
	"github.com/katalvlaran/sigclust/logging"
	"github.com/katalvlaran/sigclust/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "sigclust: %v\n", err)
		}
		os.Exit(1)
	}
}

type cliFlags struct {
	graph, configPath, out string
	loops                  bool

	limit      float64
	kMin, kMax int
	iterations int
	edgeScale  float64
	algorithm  string
	fuzzy      bool
	seed       int64
	workers    int
	logLevel   string
	metrics    string
}

func parseFlags(args []string, stderr io.Writer) (*cliFlags, *flag.FlagSet, error) {
	def := config.Default()
	f := &cliFlags{}
	fs := flag.NewFlagSet("sigclust", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&f.graph, "graph", "", "edge list to cluster (.csv or tab-separated)")
	fs.StringVar(&f.configPath, "config", "", "YAML config file")
	fs.StringVar(&f.out, "out", "", "assignment output file (default stdout)")
	fs.BoolVar(&f.loops, "loops", false, "accept self-loop records")
	fs.Float64Var(&f.limit, "limit", def.Limit, "diffusion convergence limit (percent error)")
	fs.IntVar(&f.kMin, "min", def.MinClusters, "minimum number of clusters")
	fs.IntVar(&f.kMax, "max", def.MaxClusters, "maximum number of clusters")
	fs.IntVar(&f.iterations, "iterations", def.Iterations, "diffusion iteration cap")
	fs.Float64Var(&f.edgeScale, "edgescale", def.EdgeScale, "ambiguity threshold for fuzzy nodes")
	fs.StringVar(&f.algorithm, "cluster", def.Algorithm, "clustering algorithm")
	fs.BoolVar(&f.fuzzy, "fuzzy", def.Fuzzy, "flag fuzzy nodes when diffusion oscillates")
	fs.Int64Var(&f.seed, "seed", def.Seed, "random seed")
	fs.IntVar(&f.workers, "workers", def.Workers, "parallel workers")
	fs.StringVar(&f.logLevel, "log-level", def.Log.Level, "log level (debug, info, warn, error)")
	fs.StringVar(&f.metrics, "metrics-textfile", "", "write prometheus metrics to this file")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if f.graph == "" {
		fs.Usage()

		return nil, nil, errors.New("-graph is required")
	}

	return f, fs, nil
}

// loadConfig layers defaults, the config file and explicitly set flags.
func loadConfig(f *cliFlags, fs *flag.FlagSet) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return nil, err
		}
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "limit":
			cfg.Limit = f.limit
		case "min":
			cfg.MinClusters = f.kMin
		case "max":
			cfg.MaxClusters = f.kMax
		case "iterations":
			cfg.Iterations = f.iterations
		case "edgescale":
			cfg.EdgeScale = f.edgeScale
		case "cluster":
			cfg.Algorithm = f.algorithm
		case "fuzzy":
			cfg.Fuzzy = f.fuzzy
		case "seed":
			cfg.Seed = f.seed
		case "workers":
			cfg.Workers = f.workers
		case "log-level":
			cfg.Log.Level = f.logLevel
		case "metrics-textfile":
			cfg.Metrics.Textfile = f.metrics
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	f, fs, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(f, fs)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	g, err := graphio.ReadEdgeListFile(f.graph, f.loops)
	if err != nil {
		return err
	}
	logger.Info("graph loaded",
		zap.String("path", f.graph),
		zap.Int("vertices", g.VertexCount()),
		zap.Int("edges", g.EdgeCount()))

	reg := metrics.NewRegistry()
	opts := append(cfg.Options(), cluster.WithLogger(logger), cluster.WithMetrics(reg))
	res, runErr := cluster.Run(ctx, g, opts...)

	if cfg.Metrics.Textfile != "" {
		if err = prometheus.WriteToTextfile(cfg.Metrics.Textfile, reg.GetPrometheusRegistry()); err != nil {
			logger.Warn("metrics export failed", zap.Error(err))
		}
	}
	if runErr != nil {
		return runErr
	}

	if f.out == "" {
		return graphio.WriteAssignment(stdout, res.Index, res.Assignment)
	}
	if err = graphio.WriteAssignmentFile(f.out, res.Index, res.Assignment); err != nil {
		return err
	}
	logger.Info("assignment written",
		zap.String("path", f.out),
		zap.String("run_id", res.RunID),
		zap.Int("clusters", res.Search.Chosen),
		zap.Int("fuzzy_nodes", len(res.Flagged)))

	return nil
}
