// Command lrusim replays synthetic access patterns against
// the caches in this module and a set of baseline caches,
// then reports each cache's hit ratio.
package main

import (
	"fmt"
	"os"

	"github.com/go-kit/log/level"
	"github.com/urfave/cli/v2"
)

const (
	capacityFlag = "capacity"
	lengthFlag   = "length"
	seedFlag     = "seed"
	workersFlag  = "workers"
	patternFlag  = "pattern"
	metricsFlag  = "metrics"
	logLevelFlag = "log.level"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "lrusim",
		Usage: "compare cache hit ratios over synthetic workloads",
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "replay workloads and print a hit ratio table",
				Flags:  runFlags(),
				Action: runAction,
			},
		},
	}
}

func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  capacityFlag,
			Usage: "maximum number of entries per cache",
			Value: defaultCapacity,
		},
		&cli.IntFlag{
			Name:  lengthFlag,
			Usage: "accesses replayed per workload (0 replays each sequence once)",
		},
		&cli.Int64Flag{
			Name:  seedFlag,
			Usage: "seed for the random workloads",
			Value: defaultSeed,
		},
		&cli.IntFlag{
			Name:  workersFlag,
			Usage: "goroutines driving the concurrent cache",
			Value: defaultWorkers,
		},
		&cli.StringFlag{
			Name:  patternFlag,
			Usage: "workload to replay: all, sequential, loop, zipf, or uniform",
			Value: allPatterns,
		},
		&cli.BoolFlag{
			Name:  metricsFlag,
			Usage: "print collected metrics in the Prometheus text format",
		},
		&cli.StringFlag{
			Name:  logLevelFlag,
			Usage: "only log messages with the given severity or above: debug, info, warn, error",
			Value: defaultLogLevel,
		},
	}
}

func runAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger, err := newLogger(c.App.ErrWriter, cfg.LogLevel)
	if err != nil {
		return err
	}
	level.Debug(logger).Log("msg", "loaded configuration", "config", fmt.Sprintf("%+v", cfg))
	sim, err := newSimulator(cfg, logger)
	if err != nil {
		return err
	}
	results, err := sim.run(c.Context)
	if err != nil {
		return err
	}
	writeReport(c.App.Writer, results)
	if cfg.Metrics {
		return sim.writeMetrics(c.App.Writer)
	}
	return nil
}
