package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-cycle/internal/config"
	"github.com/cwbudde/algo-cycle/internal/logging"
	"github.com/cwbudde/algo-cycle/pipeline"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "run a cycle pipeline and write all columns as CSV",
		Flags: []cli.Flag{
			barsFlag,
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML pipeline description",
			},
			&cli.StringFlag{
				Name:  "price",
				Usage: "price field (close, open, high, low, median, typical, weighted)",
			},
			&cli.StringFlag{
				Name:    "estimator",
				Aliases: []string{"e"},
				Usage:   "cycle estimator, see `cycleinfo list`",
			},
			&cli.StringFlag{
				Name:    "indicator",
				Aliases: []string{"i"},
				Usage:   "adaptive indicator (stochastic, rsi, cci, cg, none)",
			},
			&cli.BoolFlag{
				Name:  "trigger",
				Usage: "add a moving-average trigger line",
			},
			&cli.IntFlag{
				Name:  "precision",
				Usage: "decimals written, -1 for full precision",
				Value: -2,
			},
		},
		Action: runAction,
	}
}

// pipelineConfig loads the optional YAML file and applies flag overrides.
func pipelineConfig(cmd *cli.Command) (config.Pipeline, error) {
	var (
		cfg config.Pipeline
		err error
	)
	if path := cmd.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Default()
	}
	if err != nil {
		return config.Pipeline{}, err
	}

	if v := cmd.String("price"); v != "" {
		cfg.Price = v
	}
	if v := cmd.String("estimator"); v != "" {
		cfg.Estimator.Kind = v
	}
	if v := cmd.String("indicator"); v != "" {
		cfg.Indicator.Name = v
	}
	if cmd.Bool("trigger") {
		cfg.Trigger.Enabled = true
	}
	if p := int(cmd.Int("precision")); p >= -1 {
		cfg.Precision = &p
	}

	if err := cfg.Validate(); err != nil {
		return config.Pipeline{}, err
	}
	return cfg, nil
}

func runAction(_ context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer logging.Sync(logger)

	cfg, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}

	p, err := pipeline.FromConfig(cfg, pipeline.WithLogger(logger))
	if err != nil {
		return err
	}

	bars, err := loadBars(cmd)
	if err != nil {
		return err
	}

	res, err := p.Run(bars)
	if err != nil {
		return err
	}

	logger.Info("analysis complete",
		zap.Int("bars", len(bars)),
		zap.String("estimator", cfg.Estimator.Kind),
		zap.Float64("globalCycle", res.GlobalCycle),
		zap.Float64("crossingPeriod", res.Filtered.CrossingPeriod()),
		zap.Float64("filteredRMS", res.Filtered.RMS),
	)

	if err := res.Set.WriteCSV(cmd.Root().Writer, int32(*cfg.Precision)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
