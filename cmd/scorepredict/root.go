package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/uyouii/score-predictor/config"
	"github.com/uyouii/score-predictor/utils"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

var version = "dev"

type rootOptions struct {
	configPath string
	debug      bool
	cfg        *config.Config
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "scorepredict",
		Short: "Predict sports scores with a normal model",
		Long: `scorepredict fits a normal distribution to a team's past scores,
simulates future scores and reports the probability of a score or a
range of scores.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if opts.debug {
				cfg.Log.Level = "debug"
			}
			development := cfg.Log.Development != nil && *cfg.Log.Development
			if _, err := utils.SetupLogger(cfg.Log.Level, development); err != nil {
				return err
			}
			opts.cfg = cfg
			zap.L().Debug("config loaded", zap.String("path", opts.configPath), zap.Any("config", cfg))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"Path to the config file (default ./"+config.DefaultConfigFile+" when present)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newPredictCommand(opts))

	return cmd
}

func execute() error {
	return newRootCommand().Execute()
}

// newSource returns a seeded source, or a clock-seeded one for seed 0.
func newSource(seed uint64) rand.Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.NewSource(seed)
}
