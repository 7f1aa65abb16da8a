// Package config loads scorepredict.yaml and merges it onto built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/uyouii/score-predictor/chart"
	"github.com/uyouii/score-predictor/common"
	"github.com/uyouii/score-predictor/model"
	"github.com/uyouii/score-predictor/predictor"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile = "scorepredict.yaml"

	DefaultAddr     = "127.0.0.1:8080"
	DefaultLogLevel = "info"
)

type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

type PredictorConfig struct {
	Mode         string `yaml:"mode,omitempty"`
	DropNegative *bool  `yaml:"drop_negative,omitempty"`
	SampleCount  int    `yaml:"sample_count,omitempty"`
	// Seed 0 seeds from the clock.
	Seed         uint64 `yaml:"seed,omitempty"`
}

type ChartConfig struct {
	Bins        int   `yaml:"bins,omitempty"`
	Overlay     *bool `yaml:"overlay,omitempty"`
	Smooth      *bool `yaml:"smooth,omitempty"`
	CurvePoints int   `yaml:"curve_points,omitempty"`
}

type LogConfig struct {
	Level       string `yaml:"level,omitempty"`
	Development *bool  `yaml:"development,omitempty"`
}

type Config struct {
	DefaultScores string          `yaml:"default_scores,omitempty"`
	Server        ServerConfig    `yaml:"server,omitempty"`
	Predictor     PredictorConfig `yaml:"predictor,omitempty"`
	Chart         ChartConfig     `yaml:"chart,omitempty"`
	Log           LogConfig       `yaml:"log,omitempty"`
}

func New() *Config {
	return &Config{
		DefaultScores: predictor.DefaultScores,
		Server: ServerConfig{
			Addr: DefaultAddr,
		},
		Predictor: PredictorConfig{
			Mode:         string(model.ContinuousMode),
			DropNegative: boolPtr(false),
			SampleCount:  predictor.DefaultSampleCount,
		},
		Chart: ChartConfig{
			Bins:        chart.DefaultBins,
			Overlay:     boolPtr(true),
			Smooth:      boolPtr(false),
			CurvePoints: chart.DefaultCurvePoints,
		},
		Log: LogConfig{
			Level:       DefaultLogLevel,
			Development: boolPtr(false),
		},
	}
}

// Load reads path and merges it onto the defaults. An empty path tries
// DefaultConfigFile in the working directory and falls back to defaults when
// it does not exist. A named file that is missing is an error.
func Load(path string) (*Config, error) {
	cfg := New()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	fileCfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	mergeConfig(cfg, fileCfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML without applying defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := model.ParseMode(c.Predictor.Mode); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInvalidParameter, err)
	}
	if c.Predictor.SampleCount <= 0 {
		return fmt.Errorf("%w: sample_count must be positive, got %d",
			common.ErrorInvalidParameter, c.Predictor.SampleCount)
	}
	if c.Chart.Bins <= 0 {
		return fmt.Errorf("%w: bins must be positive, got %d", common.ErrorInvalidParameter, c.Chart.Bins)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server addr is empty", common.ErrorInvalidParameter)
	}
	return nil
}

// PredictorOptions converts the config into predictor options.
func (c *Config) PredictorOptions() (predictor.Options, error) {
	mode, err := model.ParseMode(c.Predictor.Mode)
	if err != nil {
		return predictor.Options{}, err
	}
	return predictor.Options{
		Mode:         mode,
		DropNegative: boolValue(c.Predictor.DropNegative),
		SampleCount:  c.Predictor.SampleCount,
		Chart: chart.Options{
			Bins:        c.Chart.Bins,
			Overlay:     boolValue(c.Chart.Overlay),
			Smooth:      boolValue(c.Chart.Smooth),
			CurvePoints: c.Chart.CurvePoints,
		},
	}, nil
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *Config) {
	if src.DefaultScores != "" {
		dst.DefaultScores = src.DefaultScores
	}

	if src.Server.Addr != "" {
		dst.Server.Addr = src.Server.Addr
	}

	if src.Predictor.Mode != "" {
		dst.Predictor.Mode = src.Predictor.Mode
	}
	if src.Predictor.DropNegative != nil {
		dst.Predictor.DropNegative = src.Predictor.DropNegative
	}
	if src.Predictor.SampleCount != 0 {
		dst.Predictor.SampleCount = src.Predictor.SampleCount
	}
	if src.Predictor.Seed != 0 {
		dst.Predictor.Seed = src.Predictor.Seed
	}

	if src.Chart.Bins != 0 {
		dst.Chart.Bins = src.Chart.Bins
	}
	if src.Chart.Overlay != nil {
		dst.Chart.Overlay = src.Chart.Overlay
	}
	if src.Chart.Smooth != nil {
		dst.Chart.Smooth = src.Chart.Smooth
	}
	if src.Chart.CurvePoints != 0 {
		dst.Chart.CurvePoints = src.Chart.CurvePoints
	}

	if src.Log.Level != "" {
		dst.Log.Level = src.Log.Level
	}
	if src.Log.Development != nil {
		dst.Log.Development = src.Log.Development
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func boolValue(b *bool) bool {
	return b != nil && *b
}
