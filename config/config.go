// SPDX-License-Identifier: MIT

// Package config loads sigclust run settings from YAML.
//
// Values are layered: Default() first, then the YAML file, then any CLI
// flag overrides applied by the caller. Validate checks the final struct
// with go-playground/validator tags; Options converts it into the
// cluster.Option list consumed by cluster.Run.
//
// Example file:
//
//	limit: 2.0
//	min_clusters: 2
//	max_clusters: 4
//	iterations: 20
//	edgescale: 0.8
//	cluster: KMeans
//	fuzzy: true
//	seed: 42
//	workers: 4
//	diffusion:
//	  self_weight: 1
//	  trajectory_length: 5
//	  heat_time: 1
//	log:
//	  level: info
//	metrics:
//	  textfile: /var/lib/node_exporter/sigclust.prom
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/sigclust/cluster"
	"github.com/katalvlaran/sigclust/diffusion"
	"github.com/katalvlaran/sigclust/kmeans"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

var validate = validator.New()

// Config is the full set of run settings.
type Config struct {
	Limit              float64 `yaml:"limit" validate:"gt=0"`
	MinClusters        int     `yaml:"min_clusters" validate:"gte=2"`
	MaxClusters        int     `yaml:"max_clusters" validate:"gtefield=MinClusters"`
	Iterations         int     `yaml:"iterations" validate:"gt=0"`
	EdgeScale          float64 `yaml:"edgescale" validate:"gte=0"`
	AmplitudeThreshold float64 `yaml:"amplitude_threshold" validate:"gte=0"`
	RemovalDelta       float64 `yaml:"removal_delta" validate:"gte=0"`
	Algorithm          string  `yaml:"cluster" validate:"required"`
	Fuzzy              bool    `yaml:"fuzzy"`
	Seed               int64   `yaml:"seed"`
	Workers            int     `yaml:"workers" validate:"gte=1,lte=256"`

	Diffusion DiffusionConfig `yaml:"diffusion"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// DiffusionConfig tunes the default diffusers.
type DiffusionConfig struct {
	SelfWeight       float64 `yaml:"self_weight"`
	TrajectoryLength int     `yaml:"trajectory_length" validate:"gte=1"`
	HeatTime         float64 `yaml:"heat_time" validate:"gte=0"`
}

// LogConfig selects the zap logger.
type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error dpanic panic fatal"`
	Development bool   `yaml:"development"`
}

// MetricsConfig controls metric export. An empty Textfile disables it.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Limit:              cluster.DefaultLimit,
		MinClusters:        cluster.DefaultKMin,
		MaxClusters:        cluster.DefaultKMax,
		Iterations:         cluster.DefaultMaxIterations,
		EdgeScale:          cluster.DefaultAmbiguityThreshold,
		AmplitudeThreshold: cluster.DefaultAmplitudeThreshold,
		RemovalDelta:       cluster.DefaultRemovalDelta,
		Algorithm:          kmeans.AlgorithmKMeans,
		Fuzzy:              true,
		Seed:               cluster.DefaultSeed,
		Workers:            1,
		Diffusion: DiffusionConfig{
			SelfWeight:       1,
			TrajectoryLength: diffusion.DefaultTrajectoryLength,
			HeatTime:         1,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over Default() and validates the result.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Decode reads YAML from r over Default() and validates the result.
func Decode(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every field against its tag constraints.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}

	return nil
}

// Options converts c into cluster options. The diffusers are built from
// c.Diffusion; logger and metrics are left to the caller.
func (c *Config) Options() []cluster.Option {
	return []cluster.Option{
		cluster.WithLimit(c.Limit),
		cluster.WithClusterRange(c.MinClusters, c.MaxClusters),
		cluster.WithMaxIterations(c.Iterations),
		cluster.WithAmbiguityThreshold(c.EdgeScale),
		cluster.WithAmplitudeThreshold(c.AmplitudeThreshold),
		cluster.WithRemovalDelta(c.RemovalDelta),
		cluster.WithAlgorithm(c.Algorithm),
		cluster.WithFuzzy(c.Fuzzy),
		cluster.WithSeed(c.Seed),
		cluster.WithWorkers(c.Workers),
		cluster.WithDiffuser(&diffusion.Iterative{
			SelfWeight:       c.Diffusion.SelfWeight,
			TrajectoryLength: c.Diffusion.TrajectoryLength,
		}),
		cluster.WithPartialDiffuser(diffusion.HeatKernel{T: c.Diffusion.HeatTime}),
	}
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	e := verrs[0]
	field := e.Namespace()
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", ErrInvalidConfig, field)
	case "gt":
		return fmt.Errorf("%w: %s must be greater than %s", ErrInvalidConfig, field, e.Param())
	case "gte":
		return fmt.Errorf("%w: %s must be at least %s", ErrInvalidConfig, field, e.Param())
	case "lte":
		return fmt.Errorf("%w: %s must not exceed %s", ErrInvalidConfig, field, e.Param())
	case "gtefield":
		return fmt.Errorf("%w: %s must be at least %s", ErrInvalidConfig, field, e.Param())
	case "oneof":
		return fmt.Errorf("%w: %s must be one of [%s]", ErrInvalidConfig, field, e.Param())
	default:
		return fmt.Errorf("%w: %s failed %q", ErrInvalidConfig, field, e.Tag())
	}
}
