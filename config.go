// Copyright © 2026, Docsift Authors.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package outline

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/docsift/outline/logger"
)

// maxWeightSum bounds the combined scorer weight mass. Scores are clamped to
// 1.0, so a larger sum would let any single feature saturate the score.
const maxWeightSum = 1.5

// ParsingMode controls how a batch reacts to a failing document.
type ParsingMode string

const (
	Strict     ParsingMode = "strict"
	BestEffort ParsingMode = "best-effort"
)

// DetectionMode selects the heading-detection strategy.
type DetectionMode string

const (
	// Auto uses font-aware detection when font metadata is available and
	// falls back to plain-text detection otherwise.
	Auto      DetectionMode = "auto"
	FontAware DetectionMode = "font-aware"
	PlainText DetectionMode = "plain-text"
)

// Config carries the processing limits and the detection policy. The scoring
// weights and score cutoffs are empirically tuned; they are exposed here as
// tunable policy rather than hardcoded.
type Config struct {
	MaxConcurrentDocs int           `yaml:"max_concurrent_docs" validate:"min=1,max=10"`
	MaxWorkersPerRun  int           `yaml:"max_workers_per_run" validate:"min=1,max=10"`
	WorkerTimeout     time.Duration `yaml:"worker_timeout" validate:"required"`
	ParsingMode       ParsingMode   `yaml:"parsing_mode" validate:"oneof=strict best-effort"`
	DetectionMode     DetectionMode `yaml:"detection_mode" validate:"oneof=auto font-aware plain-text"`
	MaxRetries        int           `yaml:"max_retries" validate:"min=0,max=3"`

	// Scoring policy.
	Weights            Weights `yaml:"weights"`
	CandidateFloor     float64 `yaml:"candidate_floor" validate:"min=0,max=1"`
	ThresholdMin       float64 `yaml:"threshold_min" validate:"min=0,max=1"`
	ThresholdMax       float64 `yaml:"threshold_max" validate:"min=0,max=1,gtefield=ThresholdMin"`
	MaxHeadingsPerPage int     `yaml:"max_headings_per_page" validate:"min=1,max=50"`
	TitleScanLines     int     `yaml:"title_scan_lines" validate:"min=1,max=1000"`

	DebugOn bool           `yaml:"debug"`
	Logger  logger.LogFunc `yaml:"-"`
}

// NewDefaultConfig returns the tuned defaults.
func NewDefaultConfig() *Config {
	return &Config{
		MaxConcurrentDocs:  5,
		MaxWorkersPerRun:   1,
		WorkerTimeout:      10 * time.Second,
		ParsingMode:        BestEffort,
		DetectionMode:      Auto,
		MaxRetries:         1,
		Weights:            DefaultWeights(),
		CandidateFloor:     0.3,
		ThresholdMin:       0.5,
		ThresholdMax:       0.7,
		MaxHeadingsPerPage: 8,
		TitleScanLines:     100,
		DebugOn:            false,
	}
}

func (cfg *Config) Validate() error {
	logger.Debug("Validating Config Object")
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return err
	}
	if sum := cfg.Weights.Sum(); sum > maxWeightSum {
		return fmt.Errorf("scorer weights sum to %.2f, must not exceed %.2f", sum, maxWeightSum)
	}
	return nil
}
