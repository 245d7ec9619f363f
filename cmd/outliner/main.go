// Copyright © 2026, Docsift Authors.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Command outliner scans a directory for PDF files and writes a
// <stem>.json outline next to each, containing the detected title and the
// H1-H3 heading hierarchy with page numbers.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/docsift/outline"
	"github.com/docsift/outline/logger"
	"github.com/docsift/outline/tracer"
)

func main() {
	var (
		inputDir   = flag.String("input", ".", "directory to scan for *.pdf files")
		outputDir  = flag.String("output", "", "directory for the .json outputs (default: input directory)")
		configPath = flag.String("config", "", "optional YAML config overlay (weights, thresholds, limits)")
		mode       = flag.String("mode", "", "detection mode override: auto, font-aware or plain-text")
		debug      = flag.Bool("debug", false, "log debug output to stderr and dump the trace on failure")
	)
	flag.Parse()

	cfg := outline.NewDefaultConfig()
	cfg.MaxWorkersPerRun = 4
	if *configPath != "" {
		if err := applyConfigFile(cfg, *configPath); err != nil {
			log.Fatalf("config: %v", err)
		}
	}
	if *mode != "" {
		cfg.DetectionMode = outline.DetectionMode(*mode)
	}
	cfg.DebugOn = *debug
	cfg.Logger = stderrLogger(*debug)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	if *outputDir == "" {
		*outputDir = *inputDir
	}
	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		log.Fatalf("create output directory: %v", err)
	}

	paths, err := filepath.Glob(filepath.Join(*inputDir, "*.pdf"))
	if err != nil {
		log.Fatalf("scan input directory: %v", err)
	}
	if len(paths) == 0 {
		log.Printf("no PDF files found in %s", *inputDir)
		return
	}
	log.Printf("found %d PDF files to process", len(paths))

	proc := outline.NewProcessor(cfg)
	results, err := proc.ProcessAll(context.Background(), paths)
	if err != nil {
		if *debug {
			tracer.Flush()
		}
		log.Fatalf("processing failed: %v", err)
	}

	succeeded, failed := 0, 0
	for _, r := range results {
		if r.Err != nil {
			log.Printf("failed to process %s: %v", r.Path, r.Err)
			failed++
			continue
		}
		out := outputPath(*outputDir, r.Path)
		if err := writeResult(out, r.Result); err != nil {
			log.Printf("failed to write %s: %v", out, err)
			failed++
			continue
		}
		log.Printf("processed %s -> %s (%d headings)", filepath.Base(r.Path), filepath.Base(out), len(r.Result.Outline))
		succeeded++
	}

	log.Printf("processing completed: %d successful, %d failed", succeeded, failed)
	if failed > 0 {
		if *debug {
			tracer.Flush()
		}
		os.Exit(1)
	}
	tracer.Reset()
}

// applyConfigFile overlays a YAML file onto the default config. Only keys
// present in the file are changed.
func applyConfigFile(cfg *outline.Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func outputPath(dir, pdfPath string) string {
	stem := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return filepath.Join(dir, stem+".json")
}

func writeResult(path string, res outline.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// stderrLogger adapts the standard log package to the library's LogFunc.
// Debug messages are dropped unless -debug is set.
func stderrLogger(debug bool) logger.LogFunc {
	return func(level logger.LogLevel, msg string, keyvals ...interface{}) {
		if level == logger.DebugLevel && !debug {
			return
		}
		if len(keyvals) > 0 {
			log.Printf("[%s] %s %v", level, msg, keyvals)
			return
		}
		log.Printf("[%s] %s", level, msg)
	}
}
