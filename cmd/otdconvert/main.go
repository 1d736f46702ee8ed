package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"otdconvert/pkg/cfg"
	"otdconvert/pkg/convert"
	"otdconvert/pkg/logging"
	"otdconvert/pkg/metrics"
	"otdconvert/pkg/model"
)

func main() {
	var input, output, configFile, metricsFile string
	var machine int
	flag.StringVar(&input, "input", "", "OTD or OTX layout file (required)")
	flag.StringVar(&input, "i", "", "shorthand for -input")
	flag.StringVar(&output, "output", "", "CNI output file (default: input with .cni extension)")
	flag.StringVar(&output, "o", "", "shorthand for -output")
	flag.IntVar(&machine, "machine", 0, "machine number (default from config, 130)")
	flag.IntVar(&machine, "m", 0, "shorthand for -machine")
	flag.StringVar(&configFile, "config", "", "config file (default: ./otdconvert.yaml if present)")
	flag.StringVar(&metricsFile, "metrics-file", "", "write conversion metrics to this textfile")
	validateOnly := flag.Bool("validate", false, "validate only, do not generate")
	debug := flag.Bool("debug", false, "print the parsed layout as JSON and exit")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	if input == "" {
		fmt.Fprintf(os.Stderr, "Error: -input is required\n")
		flag.Usage()
		os.Exit(1)
	}

	settings, err := cfg.LoadSettings(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if machine != 0 {
		settings.Machine.Number = machine
	}
	if metricsFile != "" {
		settings.MetricsFile = metricsFile
	}
	if *verbose {
		settings.LogLevel = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:      settings.LogLevel,
		Format:     settings.LogFormat,
		OutputPath: settings.LogOutput,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if !settings.Machine.IsCuttingTable() {
		logger.Warn("Machine number is outside the cutting table range (100-199)",
			zap.Int("machine", settings.Machine.Number))
	}

	start := time.Now()
	schemas, err := run(logger, input, output, settings, *validateOnly, *debug)
	metrics.RecordConversion(err, len(schemas), time.Since(start))
	if settings.MetricsFile != "" {
		if err := metrics.WriteTextfile(settings.MetricsFile); err != nil {
			logger.Warn("Failed to write metrics", zap.Error(err))
		}
	}
	if err != nil {
		logger.Fatal("Conversion failed", zap.Error(err))
	}
}

func run(logger *zap.Logger, input, output string, settings cfg.Settings, validateOnly, debug bool) ([]*model.Schema, error) {
	logger.Info("Processing", zap.String("input", input))

	schemas, err := convert.ParseFile(input)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", input, err)
	}
	logger.Info(fmt.Sprintf("Parsed %d pattern(s)", len(schemas)))

	if err := convert.Process(context.Background(), schemas); err != nil {
		return schemas, err
	}

	result, err := convert.Validate(schemas)
	if err != nil {
		return schemas, err
	}
	metrics.RecordFindings(len(result.Warnings), len(result.Errors))
	for _, w := range result.Warnings {
		logger.Warn(w)
	}
	for _, e := range result.Errors {
		logger.Error(e)
	}
	if !result.Passed {
		return schemas, fmt.Errorf("validation failed: %s", result.Errors[0])
	}

	if debug {
		data, err := json.MarshalIndent(schemas, "", "  ")
		if err != nil {
			return schemas, err
		}
		fmt.Println(string(data))
		return schemas, nil
	}
	if validateOnly {
		logger.Info("Validation passed")
		return schemas, nil
	}

	text, err := convert.Generate(schemas, filepath.Base(input), settings.Machine)
	if err != nil {
		return schemas, err
	}

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".cni"
	}
	if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
		return schemas, fmt.Errorf("failed to write %s: %w", output, err)
	}
	logger.Info("Generated", zap.String("output", output))
	return schemas, nil
}
