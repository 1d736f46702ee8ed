// Package convert runs the whole layout to CNI conversion: parse, transform,
// validate and generate.
package convert

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"otdconvert/pkg/cfg"
	"otdconvert/pkg/cni"
	"otdconvert/pkg/logging"
	"otdconvert/pkg/metrics"
	"otdconvert/pkg/model"
	"otdconvert/pkg/otd"
	"otdconvert/pkg/transform"
	"otdconvert/pkg/validate"
)

// Options configure ConvertFile.
type Options struct {
	Machine cfg.MachineConfig

	// Logger receives progress and validation findings. Nil discards them.
	Logger *zap.Logger
}

// ParseFile reads an OTD or OTX layout file.
func ParseFile(path string) ([]*model.Schema, error) {
	return otd.ParseFile(path)
}

// Validate checks schemas. Findings are returned in the result; only an
// empty schema list is an error.
func Validate(schemas []*model.Schema) (*validate.Result, error) {
	return validate.Schemas(schemas)
}

// Generate writes the CNI document for schemas read from filename.
func Generate(schemas []*model.Schema, filename string, m cfg.MachineConfig) (string, error) {
	return cni.Generate(schemas, filename, m)
}

// Process runs the linear and shape transforms on every schema. Schemas are
// independent and are transformed concurrently; each is changed in place, so
// their order is kept.
func Process(ctx context.Context, schemas []*model.Schema) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range schemas {
		s := s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			transform.Linear(s)
			transform.Shapes(s)
			return nil
		})
	}
	return g.Wait()
}

// Convert converts the layout file at path for the given machine number with
// the default tools.
func Convert(path string, machine int) (string, error) {
	return ConvertFile(context.Background(), path, Options{Machine: cfg.NewMachine(machine)})
}

// ConvertFile parses, transforms, validates and generates in one call. A
// failing validation is logged but does not stop generation.
func ConvertFile(ctx context.Context, path string, opts Options) (cniText string, err error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	logger = logger.With(zap.String("run_id", uuid.New().String()), zap.String("input", path))

	start := time.Now()
	var schemas []*model.Schema
	defer func() {
		metrics.RecordConversion(err, len(schemas), time.Since(start))
	}()

	schemas, err = ParseFile(path)
	if err != nil {
		return "", err
	}
	logger = logger.With(zap.Int("schema_count", len(schemas)))
	logger.Debug("parsed layout")

	if err := Process(ctx, schemas); err != nil {
		return "", err
	}
	for i, s := range schemas {
		logger.Debug("transformed schema",
			zap.Int("schema", i+1),
			zap.Int("linear_cuts", len(s.LinearCuts)),
			zap.Int("active_linear_cuts", s.ActiveLinearCuts()),
			zap.Int("pieces", len(s.Pieces)),
			zap.Int("shapes", len(s.Shapes)))
	}

	result, err := Validate(schemas)
	if err != nil {
		return "", err
	}
	metrics.RecordFindings(len(result.Warnings), len(result.Errors))
	for _, w := range result.Warnings {
		logger.Warn(w)
	}
	for _, e := range result.Errors {
		logger.Error(e)
	}

	return Generate(schemas, filepath.Base(path), opts.Machine)
}
