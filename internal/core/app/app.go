package app

import (
	"context"
	"log/slog"
	"os"

	"stanlang/internal/core/config"
	"stanlang/internal/core/errors"
	"stanlang/internal/core/manifest"
	"stanlang/internal/core/ports"
	"stanlang/internal/core/vocab"
	"stanlang/internal/engine/catalog"
	"stanlang/internal/shared/observability"
	"stanlang/internal/shared/util"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type App struct {
	Config     *config.Config
	Vocabulary *vocab.Vocabulary

	logger *slog.Logger
	hook   func(catalog.Diagnostic)
}

var _ ports.ManifestGenerator = (*App)(nil)

type Option func(*App)

func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithDiagnosticHook forwards every build diagnostic to fn as it is raised.
func WithDiagnosticHook(fn func(catalog.Diagnostic)) Option {
	return func(a *App) {
		a.hook = fn
	}
}

func New(cfg *config.Config, voc *vocab.Vocabulary, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New(errors.CodeValidationError, "config is required")
	}
	if voc == nil {
		return nil, errors.New(errors.CodeValidationError, "vocabulary is required")
	}

	a := &App{
		Config:     cfg,
		Vocabulary: voc,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}

	// Surface bad exclusion patterns at construction time.
	if _, err := a.newBuilder(a.logger); err != nil {
		return nil, errors.Wrap(err, errors.CodeValidationError, "function_like_keywords")
	}
	return a, nil
}

func (a *App) newBuilder(logger *slog.Logger) (*catalog.Builder, error) {
	opts := []catalog.Option{
		catalog.WithLogger(logger),
		catalog.WithDistributionMarker(a.Config.Source.DistributionMarker),
	}
	if a.hook != nil {
		opts = append(opts, catalog.WithDiagnosticHook(a.hook))
	}
	return catalog.NewBuilder(a.Vocabulary.FunctionLikeKeywords, opts...)
}

// Run converts the function table at src into a manifest written to dst.
// The version is taken from the src file name before anything is read, and
// dst is only replaced once the whole manifest has been rendered.
func (a *App) Run(ctx context.Context, src, dst string) (ports.Summary, error) {
	runID := uuid.NewString()
	logger := a.logger.With("run_id", runID)

	ctx, span := observability.Tracer.Start(ctx, "app.Run", trace.WithAttributes(
		attribute.String("run_id", runID),
		attribute.String("source", src),
	))
	defer span.End()

	summary, err := a.run(ctx, logger, src, dst)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "manifest generation failed")
		return ports.Summary{}, err
	}
	summary.RunID = runID
	span.SetAttributes(attribute.String("version", summary.Version))
	return summary, nil
}

func (a *App) run(ctx context.Context, logger *slog.Logger, src, dst string) (ports.Summary, error) {
	version, err := manifest.ExtractVersion(src, a.Config.Source.VersionPattern)
	if err != nil {
		return ports.Summary{}, err
	}
	logger.Debug("detected version", "version", version, "path", src)

	rows, err := a.readRows(src)
	if err != nil {
		return ports.Summary{}, err
	}

	builder, err := a.newBuilder(logger)
	if err != nil {
		return ports.Summary{}, errors.Wrap(err, errors.CodeValidationError, "function_like_keywords")
	}
	res, err := builder.Build(ctx, rows)
	if err != nil {
		return ports.Summary{}, errors.AddContext(err, errors.CtxOperation, "build")
	}

	data, err := manifest.Render(manifest.Assemble(version, a.Vocabulary, res))
	if err != nil {
		return ports.Summary{}, err
	}
	if err := manifest.WriteFile(dst, data); err != nil {
		return ports.Summary{}, errors.AddContext(
			errors.Wrap(err, errors.CodeInternal, "write manifest"), errors.CtxPath, dst)
	}

	summary := ports.Summary{
		Version:       version,
		Output:        dst,
		Rows:          len(rows),
		Functions:     len(res.Functions),
		Overloads:     res.Functions.Overloads(),
		Distributions: len(res.Distributions),
		Constants:     len(res.Constants),
		Diagnostics:   res.Diagnostics,
	}
	logger.Info("manifest written",
		"path", dst,
		"version", summary.Version,
		"functions", summary.Functions,
		"overloads", summary.Overloads,
		"distributions", summary.Distributions,
		"constants", summary.Constants,
		"diagnostics", len(summary.Diagnostics),
	)
	a.logMetrics(ctx, logger)
	return summary, nil
}

// logMetrics reports the process-wide metric totals at debug level.
func (a *App) logMetrics(ctx context.Context, logger *slog.Logger) {
	if !logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	totals, err := observability.Totals(prometheus.DefaultGatherer)
	if err != nil {
		logger.Debug("failed to gather metrics", "error", err)
		return
	}
	attrs := make([]any, 0, 2*len(totals))
	for _, name := range util.SortedStringKeys(totals) {
		attrs = append(attrs, name, totals[name])
	}
	logger.Debug("run metrics", attrs...)
}

func (a *App) readRows(src string) ([]catalog.Row, error) {
	f, err := os.Open(src)
	if err != nil {
		code := errors.CodeInternal
		if os.IsNotExist(err) {
			code = errors.CodeNotFound
		}
		return nil, errors.AddContext(errors.Wrap(err, code, "open function table"), errors.CtxPath, src)
	}
	defer f.Close()

	rows, err := catalog.ReadRows(f, a.Config.Source)
	if err != nil {
		return nil, errors.AddContext(err, errors.CtxPath, src)
	}
	return rows, nil
}
