// Package catalog turns the rows of an exported Stan function table into a
// table of overloads plus the sets of distribution and constant names.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"stanlang/internal/engine/signature"
	"stanlang/internal/shared/observability"
	"stanlang/internal/shared/util"

	"github.com/gobwas/glob"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultDistributionMarker is the argument text that marks a distribution row.
const DefaultDistributionMarker = "~"

// Entry is one overload of a function. Fields are declared in JSON key order.
type Entry struct {
	ArgNames []string `json:"argnames"`
	ArgTypes []string `json:"argtypes"`
	Name     string   `json:"name"`
	Return   string   `json:"return"`
}

// Table maps a function name to its overloads keyed by signature.
type Table map[string]map[string]Entry

// Overloads counts the entries across all names.
func (t Table) Overloads() int {
	n := 0
	for _, overloads := range t {
		n += len(overloads)
	}
	return n
}

// SignatureKey joins argument types with commas; zero arguments give "".
func SignatureKey(argTypes []string) string {
	return strings.Join(argTypes, ",")
}

// Result is the output of one Build. Distributions and Constants are sorted.
type Result struct {
	Functions     Table
	Distributions []string
	Constants     []string
	Diagnostics   []Diagnostic
}

type Option func(*Builder)

// WithDiagnosticHook registers fn to be called for every diagnostic as it is
// raised, in addition to it being collected in the Result.
func WithDiagnosticHook(fn func(Diagnostic)) Option {
	return func(b *Builder) {
		b.hook = fn
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

func WithDistributionMarker(marker string) Option {
	return func(b *Builder) {
		if marker != "" {
			b.marker = marker
		}
	}
}

type Builder struct {
	exclusions []glob.Glob
	marker     string
	hook       func(Diagnostic)
	logger     *slog.Logger
}

// NewBuilder returns a Builder that skips rows whose name matches any of the
// exclusion patterns. Plain names match only themselves.
func NewBuilder(exclusions []string, opts ...Option) (*Builder, error) {
	compiled := make([]glob.Glob, 0, len(exclusions))
	for _, p := range exclusions {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclusion pattern %q: %w", p, err)
		}
		compiled = append(compiled, g)
	}

	b := &Builder{
		exclusions: compiled,
		marker:     DefaultDistributionMarker,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

func (b *Builder) excluded(name string) bool {
	for _, g := range b.exclusions {
		if g.Match(name) {
			return true
		}
	}
	return false
}

type buildState struct {
	functions     Table
	origins       map[string]int
	distributions map[string]bool
	constants     map[string]bool
	diagnostics   []Diagnostic
}

// Build processes rows in order. A later row with the same name and signature
// as an earlier one replaces it. Distribution rows never enter the function
// table, but a name may still own overloads through other rows.
func (b *Builder) Build(ctx context.Context, rows []Row) (*Result, error) {
	ctx, span := observability.Tracer.Start(ctx, "catalog.Build",
		trace.WithAttributes(attribute.Int("rows", len(rows))))
	defer span.End()

	start := time.Now()
	defer func() {
		observability.BuildDuration.Observe(time.Since(start).Seconds())
	}()

	st := &buildState{
		functions:     make(Table),
		origins:       make(map[string]int),
		distributions: make(map[string]bool),
		constants:     make(map[string]bool),
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "build cancelled")
			return nil, err
		}
		b.addRow(st, row)
	}

	distributions := util.SortedStringKeys(st.distributions)
	for _, name := range distributions {
		if _, ok := st.functions[name]; ok {
			b.emit(st, Diagnostic{
				Kind:    KindDistributionOverlap,
				Name:    name,
				Message: "name is both a distribution and a function",
			})
		}
	}

	res := &Result{
		Functions:     st.functions,
		Distributions: distributions,
		Constants:     util.SortedStringKeys(st.constants),
		Diagnostics:   st.diagnostics,
	}
	span.SetAttributes(
		attribute.Int("functions", len(res.Functions)),
		attribute.Int("overloads", res.Functions.Overloads()),
		attribute.Int("distributions", len(res.Distributions)),
		attribute.Int("constants", len(res.Constants)),
		attribute.Int("diagnostics", len(res.Diagnostics)),
	)
	return res, nil
}

func (b *Builder) addRow(st *buildState, row Row) {
	if row.Args == b.marker {
		st.distributions[row.Name] = true
		observability.RowsTotal.WithLabelValues(observability.OutcomeDistribution).Inc()
		return
	}
	if b.excluded(row.Name) {
		b.logger.Debug("skipping function-like keyword", "line", row.Line, "function", row.Name)
		observability.RowsTotal.WithLabelValues(observability.OutcomeExcluded).Inc()
		return
	}

	parsed := signature.ParseArguments(row.Args)
	if parsed.Anomaly {
		observability.ParseAnomaliesTotal.Inc()
		b.emit(st, Diagnostic{
			Kind:    KindParseAnomaly,
			Line:    row.Line,
			Name:    row.Name,
			Args:    row.Args,
			Message: "could not find any arguments; recorded as zero-argument",
		})
	}

	entry := Entry{
		ArgNames: signature.Names(parsed.Params),
		ArgTypes: signature.Types(parsed.Params),
		Name:     row.Name,
		Return:   row.ReturnType,
	}
	key := SignatureKey(entry.ArgTypes)

	overloads, ok := st.functions[row.Name]
	if !ok {
		overloads = make(map[string]Entry)
		st.functions[row.Name] = overloads
	}
	origin := row.Name + "\x00" + key
	if _, exists := overloads[key]; exists {
		observability.SignatureCollisionsTotal.Inc()
		b.emit(st, Diagnostic{
			Kind:    KindSignatureCollision,
			Line:    row.Line,
			Name:    row.Name,
			Args:    row.Args,
			Message: fmt.Sprintf("signature %q replaces overload from line %d", key, st.origins[origin]),
		})
	}
	overloads[key] = entry
	st.origins[origin] = row.Line
	observability.RowsTotal.WithLabelValues(observability.OutcomeFunction).Inc()

	if len(entry.ArgTypes) == 0 {
		st.constants[row.Name] = true
	}
}

func (b *Builder) emit(st *buildState, d Diagnostic) {
	st.diagnostics = append(st.diagnostics, d)

	attrs := []any{"kind", d.Kind, "function", d.Name}
	if d.Line > 0 {
		attrs = append(attrs, "line", d.Line)
	}
	if d.Args != "" {
		attrs = append(attrs, "args", d.Args)
	}
	if d.Kind == KindParseAnomaly {
		b.logger.Warn(d.Message, attrs...)
	} else {
		b.logger.Info(d.Message, attrs...)
	}

	if b.hook != nil {
		b.hook(d)
	}
}
