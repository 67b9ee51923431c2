package ports

import (
	"context"

	"stanlang/internal/engine/catalog"
)

// ManifestGenerator runs one conversion of a function table export into a
// language manifest.
type ManifestGenerator interface {
	Run(ctx context.Context, src, dst string) (Summary, error)
}

// Summary describes a completed run.
type Summary struct {
	RunID         string
	Version       string
	Output        string
	Rows          int
	Functions     int
	Overloads     int
	Distributions int
	Constants     int
	Diagnostics   []catalog.Diagnostic
}
