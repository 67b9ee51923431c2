package catalog

import "fmt"

type DiagnosticKind string

const (
	// KindParseAnomaly marks an argument list that yielded no parameters.
	// The row is still recorded, as a zero-argument overload.
	KindParseAnomaly DiagnosticKind = "parse_anomaly"
	// KindSignatureCollision marks a row that replaced an earlier overload
	// with the same name and signature.
	KindSignatureCollision DiagnosticKind = "signature_collision"
	// KindDistributionOverlap marks a name that is both a distribution and
	// owns function overloads.
	KindDistributionOverlap DiagnosticKind = "distribution_overlap"
)

// Diagnostic is a recoverable finding reported while building the table.
type Diagnostic struct {
	Kind    DiagnosticKind
	Line    int
	Name    string
	Args    string
	Message string
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s: %s", d.Kind, d.Line, d.Name, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Kind, d.Name, d.Message)
}
