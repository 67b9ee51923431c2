// Package vocab holds the fixed Stan vocabulary tables copied into every
// manifest: types, keywords, reserved words, operators and block names.
package vocab

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"stanlang/internal/shared/util"

	"github.com/BurntSushi/toml"
)

//go:embed vocab.toml
var embedded []byte

// ReturnTypeVoid is the extra return type allowed for functions only.
const ReturnTypeVoid = "void"

type Vocabulary struct {
	Types                       []string `toml:"types"`
	BasicTypes                  []string `toml:"basic_types"`
	Blocks                      []string `toml:"blocks"`
	Keywords                    []string `toml:"keywords"`
	FunctionLikeKeywords        []string `toml:"function_like_keywords"`
	PseudoKeywords              []string `toml:"pseudo_keywords"`
	Bounds                      []string `toml:"bounds"`
	NondistributionLogFunctions []string `toml:"nondistribution_log_functions"`
	CPPReserved                 []string `toml:"cpp_reserved"`
	Reserved                    []string `toml:"reserved"`
	Operators                   []string `toml:"operators"`
}

var loadDefault = sync.OnceValues(func() (*Vocabulary, error) {
	return Load(embedded)
})

// Default returns the built-in vocabulary. It is decoded once per process and
// must be treated as read-only; use Clone before modifying it.
func Default() (*Vocabulary, error) {
	return loadDefault()
}

// Load decodes and validates a vocabulary document.
func Load(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if _, err := toml.Decode(string(data), &v); err != nil {
		return nil, fmt.Errorf("decode vocabulary: %w", err)
	}

	tables := []struct {
		key        string
		values     []string
		duplicates bool
	}{
		{"types", v.Types, false},
		{"basic_types", v.BasicTypes, false},
		{"blocks", v.Blocks, false},
		{"keywords", v.Keywords, false},
		{"function_like_keywords", v.FunctionLikeKeywords, false},
		{"pseudo_keywords", v.PseudoKeywords, false},
		{"bounds", v.Bounds, false},
		{"nondistribution_log_functions", v.NondistributionLogFunctions, false},
		{"cpp_reserved", v.CPPReserved, false},
		{"reserved", v.Reserved, false},
		// unary and binary forms of + and - share a spelling
		{"operators", v.Operators, true},
	}
	for _, table := range tables {
		if err := validateTable(table.key, table.values, table.duplicates); err != nil {
			return nil, err
		}
	}

	for i, basic := range v.BasicTypes {
		if !util.ContainsString(v.Types, basic) {
			return nil, fmt.Errorf("basic_types[%d] %q is not listed in types", i, basic)
		}
	}

	return &v, nil
}

func validateTable(key string, values []string, allowDuplicates bool) error {
	if len(values) == 0 {
		return fmt.Errorf("%s must not be empty", key)
	}
	seen := make(map[string]bool, len(values))
	for i, value := range values {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s[%d] must not be empty", key, i)
		}
		if seen[value] && !allowDuplicates {
			return fmt.Errorf("duplicate entry %q in %s", value, key)
		}
		seen[value] = true
	}
	return nil
}

// FunctionReturnTypes lists the types a function may return: the basic types
// plus void.
func (v *Vocabulary) FunctionReturnTypes() []string {
	out := make([]string, 0, len(v.BasicTypes)+1)
	out = append(out, v.BasicTypes...)
	return append(out, ReturnTypeVoid)
}

// Clone returns a deep copy.
func (v *Vocabulary) Clone() *Vocabulary {
	return &Vocabulary{
		Types:                       util.CloneStrings(v.Types),
		BasicTypes:                  util.CloneStrings(v.BasicTypes),
		Blocks:                      util.CloneStrings(v.Blocks),
		Keywords:                    util.CloneStrings(v.Keywords),
		FunctionLikeKeywords:        util.CloneStrings(v.FunctionLikeKeywords),
		PseudoKeywords:              util.CloneStrings(v.PseudoKeywords),
		Bounds:                      util.CloneStrings(v.Bounds),
		NondistributionLogFunctions: util.CloneStrings(v.NondistributionLogFunctions),
		CPPReserved:                 util.CloneStrings(v.CPPReserved),
		Reserved:                    util.CloneStrings(v.Reserved),
		Operators:                   util.CloneStrings(v.Operators),
	}
}
