// Package manifest assembles and writes the JSON document describing the
// Stan language: its function table plus the static vocabulary.
package manifest

import (
	"bytes"
	"encoding/json"
	"regexp"

	"stanlang/internal/core/errors"
	"stanlang/internal/core/vocab"
	"stanlang/internal/engine/catalog"
	"stanlang/internal/shared/util"
)

// Manifest is the document written for downstream tooling. Fields are
// declared in key order so the encoded object has sorted keys.
type Manifest struct {
	BasicTypes                  []string      `json:"basic_types"`
	Blocks                      []string      `json:"blocks"`
	Bounds                      []string      `json:"bounds"`
	Constants                   []string      `json:"constants"`
	CPPReserved                 []string      `json:"cpp_reserved"`
	Distributions               []string      `json:"distributions"`
	FunctionLikeKeywords        []string      `json:"function_like_keywords"`
	FunctionReturnTypes         []string      `json:"function_return_types"`
	Functions                   catalog.Table `json:"functions"`
	Keywords                    []string      `json:"keywords"`
	NondistributionLogFunctions []string      `json:"nondistribution_log_functions"`
	Operators                   []string      `json:"operators"`
	PseudoKeywords              []string      `json:"pseudo_keywords"`
	Reserved                    []string      `json:"reserved"`
	Types                       []string      `json:"types"`
	Version                     string        `json:"version"`
}

// ExtractVersion pulls the release number out of a source path such as
// "stan-functions-2.9.0.txt". pattern must have one capture group.
func ExtractVersion(path, pattern string) (string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "compile version pattern")
	}
	m := re.FindStringSubmatch(path)
	if len(m) < 2 || m[1] == "" {
		err := errors.Newf(errors.CodeVersionPattern, "file name does not match %s", pattern)
		return "", errors.AddContext(err, errors.CtxPath, path)
	}
	return m[1], nil
}

// Assemble combines the derived tables with the vocabulary. The manifest
// owns copies of every slice it holds.
func Assemble(version string, v *vocab.Vocabulary, res *catalog.Result) *Manifest {
	voc := v.Clone()
	functions := make(catalog.Table, len(res.Functions))
	for name, overloads := range res.Functions {
		copied := make(map[string]catalog.Entry, len(overloads))
		for key, e := range overloads {
			copied[key] = catalog.Entry{
				ArgNames: util.CloneStrings(e.ArgNames),
				ArgTypes: util.CloneStrings(e.ArgTypes),
				Name:     e.Name,
				Return:   e.Return,
			}
		}
		functions[name] = copied
	}

	return &Manifest{
		BasicTypes:                  voc.BasicTypes,
		Blocks:                      voc.Blocks,
		Bounds:                      voc.Bounds,
		Constants:                   util.CloneStrings(res.Constants),
		CPPReserved:                 voc.CPPReserved,
		Distributions:               util.CloneStrings(res.Distributions),
		FunctionLikeKeywords:        voc.FunctionLikeKeywords,
		FunctionReturnTypes:         voc.FunctionReturnTypes(),
		Functions:                   functions,
		Keywords:                    voc.Keywords,
		NondistributionLogFunctions: voc.NondistributionLogFunctions,
		Operators:                   voc.Operators,
		PseudoKeywords:              voc.PseudoKeywords,
		Reserved:                    voc.Reserved,
		Types:                       voc.Types,
		Version:                     version,
	}
}

// Render encodes m with two-space indentation and sorted keys. Characters
// such as < and & are written as-is since operators contain them.
func Render(m *Manifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "encode manifest")
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
