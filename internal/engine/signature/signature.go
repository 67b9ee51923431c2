// Package signature tokenizes the free-text argument lists found in the Stan
// function reference into typed parameters.
//
// The tokenizer is a pattern match over a small, fixed type vocabulary rather
// than a grammar. It does not check that the number of parameters found agrees
// with the number of comma separated segments in the text.
package signature

import (
	"regexp"
	"strings"
)

// NoArgs is the literal argument text of a zero-argument function.
const NoArgs = "()"

// argTypes are tried in order at each position.
var argTypes = []string{
	`reals?`,
	`ints?`,
	`(?:(?:row|col)_)?vector`,
	`matrix`,
	`T`,
}

const argName = `[A-Za-z][A-Za-z0-9_]*(?:\[.*\])?`

var argPattern = regexp.MustCompile(
	`(?P<type>(?:` + strings.Join(argTypes, "|") + `)(?:\[(?:\.{3}|,)?\])?)\s+(?P<name>` + argName + `)`,
)

var (
	typeIndex = argPattern.SubexpIndex("type")
	nameIndex = argPattern.SubexpIndex("name")
)

// Parameter is one typed argument of a function signature.
type Parameter struct {
	Type string
	Name string
}

// Parse is the outcome of tokenizing one argument list.
type Parse struct {
	Params []Parameter
	// Anomaly is set when text other than "()" produced no parameters.
	Anomaly bool
}

// Pattern returns the expression used to find type/name pairs.
func Pattern() string {
	return argPattern.String()
}

// ParseArguments extracts the parameters of text in source order. Params is
// never nil.
func ParseArguments(text string) Parse {
	if text == NoArgs {
		return Parse{Params: []Parameter{}}
	}

	matches := argPattern.FindAllStringSubmatch(text, -1)
	params := make([]Parameter, 0, len(matches))
	for _, m := range matches {
		params = append(params, Parameter{Type: m[typeIndex], Name: m[nameIndex]})
	}
	return Parse{Params: params, Anomaly: len(params) == 0}
}

// Types returns the parameter types of params in order.
func Types(params []Parameter) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.Type
	}
	return out
}

// Names returns the parameter names of params in order.
func Names(params []Parameter) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.Name
	}
	return out
}
