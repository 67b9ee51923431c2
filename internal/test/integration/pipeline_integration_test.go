package integration

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"stanlang/internal/core/app"
	"stanlang/internal/core/config"
	"stanlang/internal/core/vocab"
	"stanlang/internal/engine/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "testdata/stan-functions-2.9.0.txt"

type manifestDoc struct {
	Version              string                               `json:"version"`
	Functions            map[string]map[string]map[string]any `json:"functions"`
	Distributions        []string                             `json:"distributions"`
	Constants            []string                             `json:"constants"`
	FunctionLikeKeywords []string                             `json:"function_like_keywords"`
	NondistributionLog   []string                             `json:"nondistribution_log_functions"`
}

func runPipeline(t *testing.T) (string, []catalog.Diagnostic) {
	t.Helper()
	voc, err := vocab.Default()
	require.NoError(t, err)

	a, err := app.New(config.Default(), voc, app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "stan_lang.json")
	summary, err := a.Run(context.Background(), fixture, dst)
	require.NoError(t, err)
	assert.Equal(t, "2.9.0", summary.Version)
	return dst, summary.Diagnostics
}

func TestFullPipelineIntegration(t *testing.T) {
	dst, diagnostics := runPipeline(t)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	var doc manifestDoc
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "2.9.0", doc.Version)
	assert.Equal(t, []string{"bernoulli", "normal"}, doc.Distributions)
	assert.Equal(t, []string{"e", "not_a_number", "pi", "target"}, doc.Constants)

	// function-like keywords never reach the function table
	for _, kw := range doc.FunctionLikeKeywords {
		assert.NotContains(t, doc.Functions, kw)
	}
	assert.NotContains(t, doc.Functions, "normal")
	assert.NotContains(t, doc.Functions, "bernoulli")

	assert.Len(t, doc.Functions["abs"], 2)
	assert.Len(t, doc.Functions["cols"], 3)
	assert.Contains(t, doc.Functions["cols"], "row_vector")
	assert.Contains(t, doc.Functions["rep_array"], "T,int")
	assert.Contains(t, doc.Functions["rep_array"], "T,int,int")
	assert.Contains(t, doc.Functions["sum"], "int[]")
	assert.Contains(t, doc.Functions["sum"], "real[]")
	assert.Contains(t, doc.Functions["normal_log"], "reals,reals,reals")
	assert.Contains(t, doc.Functions["bernoulli_log"], "ints,reals")
	assert.Equal(t, "real[]", doc.Functions["sd"]["real[]"]["argtypes"].([]any)[0])

	assert.Contains(t, doc.NondistributionLog, "multiply_log")
	assert.Contains(t, doc.Functions, "multiply_log")

	assert.Empty(t, diagnostics, "fixture rows should all tokenize")
}

func TestPipelineIsReproducible(t *testing.T) {
	first, _ := runPipeline(t)
	second, _ := runPipeline(t)

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}
