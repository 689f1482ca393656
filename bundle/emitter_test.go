package bundle_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/minipack/bundle"
	"github.com/LegacyCodeHQ/minipack/depgraph"
	"github.com/LegacyCodeHQ/minipack/host"
)

func bundleGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t, goldie.WithNameSuffix(".gold.txt"))
}

func mathGraph() *depgraph.Graph {
	return &depgraph.Graph{Assets: []*depgraph.Asset{
		{
			ID:       0,
			FilePath: "/project/entry.js",
			Code:     "var math = require(\"./lib/math.js\");\nconsole.log(math.add(2, 3));\n",
			Mapping:  map[string]int{"./lib/math.js": 1},
			Importer: depgraph.NoImporter,
		},
		{
			ID:       1,
			FilePath: "/project/lib/math.js",
			Code:     "exports.add = function(a, b) {\n  return a + b;\n};\n",
			Importer: 0,
		},
	}}
}

func TestEmit_Default(t *testing.T) {
	out, err := bundle.Emit(mathGraph(), bundle.Options{})
	require.NoError(t, err)

	bundleGoldie(t).Assert(t, "emit_default", []byte(out))
}

func TestEmit_CacheInstances(t *testing.T) {
	out, err := bundle.Emit(mathGraph(), bundle.Options{CacheInstances: true})
	require.NoError(t, err)

	bundleGoldie(t).Assert(t, "emit_cache_instances", []byte(out))
}

func TestEmit_ExecutesEntry(t *testing.T) {
	out, err := bundle.Emit(mathGraph(), bundle.Options{})
	require.NoError(t, err)

	var stdout bytes.Buffer
	require.NoError(t, host.Run(context.Background(), out, host.Options{Stdout: &stdout}))
	assert.Equal(t, "5\n", stdout.String())
}

// counterGraph requires the same module twice. The counter module bumps an
// implicit global each time its body runs.
func counterGraph() *depgraph.Graph {
	return &depgraph.Graph{Assets: []*depgraph.Asset{
		{
			ID:       0,
			FilePath: "/project/entry.js",
			Code: "var first = require(\"./counter.js\");\n" +
				"var second = require(\"./counter.js\");\n" +
				"console.log(first === second, first.value, second.value, runs);\n",
			Mapping:  map[string]int{"./counter.js": 1},
			Importer: depgraph.NoImporter,
		},
		{
			ID:       1,
			FilePath: "/project/counter.js",
			Code:     "runs = (typeof runs === \"undefined\" ? 0 : runs) + 1;\nexports.value = runs;\n",
			Importer: 0,
		},
	}}
}

func TestEmit_RequireReevaluatesByDefault(t *testing.T) {
	out, err := bundle.Emit(counterGraph(), bundle.Options{})
	require.NoError(t, err)

	var stdout bytes.Buffer
	require.NoError(t, host.Run(context.Background(), out, host.Options{Stdout: &stdout}))
	assert.Equal(t, "false 1 2 2\n", stdout.String())
}

func TestEmit_CacheInstancesEvaluatesOnce(t *testing.T) {
	out, err := bundle.Emit(counterGraph(), bundle.Options{CacheInstances: true})
	require.NoError(t, err)

	var stdout bytes.Buffer
	require.NoError(t, host.Run(context.Background(), out, host.Options{Stdout: &stdout}))
	assert.Equal(t, "true 1 1 1\n", stdout.String())
}

func TestEmit_UnmappedSpecifierFailsAtRuntime(t *testing.T) {
	g := &depgraph.Graph{Assets: []*depgraph.Asset{
		{
			ID:       0,
			FilePath: "/project/entry.js",
			Code:     "require(\"left-pad\");\n",
			Importer: depgraph.NoImporter,
		},
	}}

	out, err := bundle.Emit(g, bundle.Options{})
	require.NoError(t, err)

	err = host.Run(context.Background(), out, host.Options{})
	var execErr *host.ExecError
	require.ErrorAs(t, err, &execErr)
	assert.Contains(t, execErr.Message, "Cannot find module 'left-pad' from 'entry.js'")
}

func TestEmit_TrailingLineCommentDoesNotBreakWrapper(t *testing.T) {
	g := &depgraph.Graph{Assets: []*depgraph.Asset{
		{
			ID:       0,
			FilePath: "/project/entry.js",
			Code:     "console.log(\"ok\"); // done",
			Importer: depgraph.NoImporter,
		},
	}}

	out, err := bundle.Emit(g, bundle.Options{})
	require.NoError(t, err)

	var stdout bytes.Buffer
	require.NoError(t, host.Run(context.Background(), out, host.Options{Stdout: &stdout}))
	assert.Equal(t, "ok\n", stdout.String())
}

func TestEmit_LeadingHashbangIsDropped(t *testing.T) {
	g := &depgraph.Graph{Assets: []*depgraph.Asset{
		{
			ID:       0,
			FilePath: "/project/cli.js",
			Code:     "#!/usr/bin/env node\nconsole.log(\"ok\");\n",
			Importer: depgraph.NoImporter,
		},
	}}

	out, err := bundle.Emit(g, bundle.Options{})
	require.NoError(t, err)
	assert.NotContains(t, out, "#!")

	var stdout bytes.Buffer
	require.NoError(t, host.Run(context.Background(), out, host.Options{Stdout: &stdout}))
	assert.Equal(t, "ok\n", stdout.String())
}

func TestEmit_ModuleNamesRelativeToBaseDir(t *testing.T) {
	out, err := bundle.Emit(mathGraph(), bundle.Options{BaseDir: "/"})
	require.NoError(t, err)

	assert.Contains(t, out, `"project/entry.js"`)
	assert.Contains(t, out, `"project/lib/math.js"`)
}

func TestEmit_RejectsInvalidGraphs(t *testing.T) {
	_, err := bundle.Emit(nil, bundle.Options{})
	assert.EqualError(t, err, "graph is required")

	_, err = bundle.Emit(&depgraph.Graph{}, bundle.Options{})
	assert.EqualError(t, err, "invalid graph: graph has no entry asset")

	dangling := &depgraph.Graph{Assets: []*depgraph.Asset{
		{ID: 0, FilePath: "/project/entry.js", Mapping: map[string]int{"./gone.js": 4}},
	}}
	_, err = bundle.Emit(dangling, bundle.Options{})
	assert.EqualError(t, err, `invalid graph: asset 0 maps "./gone.js" to unknown id 4`)
}
