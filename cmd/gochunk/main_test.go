package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/gochunk/internal/pipeline"
)

// execute runs the root command with args and stdin, returning stdout
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--log-level", "none"))

	err := cmd.Execute()
	return out.String(), err
}

func decodeResult(t *testing.T, out string) pipeline.Result {
	t.Helper()
	var res pipeline.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	return res
}

func TestSegmentStdin(t *testing.T) {
	out, err := execute(t, "1 2 3 4 5\n", "segment", "--policy", "pattern", "--size", "2")
	require.NoError(t, err)

	res := decodeResult(t, out)
	assert.Equal(t, "pattern", res.Policy)
	assert.Equal(t, "none", res.Mode)
	assert.Equal(t, []int{2, 2, 1}, res.Chunks.Sizes())
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, res.Chunks.Flatten())
	require.Len(t, res.Summaries, 3)
	assert.Equal(t, 7.0, res.Summaries[1].Sum)
}

func TestSegmentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.txt")
	require.NoError(t, os.WriteFile(path, []byte("# readings\n1,2,3\n4,5,6\n"), 0o600))

	out, err := execute(t, "", "segment", "--policy", "pattern", "--size", "3", "--pretty", path)
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"policy\"")

	res := decodeResult(t, out)
	assert.Equal(t, []int{3, 3}, res.Chunks.Sizes())
}

func TestSegmentDefaultPolicyPreservesSequence(t *testing.T) {
	out, err := execute(t, "1 1 1 9 9 9 1 1", "segment")
	require.NoError(t, err)

	res := decodeResult(t, out)
	assert.Equal(t, "variance", res.Policy)
	assert.Equal(t, []float64{1, 1, 1, 9, 9, 9, 1, 1}, res.Chunks.Flatten())
}

func TestSegmentRecursive(t *testing.T) {
	out, err := execute(t, "1 2 3 4 5 6 7 8",
		"segment", "--policy", "pattern", "--size", "4",
		"--mode", "recursive", "--max-depth", "1", "--min-chunk-size", "1")
	require.NoError(t, err)

	res := decodeResult(t, out)
	assert.Equal(t, "recursive", res.Mode)
	assert.Equal(t, []int{4, 4}, res.Chunks.Sizes())
	require.Len(t, res.Forest, 2)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8}, res.Forest.Flatten())
	assert.LessOrEqual(t, res.Stats.MaxDepth, 1)
}

func TestSegmentHierarchicalLevels(t *testing.T) {
	out, err := execute(t, "1 2 3 4 5 6 7 8",
		"segment", "--policy", "pattern", "--size", "4",
		"--mode", "hierarchical", "--levels", "pattern,pattern")
	require.NoError(t, err)

	res := decodeResult(t, out)
	assert.Equal(t, "hierarchical", res.Mode)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8}, res.Forest.Flatten())
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("GOCHUNK_POLICY_KIND", "pattern")
	t.Setenv("GOCHUNK_POLICY_SIZE", "4")

	out, err := execute(t, "1 2 3 4 5 6 7 8", "segment")
	require.NoError(t, err)

	res := decodeResult(t, out)
	assert.Equal(t, "pattern", res.Policy)
	assert.Equal(t, []int{4, 4}, res.Chunks.Sizes())
}

func TestFlagOverridesEnvironment(t *testing.T) {
	t.Setenv("GOCHUNK_POLICY_KIND", "pattern")
	t.Setenv("GOCHUNK_POLICY_SIZE", "4")

	out, err := execute(t, "1 2 3 4 5 6 7 8", "segment", "--size", "2")
	require.NoError(t, err)

	res := decodeResult(t, out)
	assert.Equal(t, []int{2, 2, 2, 2}, res.Chunks.Sizes())
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gochunk.yaml")
	data := []byte(`policy:
  kind: pattern
  size: 3
log:
  level: none
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	out, err := execute(t, "1 2 3 4 5 6", "segment", "--config", path)
	require.NoError(t, err)

	res := decodeResult(t, out)
	assert.Equal(t, []int{3, 3}, res.Chunks.Sizes())
}

func TestConfigFileFromEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gochunk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("policy:\n  kind: pattern\n  size: 5\n"), 0o600))
	t.Setenv("GOCHUNK_CONFIG", path)

	out, err := execute(t, "1 2 3 4 5 6", "segment")
	require.NoError(t, err)

	res := decodeResult(t, out)
	assert.Equal(t, []int{5, 1}, res.Chunks.Sizes())
}

func TestSegmentErrors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{name: "unknown policy", stdin: "1 2", args: []string{"segment", "--policy", "bogus"}},
		{name: "zero size", stdin: "1 2", args: []string{"segment", "--policy", "pattern", "--size", "0"}},
		{name: "unknown mode", stdin: "1 2", args: []string{"segment", "--mode", "sideways"}},
		{name: "bad input", stdin: "1 two 3", args: []string{"segment"}},
		{name: "missing file", args: []string{"segment", filepath.Join(os.TempDir(), "gochunk-does-not-exist.txt")}},
		{name: "too many args", args: []string{"segment", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.stdin, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestReduce(t *testing.T) {
	tests := []struct {
		op   string
		want string
	}{
		{op: "sum", want: "45\n"},
		{op: "max", want: "9\n"},
		{op: "min", want: "1\n"},
		{op: "product", want: "362880\n"},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			out, err := execute(t, "1 2 3 4 5 6 7 8 9",
				"reduce", "--op", tt.op, "--policy", "pattern", "--size", "2", "--workers", "3")
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestReduceUnknownOp(t *testing.T) {
	_, err := execute(t, "1 2 3", "reduce", "--op", "median")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gochunk")
	assert.Contains(t, out, "Version: "+version)
}
