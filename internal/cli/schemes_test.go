package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFormatCmd returns a minimal command carrying the global format flag, for
// driving run helpers directly in tests.
func newFormatCmd(format string) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("format", format, "")
	return cmd
}

func TestRunSchemes_Text(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	err := runSchemes(context.Background(), newFormatCmd(OutputText), "", buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "rsa-sha256")
	assert.Contains(t, output, "hs2019")
	assert.Contains(t, output, "any")
	assert.Contains(t, output, "deprecated")
}

func TestRunSchemes_JSON(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	err := runSchemes(context.Background(), newFormatCmd(OutputJSON), "", buf)
	require.NoError(t, err)

	var rows []schemeRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.NotEmpty(t, rows)

	byName := make(map[string]schemeRow, len(rows))
	for _, row := range rows {
		byName[row.Name] = row
	}

	assert.Equal(t, "rsa", byName["rsa-sha256"].KeyFamily)
	assert.True(t, byName["rsa-sha1"].Deprecated)
	assert.Empty(t, byName["hs2019"].KeyFamily)
}

func TestRunSchemes_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
schemes:
  - name: rsa-sha256
  - name: rsa-sha1
    deprecated: true
`), 0o600))

	buf := new(bytes.Buffer)
	err := runSchemes(context.Background(), newFormatCmd(OutputText), path, buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "rsa-sha1")
	assert.NotContains(t, output, "hs2019")
}

func TestRunSchemes_MissingFile(t *testing.T) {
	t.Parallel()

	err := runSchemes(context.Background(), newFormatCmd(OutputText), "does/not/exist.yaml", new(bytes.Buffer))
	require.Error(t, err)
}

func TestRunSchemes_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runSchemes(ctx, newFormatCmd(OutputText), "", new(bytes.Buffer))
	assert.ErrorIs(t, err, context.Canceled)
}
