package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wotd/internal/dataset"
	"github.com/roach88/wotd/internal/testutil"
	"github.com/roach88/wotd/internal/words"
)

var bundledData = filepath.Join("..", "words", "data", "words.json")

func writeDataFile(t *testing.T, doc words.Document) string {
	t.Helper()
	data, err := dataset.Encode(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "words.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestValidate_Bundled(t *testing.T) {
	e := newTestEnv(t)

	stdout, _, err := e.run(t, "validate", bundledData)
	require.NoError(t, err)
	newGolden(t).Assert(t, "validate_bundled", []byte(stdout))
}

func TestValidate_BundledJSON(t *testing.T) {
	e := newTestEnv(t)

	stdout, _, err := e.run(t, "--format", "json", "validate", bundledData)
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   dataset.Report `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 10, resp.Data.Words)
	assert.Equal(t, 1, resp.Data.Warnings)
	assert.Equal(t, "20251207", resp.Data.StartDate)
}

func TestValidate_Strict(t *testing.T) {
	e := newTestEnv(t)

	stdout, _, err := e.run(t, "validate", "--strict", bundledData)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "validation failed with 0 errors and 1 warning", err.Error())
	assert.Contains(t, stdout, "✗ words.json: 0 errors, 1 warning")
}

func TestValidate_Errors(t *testing.T) {
	e := newTestEnv(t)

	doc := testutil.Document("20251201", "20251202", "20251202")
	doc.Words[2].Word = "WORD1"
	path := writeDataFile(t, doc)

	stdout, _, err := e.run(t, "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "✗ words.json: 2 errors")
	assert.Contains(t, stdout, "error [E203]")
	assert.Contains(t, stdout, "error [E204]")
}

func TestValidate_ErrorsJSON(t *testing.T) {
	e := newTestEnv(t)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"words": [`), 0o644))

	stdout, _, err := e.run(t, "--format", "json", "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string         `json:"status"`
		Data   dataset.Report `json:"data"`
		Error  CLIError       `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeInvalidData, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "[E201]")
	assert.Equal(t, 1, resp.Data.Errors)
}

func TestValidate_MissingFile(t *testing.T) {
	e := newTestEnv(t)

	stdout, _, err := e.run(t, "validate", "/nonexistent/words.json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "E005")
	assert.Contains(t, stdout, "file not found: /nonexistent/words.json")
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "0 errors", plural(0, "error"))
	assert.Equal(t, "1 warning", plural(1, "warning"))
	assert.Equal(t, "3 warnings", plural(3, "warning"))
}
