package cli

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wotd/internal/config"
	"github.com/roach88/wotd/internal/testutil"
)

// testEnv is the environment every command test runs in. Bookmark
// storage is a file under t.TempDir so tests can inspect it.
type testEnv struct {
	opts      *RootOptions
	bookmarks string
	env       map[string]string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	e := &testEnv{
		bookmarks: filepath.Join(t.TempDir(), "bookmarks.json"),
		env:       map[string]string{config.EnvBaseURL: "https://words.example.com"},
	}
	e.opts = &RootOptions{
		// 2025-12-09: ambiguous is today's word; benevolent onwards are withheld.
		Clock: testutil.NewFixedClock(testutil.Day(2025, time.December, 9)),
		Env: func(key string) (string, bool) {
			v, ok := e.env[key]
			return v, ok
		},
		Rand: func(int) int { return 0 },
	}
	return e
}

// run executes the root command with args and returns stdout, stderr
// and the command error.
func (e *testEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommandWithOptions(e.opts)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(append([]string{"--bookmarks-backend", "file", "--bookmarks-path", e.bookmarks}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func newGolden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "wotd", cmd.Use)
	assert.Contains(t, cmd.Long, "word of the day")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"today", "show", "random", "list", "slugs", "bookmarks", "validate", "renumber", "extend", "serve", "browse"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestBookmarksSubcommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"list", "has", "toggle", "clear"} {
		sub, _, err := cmd.Find([]string{"bookmarks", name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)

	for _, name := range []string{"data", "tz", "bookmarks-backend", "bookmarks-path"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestServeCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	serveCmd, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)

	for _, name := range []string{"addr", "static", "watch", "cors-origin"} {
		assert.NotNil(t, serveCmd.Flags().Lookup(name), name)
	}
}

func TestExtendCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	extendCmd, _, err := cmd.Find([]string{"extend"})
	require.NoError(t, err)

	fromFlag := extendCmd.Flags().Lookup("from")
	require.NotNil(t, fromFlag)
	assert.Equal(t, "", fromFlag.DefValue)

	writeFlag := extendCmd.Flags().Lookup("write")
	require.NotNil(t, writeFlag)
	assert.Equal(t, "w", writeFlag.Shorthand)
}

func TestFormatValidation(t *testing.T) {
	// Test valid formats
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	// Test invalid formats
	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "invalid", "today"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestConfigErrors(t *testing.T) {
	e := newTestEnv(t)

	stdout, _, err := e.run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "today")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E002]: failed to load config")

	e.env[config.EnvBaseURL] = "words"
	stdout, _, err = e.run(t, "today")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E002]")
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	e := newTestEnv(t)
	e.env[config.EnvBookmarksBackend] = "redis"

	_, _, err := e.run(t, "today")
	require.NoError(t, err, "the bookmark backend flag replaces the environment value")

	e.env[config.EnvTimezone] = "Not/AZone"
	_, _, err = e.run(t, "today")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "unknown time zone")

	_, _, err = e.run(t, "--tz", "UTC", "today")
	assert.NoError(t, err)
}
