package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wotd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	cfg := Default()

	assert.Equal(t, "", cfg.Data)
	assert.Equal(t, "file", cfg.Bookmarks.Backend)
	assert.Equal(t, filepath.Join("/tmp/xdg", "wotd", "bookmarks.json"), cfg.Bookmarks.Path)
	assert.Equal(t, "localhost:8080", cfg.Server.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadWithEnv("", env(nil))
	require.NoError(t, err)
	assert.Equal(t, Default().Server, cfg.Server)
	assert.Empty(t, cfg.Source)
}

func TestLoad_DefaultFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(DefaultFile, []byte("data: words.json\n"), 0o644))

	cfg, err := LoadWithEnv("", env(nil))
	require.NoError(t, err)
	assert.Equal(t, "words.json", cfg.Data)
	assert.Equal(t, DefaultFile, cfg.Source)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
data: /srv/words.json
timezone: America/New_York
base_url: https://words.example.com
bookmarks:
  backend: sqlite
  path: /var/lib/wotd/bookmarks.db
server:
  addr: ":9000"
  static: ./out
  watch: true
  cors_origins:
    - https://words.example.com
`)

	cfg, err := LoadWithEnv(path, env(nil))
	require.NoError(t, err)

	assert.Equal(t, "/srv/words.json", cfg.Data)
	assert.Equal(t, "America/New_York", cfg.Timezone)
	assert.Equal(t, "https://words.example.com", cfg.BaseURL)
	assert.Equal(t, Bookmarks{Backend: "sqlite", Path: "/var/lib/wotd/bookmarks.db"}, cfg.Bookmarks)
	assert.Equal(t, Server{
		Addr:        ":9000",
		Static:      "./out",
		Watch:       true,
		CORSOrigins: []string{"https://words.example.com"},
	}, cfg.Server)
	assert.Equal(t, path, cfg.Source)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  watch: true\n")

	cfg, err := LoadWithEnv(path, env(nil))
	require.NoError(t, err)
	assert.True(t, cfg.Server.Watch)
	assert.Equal(t, "localhost:8080", cfg.Server.Addr)
	assert.Equal(t, "file", cfg.Bookmarks.Backend)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := LoadWithEnv(writeConfig(t, ""), env(nil))
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", cfg.Server.Addr)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "data: from-file.json\nserver:\n  addr: localhost:8000\n")

	cfg, err := LoadWithEnv(path, env(map[string]string{
		EnvData:             "from-env.json",
		EnvTimezone:         "UTC",
		EnvBookmarksBackend: "memory",
		EnvBookmarksPath:    "",
		EnvAddr:             "0.0.0.0:7000",
		EnvBaseURL:          "https://example.org",
	}))
	require.NoError(t, err)

	assert.Equal(t, "from-env.json", cfg.Data)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "memory", cfg.Bookmarks.Backend)
	assert.NotEmpty(t, cfg.Bookmarks.Path, "empty env values are ignored")
	assert.Equal(t, "0.0.0.0:7000", cfg.Server.Addr)
	assert.Equal(t, "https://example.org", cfg.BaseURL)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("explicit file missing", func(t *testing.T) {
		_, err := LoadWithEnv(filepath.Join(t.TempDir(), "nope.yaml"), env(nil))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := LoadWithEnv(writeConfig(t, "colour: blue\n"), env(nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "colour")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadWithEnv(writeConfig(t, "server: [\n"), env(nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Bookmarks.Backend = "redis" },
			wantErr: `bookmarks.backend must be one of [memory file sqlite], got "redis"`,
		},
		{
			name:    "file backend without path",
			mutate:  func(c *Config) { c.Bookmarks.Path = "" },
			wantErr: "bookmarks.path is required",
		},
		{
			name:    "bad time zone",
			mutate:  func(c *Config) { c.Timezone = "Mars/Olympus" },
			wantErr: `timezone: unknown time zone "Mars/Olympus"`,
		},
		{
			name:    "bad addr",
			mutate:  func(c *Config) { c.Server.Addr = "8080" },
			wantErr: `server.addr must be host:port, got "8080"`,
		},
		{
			name:    "relative base url",
			mutate:  func(c *Config) { c.BaseURL = "words" },
			wantErr: `base_url must be an absolute URL, got "words"`,
		},
		{
			name:    "blank cors origin",
			mutate:  func(c *Config) { c.Server.CORSOrigins = []string{""} },
			wantErr: "server.cors_origins[0] is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_MemoryNeedsNoPath(t *testing.T) {
	cfg := Default()
	cfg.Bookmarks = Bookmarks{Backend: "memory"}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_ReportsEveryField(t *testing.T) {
	cfg := Default()
	cfg.Bookmarks.Backend = "redis"
	cfg.Server.Addr = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bookmarks.backend")
	assert.Contains(t, err.Error(), "server.addr is required")
}

func TestLocation(t *testing.T) {
	cfg := Default()
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Local", loc.String())

	cfg.Timezone = "Asia/Tokyo"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", loc.String())
}

func TestResolve_FlagsOverrideEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, "data: file.json\ntimezone: UTC\n")

	cfg, err := Resolve(path, env(map[string]string{
		EnvData:             "env.json",
		EnvBookmarksBackend: "redis",
		EnvTimezone:         "Not/AZone",
	}), Overrides{
		Data:             "flag.json",
		Timezone:         "Europe/Paris",
		BookmarksBackend: "memory",
	})
	require.NoError(t, err, "invalid environment values are replaced before validation")
	assert.Equal(t, "flag.json", cfg.Data)
	assert.Equal(t, "Europe/Paris", cfg.Timezone)
	assert.Equal(t, "memory", cfg.Bookmarks.Backend)
}

func TestResolve_EmptyFlagsKeepEnv(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Resolve("", env(map[string]string{EnvBookmarksPath: "/env/b.json"}), Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "/env/b.json", cfg.Bookmarks.Path)

	_, err = Resolve("", env(nil), Overrides{BookmarksBackend: "redis"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bookmarks.backend must be one of")
}
