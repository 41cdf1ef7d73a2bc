// Package config loads wotd settings from a YAML file, environment
// variables and command flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/roach88/wotd/internal/bookmarks"
)

// DefaultFile is read from the working directory when no file is named.
const DefaultFile = "wotd.yaml"

// Environment variables that override file settings.
const (
	EnvData             = "WOTD_DATA"
	EnvTimezone         = "WOTD_TZ"
	EnvBookmarksBackend = "WOTD_BOOKMARKS_BACKEND"
	EnvBookmarksPath    = "WOTD_BOOKMARKS_PATH"
	EnvAddr             = "WOTD_ADDR"
	EnvBaseURL          = "WOTD_BASE_URL"
)

// Config is the resolved configuration.
type Config struct {
	// Data is the word data file. Empty means the bundled file.
	Data string `yaml:"data"`
	// Timezone decides which calendar day is "today". Empty means local.
	Timezone  string    `yaml:"timezone" validate:"omitempty,timezone"`
	BaseURL   string    `yaml:"base_url" validate:"required,url"`
	Bookmarks Bookmarks `yaml:"bookmarks"`
	Server    Server    `yaml:"server"`

	// Source is the file the config was read from, if any.
	Source string `yaml:"-"`
}

// Bookmarks selects the bookmark storage backend.
type Bookmarks struct {
	Backend string `yaml:"backend" validate:"required,oneof=memory file sqlite"`
	Path    string `yaml:"path" validate:"required_unless=Backend memory"`
}

// Server configures `wotd serve`.
type Server struct {
	Addr        string   `yaml:"addr" validate:"required,hostname_port"`
	Static      string   `yaml:"static"`
	Watch       bool     `yaml:"watch"`
	CORSOrigins []string `yaml:"cors_origins" validate:"dive,required"`
}

// LookupFunc reads an environment variable.
type LookupFunc func(key string) (string, bool)

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		BaseURL: "http://localhost:8080",
		Bookmarks: Bookmarks{
			Backend: bookmarks.BackendFile,
			Path:    defaultBookmarksPath(),
		},
		Server: Server{
			Addr: "localhost:8080",
		},
	}
}

func defaultBookmarksPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".wotd", "bookmarks.json")
	}
	return filepath.Join(dir, "wotd", "bookmarks.json")
}

// Load reads path (or DefaultFile if path is empty and the file exists),
// applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment.
func LoadWithEnv(path string, lookup LookupFunc) (*Config, error) {
	return Resolve(path, lookup, Overrides{})
}

// Overrides are command flag values. Empty fields leave the file and
// environment value in place.
type Overrides struct {
	Data             string
	Timezone         string
	BookmarksBackend string
	BookmarksPath    string
}

// Resolve layers defaults, the file, the environment and then flags,
// and validates only the final result.
func Resolve(path string, lookup LookupFunc, flags Overrides) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := cfg.readFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cfg.applyEnv(lookup)
	cfg.applyFlags(flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	c.Source = path
	return nil
}

func (c *Config) applyEnv(lookup LookupFunc) {
	if lookup == nil {
		return
	}
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(EnvData, &c.Data)
	set(EnvTimezone, &c.Timezone)
	set(EnvBookmarksBackend, &c.Bookmarks.Backend)
	set(EnvBookmarksPath, &c.Bookmarks.Path)
	set(EnvAddr, &c.Server.Addr)
	set(EnvBaseURL, &c.BaseURL)
}

func (c *Config) applyFlags(f Overrides) {
	set := func(v string, dst *string) {
		if v != "" {
			*dst = v
		}
	}
	set(f.Data, &c.Data)
	set(f.Timezone, &c.Timezone)
	set(f.BookmarksBackend, &c.Bookmarks.Backend)
	set(f.BookmarksPath, &c.Bookmarks.Path)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report yaml key names in errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every field and reports all failures at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, fieldError(fe))
	}
	return fmt.Errorf("invalid config: %w", errors.Join(errs...))
}

func fieldError(fe validator.FieldError) error {
	// Namespace starts with the root type name.
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required", "required_unless":
		return fmt.Errorf("%s is required", field)
	case "oneof":
		return fmt.Errorf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "timezone":
		return fmt.Errorf("%s: unknown time zone %q", field, fe.Value())
	case "hostname_port":
		return fmt.Errorf("%s must be host:port, got %q", field, fe.Value())
	case "url":
		return fmt.Errorf("%s must be an absolute URL, got %q", field, fe.Value())
	default:
		return fmt.Errorf("%s failed %s validation", field, fe.Tag())
	}
}

// Location returns the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load time zone: %w", err)
	}
	return loc, nil
}
