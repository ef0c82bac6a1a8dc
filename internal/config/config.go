package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/roach88/y2km/internal/y2km"
)

//go:embed schema.cue
var schemaCUE string

// Defaults applied to fields the config file leaves unset.
const (
	DefaultRangePolicy = "reject"
	DefaultDB          = "y2km.db"
	DefaultFormat      = "text"
	DefaultListen      = ":8080"
)

// ErrUnsupportedFormat is returned for config files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config holds settings shared by the CLI and the HTTP server.
type Config struct {
	RangePolicy string `yaml:"range_policy" toml:"range_policy" json:"range_policy"`
	DB          string `yaml:"db" toml:"db" json:"db"`
	Format      string `yaml:"format" toml:"format" json:"format"`
	Listen      string `yaml:"listen" toml:"listen" json:"listen"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		RangePolicy: DefaultRangePolicy,
		DB:          DefaultDB,
		Format:      DefaultFormat,
		Listen:      DefaultListen,
	}
}

// Policy returns the parsed range policy.
func (c Config) Policy() (y2km.RangePolicy, error) {
	return y2km.ParseRangePolicy(c.RangePolicy)
}

// Load reads a .yaml, .yml or .toml config file.
// Unknown keys and invalid values are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var dialect codec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dialect = yamlCodec{}
	case ".toml":
		dialect = tomlCodec{}
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return parse(data, dialect)
}

func parse(data []byte, dialect codec) (Config, error) {
	raw := map[string]any{}
	if err := dialect.decode(data, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := validate(raw); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := dialect.decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// validate unifies the decoded document with #Config.
func validate(raw map[string]any) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("config schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	doc := ctx.Encode(raw)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

type codec interface {
	decode(data []byte, v any) error
}

type yamlCodec struct{}

func (yamlCodec) decode(data []byte, v any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

type tomlCodec struct{}

func (tomlCodec) decode(data []byte, v any) error {
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
