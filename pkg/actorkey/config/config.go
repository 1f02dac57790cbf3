package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/dotsecenv/actorkey/pkg/actorkey/key"
	"github.com/dotsecenv/actorkey/pkg/actorkey/keyfile"
)

// DefaultMinRSABits is the smallest modulus accepted by validate unless configured otherwise.
const DefaultMinRSABits = 2048

// ErrInvalid is wrapped by every error returned from Validate.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the actorkey configuration
type Config struct {
	DefaultKind key.Kind       `yaml:"default_kind"`       // Actor kind used by "new" when neither --user nor --client is given
	Format      keyfile.Format `yaml:"format"`             // Output format for records written to stdout
	MinRSABits  int            `yaml:"min_rsa_bits"`       // Smallest RSA modulus accepted by "validate"
	Strict      bool           `yaml:"strict"`             // Strict mode: warnings become errors
	LogLevel    string         `yaml:"log_level,omitempty"` // zerolog level name (empty = warn)
}

// UnmarshalYAML provides custom YAML unmarshaling with better error messages for
// default_kind and format. Fields missing from the document keep their current values.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	type configAlias Config
	temp := configAlias(*c)

	if err := node.Decode(&temp); err != nil {
		if errors.Is(err, key.ErrInvalidArgument) {
			return fmt.Errorf(
				"invalid default_kind%s:\n"+
					"  Expected format: default_kind: user (or client)\n"+
					"  Original error: %w",
				lineOf(node, "default_kind"), err,
			)
		}
		return err
	}

	*c = Config(temp)
	return nil
}

// lineOf returns " on line N" for the value of field in a mapping node.
func lineOf(node *yaml.Node, field string) string {
	if node.Kind != yaml.MappingNode {
		return ""
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == field {
			return fmt.Sprintf(" on line %d", node.Content[i+1].Line)
		}
	}
	return ""
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() Config {
	return Config{
		DefaultKind: key.KindUser,
		Format:      keyfile.FormatJSON,
		MinRSABits:  DefaultMinRSABits,
		Strict:      false,
		LogLevel:    "",
	}
}

// Load reads the config from the specified path, starting from DefaultConfig
// so that omitted fields keep their defaults.
// If the file doesn't exist or is empty, it returns an error
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return Config{}, fmt.Errorf("config file is empty")
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Save writes the config to the specified path with proper formatting
func Save(path string, cfg Config) error {
	// Create parent directory if needed
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks field values that the YAML decoder cannot.
func (c Config) Validate() error {
	if !c.DefaultKind.Valid() {
		return fmt.Errorf("%w: default_kind must be %q or %q", ErrInvalid, key.FieldUser, key.FieldClient)
	}
	if _, err := keyfile.ParseFormat(string(c.Format)); err != nil {
		return fmt.Errorf("%w: format: %v", ErrInvalid, err)
	}
	if c.MinRSABits < 1024 {
		return fmt.Errorf("%w: min_rsa_bits must be at least 1024, got %d", ErrInvalid, c.MinRSABits)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
	}
	return nil
}

// Level returns the configured log level, defaulting to warn.
func (c Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.WarnLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(c.LogLevel))
}

// IsKeySizeAllowed reports whether an RSA modulus of the given size meets min_rsa_bits.
func (c Config) IsKeySizeAllowed(bits int) bool {
	return bits >= c.MinRSABits
}
