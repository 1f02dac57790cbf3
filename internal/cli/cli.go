package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/rs/zerolog"

	"github.com/dotsecenv/actorkey/internal/xdg"
	"github.com/dotsecenv/actorkey/pkg/actorkey/config"
	"github.com/dotsecenv/actorkey/pkg/actorkey/keyfile"
	"github.com/dotsecenv/actorkey/pkg/actorkey/output"
)

// Options carries the global command-line flags.
type Options struct {
	ConfigPath string
	Silent     bool
	Strict     bool
	LogLevel   string
	Format     string
	JSON       bool
}

// ResolveConfigPath returns the effective config path considering:
// 1. Explicit configPath argument (highest priority, e.g. -c flag)
// 2. ACTORKEY_CONFIG env var
// 3. XDG default path
// explicit is false only for the XDG default.
func ResolveConfigPath(configPath string) (path string, explicit bool, err error) {
	xdgPaths, err := xdg.NewPaths()
	if err != nil {
		if configPath != "" {
			return configPath, true, nil
		}
		return "", false, err
	}
	path, explicit = xdgPaths.ResolveConfigPath(configPath)
	return path, explicit, nil
}

// CLI represents the command-line interface
type CLI struct {
	configPath string
	config     config.Config
	format     keyfile.Format
	stdin      io.Reader
	Silent     bool
	Strict     bool            // Strict mode: warnings become errors
	output     *output.Handler // Unified output handler
	logger     zerolog.Logger
}

// NewCLI creates a new CLI instance. A missing config file at the default
// location means built-in defaults; a missing file the user pointed at
// explicitly is a warning.
func NewCLI(opts Options, stdin io.Reader, stdout, stderr io.Writer) (*CLI, *output.Error) {
	configPath, explicit, err := ResolveConfigPath(opts.ConfigPath)
	if err != nil {
		return nil, output.NewErrorf(output.CodeConfigNotFound, "failed to get XDG paths: %v", err)
	}

	cfg, err := config.Load(configPath)
	missing := false
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			code := output.CodeConfigParseError
			if errors.Is(err, config.ErrInvalid) {
				code = output.CodeConfigInvalid
			}
			return nil, output.NewErrorf(code, "failed to load config %s: %v", configPath, err).WithCause(err)
		}
		cfg = config.DefaultConfig()
		missing = true
	}

	// Compute effective strict mode early (CLI flag or config setting)
	effectiveStrict := opts.Strict || cfg.Strict

	format := cfg.Format
	if opts.Format != "" {
		format, err = keyfile.ParseFormat(opts.Format)
		if err != nil {
			return nil, output.NewError(output.CodeUsageError, err.Error()).WithCause(err)
		}
	}

	configLevel, _ := cfg.Level()
	level, err := resolveLevel(opts.LogLevel, configLevel, opts.Silent)
	if err != nil {
		return nil, output.NewErrorf(output.CodeUsageError, "invalid --log-level %q", opts.LogLevel).WithCause(err)
	}

	c := &CLI{
		configPath: configPath,
		config:     cfg,
		format:     format,
		stdin:      stdin,
		Silent:     opts.Silent,
		Strict:     effectiveStrict,
		output: output.NewHandler(stdout, stderr,
			output.WithSilent(opts.Silent),
			output.WithStrict(effectiveStrict),
			output.WithJSON(opts.JSON),
		),
		logger: NewLogger(stderr, level).With().Str("config", configPath).Logger(),
	}

	if missing {
		if explicit {
			if err := c.output.Warnf(output.CodeWarnConfigNotFound, "config file %s not found, using defaults", configPath); err != nil {
				return nil, output.Wrap(output.CodeConfigNotFound, err)
			}
		} else {
			c.logger.Debug().Msg("no config file, using defaults")
		}
	}

	return c, nil
}

// Output returns the unified output handler for this CLI instance.
func (c *CLI) Output() *output.Handler {
	return c.output
}

// Config returns the loaded configuration.
func (c *CLI) Config() config.Config {
	return c.config
}

// ConfigPath returns the resolved config file path.
func (c *CLI) ConfigPath() string {
	return c.configPath
}

// Format returns the record format used for stdout.
func (c *CLI) Format() keyfile.Format {
	return c.format
}

// WithContext attaches the CLI logger to ctx.
func (c *CLI) WithContext(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return c.logger.WithContext(ctx)
}

// warn emits a warning; in strict mode the returned error must abort the command.
func (c *CLI) warn(code output.Code, format string, args ...interface{}) *output.Error {
	if err := c.output.Warnf(code, format, args...); err != nil {
		return output.Wrap(output.CodeGeneralError, err)
	}
	return nil
}

func (c *CLI) readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(c.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	return readFile(path)
}
