package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dotsecenv/actorkey/pkg/actorkey/config"
	"github.com/dotsecenv/actorkey/pkg/actorkey/key"
	"github.com/dotsecenv/actorkey/pkg/actorkey/output"
)

// InitOptions holds the flags of the "init" command.
type InitOptions struct {
	DefaultKind string
	Strict      bool
}

// InitConfig writes a configuration file with the built-in defaults.
func InitConfig(configPath string, opts InitOptions, stderr io.Writer) *output.Error {
	// Check if file exists
	if _, err := os.Stat(configPath); err == nil {
		return output.NewErrorf(output.CodeConfigSaveError, "config file already exists: %s", configPath)
	}

	cfg := config.DefaultConfig()
	cfg.Strict = opts.Strict
	if opts.DefaultKind != "" {
		kind, err := key.ParseKind(opts.DefaultKind)
		if err != nil {
			return output.NewError(output.CodeUsageError, err.Error()).WithCause(err)
		}
		cfg.DefaultKind = kind
	}

	if err := saveConfigWithComments(configPath, cfg); err != nil {
		return output.NewErrorf(output.CodeConfigSaveError, "failed to save config: %v", err).WithCause(err)
	}

	_, _ = fmt.Fprintf(stderr, "Initialized config file: %s\n", configPath)
	return nil
}

// saveConfigWithComments writes a config file with helpful comments for init.
// This produces a more user-friendly config file than config.Save alone.
func saveConfigWithComments(path string, cfg config.Config) error {
	// Create parent directory if needed
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	var sb strings.Builder

	sb.WriteString("# Actor kind used by 'actorkey new ACTOR' (user or client)\n")
	sb.WriteString(fmt.Sprintf("default_kind: %s\n", cfg.DefaultKind))
	sb.WriteString("# Format of records printed to stdout (json or yaml)\n")
	sb.WriteString(fmt.Sprintf("format: %s\n", cfg.Format))
	sb.WriteString("# Smallest RSA modulus accepted by 'actorkey validate'\n")
	sb.WriteString(fmt.Sprintf("min_rsa_bits: %d\n", cfg.MinRSABits))
	sb.WriteString("# Turn warnings (expired keys, missing expiration dates) into errors\n")
	sb.WriteString(fmt.Sprintf("strict: %t\n", cfg.Strict))
	sb.WriteString("# Log level: trace, debug, info, warn or error\n")
	if cfg.LogLevel != "" {
		sb.WriteString(fmt.Sprintf("log_level: %s\n", cfg.LogLevel))
	} else {
		sb.WriteString("log_level: warn\n")
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
