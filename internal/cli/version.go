package cli

import (
	"crypto/fips140"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// VersionInfo represents version information as a structured object.
type VersionInfo struct {
	Version        string     `json:"version"`
	Commit         string     `json:"commit"`
	BuiltAt        string     `json:"builtAt"`
	GoBuildVersion string     `json:"goBuildVersion"`
	Crypto         CryptoInfo `json:"crypto"`
}

// CryptoInfo describes the crypto module used for fingerprinting.
type CryptoInfo struct {
	GOFIPS140 string `json:"GOFIPS140,omitempty"`
	Enabled   bool   `json:"enabled"`
}

// NewVersionInfo fills in defaults for values not stamped at link time.
func NewVersionInfo(version, commit, date string) VersionInfo {
	return VersionInfo{
		Version:        orDefault(version, "unknown"),
		Commit:         orDefault(commit, "none"),
		BuiltAt:        orDefault(date, "unknown"),
		GoBuildVersion: runtime.Version(),
		Crypto: CryptoInfo{
			GOFIPS140: fipsBuildSetting(),
			Enabled:   fips140.Enabled(),
		},
	}
}

// String renders the crypto status line shown by "version".
func (ci CryptoInfo) String() string {
	if ci.GOFIPS140 == "" {
		return "Go standard library (not FIPS validated)"
	}
	status := "FIPS 140-3 mode disabled"
	if ci.Enabled {
		status = "FIPS 140-3 mode enabled"
	}
	return fmt.Sprintf("%s GOFIPS140=%s (%s)", runtime.Version(), ci.GOFIPS140, status)
}

// PrintVersion prints the version information
func PrintVersion(w io.Writer, info VersionInfo) {
	_, _ = fmt.Fprintf(w, "version: %s\n", info.Version)
	_, _ = fmt.Fprintf(w, "commit: %s\n", info.Commit)
	_, _ = fmt.Fprintf(w, "built at: %s\n", info.BuiltAt)
	_, _ = fmt.Fprintf(w, "crypto: %s\n", info.Crypto)
}

// PrintVersionJSON prints version information as JSON.
func PrintVersionJSON(w io.Writer, info VersionInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}

// fipsBuildSetting returns the GOFIPS140 setting used at build time, if any.
func fipsBuildSetting() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == "GOFIPS140" {
			return setting.Value
		}
	}
	return ""
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
