// Package keyfile reads and writes key records stored on disk as JSON or YAML.
package keyfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dotsecenv/actorkey/pkg/actorkey/key"
)

// Format is the on-disk encoding of a record file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned by ParseFormat for anything but json or yaml.
var ErrUnknownFormat = errors.New("unknown record format")

// ErrLocked is returned when another process holds the record's lock.
var ErrLocked = errors.New("record file is locked")

// ParseFormat converts "json", "yaml" or "yml" into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (expected json or yaml)", ErrUnknownFormat, s)
	}
}

// FormatForPath picks the format from the file extension; JSON unless the
// path ends in .yaml or .yml.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Encode renders k in the given format, terminated by a newline.
func Encode(k *key.Key, f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		return k.YAML()
	case FormatJSON, "":
		data, err := k.JSON()
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Decode parses a record in the given format.
func Decode(data []byte, f Format) (*key.Key, error) {
	switch f {
	case FormatYAML:
		return key.FromYAML(data)
	case FormatJSON, "":
		return key.FromJSON(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Read loads the record stored at path, choosing the format by extension.
func Read(path string) (*key.Key, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record: %w", err)
	}
	k, err := Decode(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return k, nil
}

// Write stores k at path atomically. The write happens under an exclusive
// lock on path + ".lock"; the file is created with mode 0600.
func Write(path string, k *key.Key, f Format) error {
	data, err := Encode(k, f)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	lock, err := acquire(path + ".lock")
	if err != nil {
		return err
	}
	defer lock.release()

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if err := tmpFile.Chmod(0o600); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write record: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

type fileLock struct {
	file *os.File
}

func acquire(lockPath string) (*fileLock, error) {
	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}
	if err := lockFile(file); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrLocked, lockPath, err)
	}
	return &fileLock{file: file}, nil
}

func (l *fileLock) release() {
	_ = unlockFile(l.file)
	_ = l.file.Close()
}
