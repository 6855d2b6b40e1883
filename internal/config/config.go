// Package config holds runtime configuration: defaults, CLI flag parsing,
// and validation. The resulting Config is immutable for the duration of a
// run and is passed (by pointer) to the packages that need it.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// --- Enum types for validated string fields ---

// RunMode selects what the tool does with each exported file.
type RunMode string

const (
	ModeRename  RunMode = "rename"  // Rename valid files in place, delete invalid ones (default).
	ModeMove    RunMode = "move"    // Move valid files to valid/, invalid ones to invalid/.
	ModeCleanup RunMode = "cleanup" // Recursively delete invalid media under a directory.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultTimeout is the per-file media validation budget. Forensic exports
// routinely contain truncated or malformed media that can hang a decoder;
// the ceiling bounds total run time and guarantees forward progress.
const DefaultTimeout = 15 * time.Second

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being handed to the pipeline. Fields
// are grouped by concern with inline documentation of defaults.
type Config struct {
	// Mode and paths (set from flags and the positional arg).
	Mode       RunMode
	CasePath   string // Path to the ProjectVic case JSON (rename/move modes).
	CleanupDir string // Target directory for cleanup mode.

	// Validation.
	Timeout time.Duration // Per-file classification budget. Default: 15s.

	// Behavior flags.
	FixExtensions bool // Correct the restored name's extension to the decoded format.
	CheckOnly     bool // Run dependency diagnostics (-p) and exit.

	// Display and logging.
	Verbose    bool
	ColorMode  ColorMode // Default: "auto".
	LogEnabled bool      // Append decisions to the case log file.
}

// DefaultConfig returns a Config with all defaults applied. Used as the
// base before [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		Mode:          ModeRename,
		Timeout:       DefaultTimeout,
		FixExtensions: false,
		CheckOnly:     false,
		Verbose:       false,
		ColorMode:     ColorAuto,
		LogEnabled:    false,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an
// empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks that the mode/flag combination is coherent and that the
// required path argument for the selected mode is present. CheckOnly needs
// no paths at all.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeRename, ModeMove, ModeCleanup:
		// valid
	default:
		return fmt.Errorf("invalid mode %q", c.Mode)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}

	if c.CheckOnly {
		return nil
	}

	if c.Mode == ModeCleanup {
		if c.CleanupDir == "" {
			return errors.New("cleanup mode needs a target directory")
		}
		return nil
	}
	if c.CasePath == "" {
		return errors.New("need a case JSON file")
	}
	return nil
}

// LogFilePath derives the decision log path for the active mode:
// <case>.log next to the case JSON, or <dir>_cleanup.log beside the
// cleanup target. Empty when logging is disabled.
func (c *Config) LogFilePath() string {
	if !c.LogEnabled {
		return ""
	}
	if c.Mode == ModeCleanup {
		dir := NormalizeDirArg(c.CleanupDir)
		return filepath.Join(filepath.Dir(dir), filepath.Base(dir)+"_cleanup.log")
	}
	if c.CheckOnly || c.CasePath == "" {
		return "dependency_check.log"
	}
	ext := filepath.Ext(c.CasePath)
	return strings.TrimSuffix(c.CasePath, ext) + ".log"
}

// BaseDir is the directory the exported media lives in: the case JSON's
// parent in rename/move modes, the target itself in cleanup mode.
func (c *Config) BaseDir() string {
	if c.Mode == ModeCleanup {
		return NormalizeDirArg(c.CleanupDir)
	}
	return filepath.Dir(c.CasePath)
}
