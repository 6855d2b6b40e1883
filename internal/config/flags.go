package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into mode selection, validation, display, and utility.
// Mode flags are applied after Parse so Config defaults hold unless set.

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. On error it returns non-nil (e.g. unknown flag, missing case file).
func ParseFlags(cfg *Config, version string) error {
	fs := flag.NewFlagSet("mediarestore", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	// Mode and override flags: we capture values then apply to cfg after
	// Parse, so that defaults from DefaultConfig() hold unless the user
	// passes the flag.
	var raw rawFlags

	defineModeFlags(fs, cfg, &raw)
	defineValidationFlags(fs, cfg, &raw)
	defineDisplayFlags(fs, cfg, &raw)
	defineUtilityFlags(fs, &raw)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	if raw.showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if raw.showVersion {
		fmt.Fprintln(os.Stdout, "mediarestore v"+version)
		os.Exit(0)
	}

	if err := applyRawFlags(cfg, &raw); err != nil {
		return err
	}
	return parsePositionalArgs(fs, cfg)
}

// rawFlags holds flag values that are applied after Parse. Mode flags are
// mutually exclusive and resolved in applyRawFlags; help/version trigger
// exit before any further processing.
type rawFlags struct {
	moveMode       bool
	cleanupDir     string
	checkDeps      bool
	timeoutSeconds float64
	forceColor     bool
	noColor        bool
	showVersion    bool
	showHelp       bool
}

// defineModeFlags registers -m/--move, -c/--cleanup, -p/--check-deps.
func defineModeFlags(fs *flag.FlagSet, cfg *Config, r *rawFlags) {
	fs.BoolVar(&r.moveMode, "move", false, "Move files to valid/ and invalid/ instead of rename/delete")
	fs.BoolVar(&r.moveMode, "m", false, "Same as --move")
	fs.StringVar(&r.cleanupDir, "cleanup", "", "Recursively delete invalid media under <dir>")
	fs.StringVar(&r.cleanupDir, "c", "", "Same as --cleanup")
	fs.BoolVar(&r.checkDeps, "check-deps", false, "Check required decoders and exit")
	fs.BoolVar(&r.checkDeps, "p", false, "Same as --check-deps")
}

// defineValidationFlags registers --timeout and --fix-ext.
func defineValidationFlags(fs *flag.FlagSet, cfg *Config, r *rawFlags) {
	fs.Float64Var(&r.timeoutSeconds, "timeout", DefaultTimeout.Seconds(), "Per-file validation timeout in seconds")
	fs.BoolVar(&cfg.FixExtensions, "fix-ext", false, "Correct restored extensions to the decoded format")
}

// defineDisplayFlags registers --color, --no-color, verbose, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, r *rawFlags) {
	fs.BoolVar(&r.forceColor, "color", false, "Force colored output")
	fs.BoolVar(&r.noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.LogEnabled, "log", false, "Append decisions to <case>.log")
	fs.BoolVar(&cfg.LogEnabled, "l", false, "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, r *rawFlags) {
	fs.BoolVar(&r.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&r.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&r.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&r.showHelp, "h", false, "Same as --help")
}

// applyRawFlags copies captured flag values into cfg and resolves the run
// mode. The mode flags are mutually exclusive.
func applyRawFlags(cfg *Config, r *rawFlags) error {
	modes := 0
	if r.moveMode {
		modes++
	}
	if r.cleanupDir != "" {
		modes++
	}
	if r.checkDeps {
		modes++
	}
	if modes > 1 {
		return fmt.Errorf("flags -m, -c and -p are mutually exclusive")
	}

	switch {
	case r.checkDeps:
		cfg.CheckOnly = true
	case r.cleanupDir != "":
		cfg.Mode = ModeCleanup
		cfg.CleanupDir = NormalizeDirArg(r.cleanupDir)
	case r.moveMode:
		cfg.Mode = ModeMove
	}

	if r.timeoutSeconds <= 0 {
		return fmt.Errorf("timeout must be positive (got %v)", r.timeoutSeconds)
	}
	cfg.Timeout = time.Duration(r.timeoutSeconds * float64(time.Second))

	if r.noColor {
		cfg.ColorMode = ColorNever
	} else if r.forceColor {
		cfg.ColorMode = ColorAlways
	}
	return nil
}

// parsePositionalArgs sets CasePath from the single positional arg in
// rename/move modes. Check and cleanup modes take no positional args.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly || cfg.Mode == ModeCleanup {
		if len(args) != 0 {
			return fmt.Errorf("unexpected argument %q", args[0])
		}
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("need exactly one case JSON file")
	}
	cfg.CasePath = args[0]
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "mediarestore v" + version + " — restore original names in Cellebrite PA media exports"},
		{"", ""},
		{"  mediarestore [OPTIONS] <case.json>", ""},
		{"  mediarestore -m <case.json>", ""},
		{"  mediarestore -c <dir>", ""},
		{"  mediarestore -p", ""},
		{"", ""},
		{"Modes", ""},
		{"  (default)", "Rename valid media to the report name, delete invalid media"},
		{"  -m, --move", "Move valid media to ./valid/, invalid media to ./invalid/"},
		{"  -c, --cleanup <dir>", "Recursively delete invalid media under <dir>"},
		{"  -p, --check-deps", "Check that ffprobe and the image decoders are available"},
		{"", ""},
		{"Validation", ""},
		{"  --timeout <seconds>", "Per-file validation timeout (default: 15)"},
		{"  --fix-ext", "Correct restored extensions to the decoded format"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored output"},
		{"  --no-color", "Disable colored output"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log", "Append decisions to <case>.log"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
