package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"

	"github.com/backmassage/mediarestore/internal/config"
	"github.com/backmassage/mediarestore/internal/display"
	"github.com/backmassage/mediarestore/internal/logging"
	"github.com/backmassage/mediarestore/internal/naming"
	"github.com/backmassage/mediarestore/internal/planner"
	"github.com/backmassage/mediarestore/internal/report"
	"github.com/backmassage/mediarestore/internal/validate"
)

// Subdirectories created under the case dir in move mode.
const (
	validDirName   = "valid"
	invalidDirName = "invalid"
)

// Classifier is the minimal validation interface the pipeline needs.
// Defined here (rather than importing the concrete validator) so dispatch
// logic is testable with a canned classifier on an in-memory filesystem.
type Classifier interface {
	Classify(ctx context.Context, path string) validate.Verdict
}

// task pairs one exported file with its restoration target.
type task struct {
	path         string // Absolute or base-dir-relative path to the exported file.
	originalName string // On-device name from the report.
}

// Runner executes a configured run. All file mutation goes through fs so
// tests can run on afero's MemMapFs.
type Runner struct {
	fs  afero.Fs
	cfg *config.Config
	log *logging.Logger
	cls Classifier
}

// New assembles a Runner.
func New(fs afero.Fs, cfg *config.Config, log *logging.Logger, cls Classifier) *Runner {
	return &Runner{fs: fs, cfg: cfg, log: log, cls: cls}
}

// Run executes the run for the configured mode and returns aggregate
// stats. A fatal setup problem (unreadable report, missing cleanup dir)
// is returned as an error; per-file problems are logged and counted.
func (r *Runner) Run(ctx context.Context) (RunStats, error) {
	start := time.Now()
	var stats RunStats
	var err error

	if r.cfg.Mode == config.ModeCleanup {
		stats, err = r.cleanup(ctx)
	} else {
		stats, err = r.restore(ctx)
	}
	if err != nil {
		return stats, err
	}

	r.logSummary(&stats, time.Since(start))
	return stats, nil
}

// restore is the report-driven run: rename mode and move mode.
func (r *Runner) restore(ctx context.Context) (RunStats, error) {
	var stats RunStats

	mapping, err := report.Load(r.fs, r.cfg.CasePath)
	if err != nil {
		return stats, err
	}
	if mapping.Skipped > 0 {
		r.log.Warn("%d report entries without path or filename skipped", mapping.Skipped)
	}

	baseDir := r.cfg.BaseDir()
	if r.cfg.Mode == config.ModeMove {
		for _, d := range []string{validDirName, invalidDirName} {
			if err := r.fs.MkdirAll(filepath.Join(baseDir, d), 0o755); err != nil {
				return stats, fmt.Errorf("create %s directory: %w", d, err)
			}
		}
	}

	tasks := r.collectTasks(mapping, baseDir, &stats)
	stats.Total = len(tasks)
	r.log.Info("Found %d exported files to check", stats.Total)

	resolver := naming.NewCollisionResolver(r.fs)

	for i, t := range tasks {
		stats.Current = i + 1
		if ctx.Err() != nil {
			r.log.Warn("Interrupted")
			break
		}
		r.processFile(ctx, t, baseDir, resolver, &stats)
	}
	return stats, nil
}

// collectTasks resolves report entries to filesystem paths, dropping (and
// counting) entries whose exported file no longer exists.
func (r *Runner) collectTasks(mapping *report.Mapping, baseDir string, stats *RunStats) []task {
	var tasks []task
	for _, e := range mapping.Entries {
		path := filepath.Join(baseDir, filepath.FromSlash(e.RelativePath))
		if _, err := r.fs.Stat(path); err != nil {
			r.log.Warn("File not found: %s", path)
			stats.Missing++
			continue
		}
		tasks = append(tasks, task{path: path, originalName: e.OriginalName})
	}
	return tasks
}

// processFile handles one exported file: classify, plan, resolve, act.
func (r *Runner) processFile(ctx context.Context, t task, baseDir string, resolver *naming.CollisionResolver, stats *RunStats) {
	basename := filepath.Base(t.path)
	r.log.Info("[%d/%d] %s", stats.Current, stats.Total, basename)

	vd := r.cls.Classify(ctx, t.path)
	r.countVerdict(vd, basename, stats)

	switch planner.Plan(r.cfg.Mode, vd.Status) {
	case planner.ActionRename:
		dest := resolver.Resolve(t.path, filepath.Dir(t.path), r.restoredName(t, vd))
		r.place(t.path, dest, stats, &stats.Renamed, "Renamed")
	case planner.ActionMoveValid:
		dest := resolver.Resolve(t.path, filepath.Join(baseDir, validDirName), r.restoredName(t, vd))
		r.place(t.path, dest, stats, &stats.Moved, "Moved to valid/")
	case planner.ActionMoveInvalid:
		// Invalid files keep their exported name; the suffix only guards
		// against overwriting an earlier invalid file.
		dest := resolver.Resolve(t.path, filepath.Join(baseDir, invalidDirName), basename)
		if err := r.fs.Rename(t.path, dest); err != nil {
			r.log.Error("Cannot move %s: %v", basename, err)
			stats.Errors++
			return
		}
		stats.Moved++
		r.log.Info("  -> moved to invalid/: %s", filepath.Base(dest))
	case planner.ActionDelete:
		r.remove(t.path, stats)
	}
}

// restoredName returns the sanitized destination name for a valid file,
// falling back to the exported name when the report name is unusable, and
// applying the decoded extension when --fix-ext is set.
func (r *Runner) restoredName(t task, vd validate.Verdict) string {
	name := naming.SanitizeName(t.originalName)
	if name == "" {
		name = filepath.Base(t.path)
		r.log.Warn("  unusable report name %q, keeping exported name", t.originalName)
	}
	if !vd.CaptureTime.IsZero() {
		r.log.Debug(r.cfg.Verbose, "  EXIF capture time: %s", vd.CaptureTime.Format("2006-01-02 15:04:05"))
	}

	wantExt := formatExtension(vd.Format)
	if wantExt == "" {
		return name
	}
	haveExt := filepath.Ext(name)
	if equalFoldExt(haveExt, wantExt) {
		return name
	}
	if r.cfg.FixExtensions {
		fixed := name[:len(name)-len(haveExt)] + wantExt
		r.log.Info("  extension corrected: %s -> %s", name, fixed)
		return fixed
	}
	r.log.Warn("  extension %q does not match decoded format %q", haveExt, vd.Format)
	return name
}

// place renames/moves src to dest, flagging byte-identical collisions.
func (r *Runner) place(src, dest string, stats *RunStats, counter *int, label string) {
	r.noteDuplicate(src, dest, stats)
	if err := r.fs.Rename(src, dest); err != nil {
		r.log.Error("Cannot place %s: %v", filepath.Base(src), err)
		stats.Errors++
		return
	}
	*counter++
	r.log.Success("  -> %s: %s", label, filepath.Base(dest))
}

// remove deletes src and accounts for the reclaimed bytes.
func (r *Runner) remove(src string, stats *RunStats) {
	var size int64
	if fi, err := r.fs.Stat(src); err == nil {
		size = fi.Size()
	}
	if err := r.fs.Remove(src); err != nil {
		r.log.Error("Cannot delete %s: %v", filepath.Base(src), err)
		stats.Errors++
		return
	}
	stats.Deleted++
	stats.BytesReclaimed += size
	r.log.Info("  -> deleted")
}

// countVerdict updates verdict counters and writes the decision line.
func (r *Runner) countVerdict(vd validate.Verdict, basename string, stats *RunStats) {
	switch vd.Status {
	case validate.StatusValid:
		stats.Valid++
		r.log.Debug(r.cfg.Verbose, "  valid %s", vd.Format)
	case validate.StatusTimedOut:
		stats.TimedOut++
		r.log.Warn("  timeout: %s (%s)", basename, vd.Reason)
	case validate.StatusInterrupted:
		// The run is stopping; the file was never judged.
	default:
		stats.Invalid++
		r.log.Info("  invalid: %s", vd.Reason)
	}
}

// noteDuplicate logs when a collision-suffixed file is byte-identical to
// the file that owns the unsuffixed name. Both copies are kept; duplicate
// handling is an analyst's call, not ours.
func (r *Runner) noteDuplicate(src, dest string, stats *RunStats) {
	dir := filepath.Dir(dest)
	base := filepath.Base(dest)
	orig := naming.StripSuffix(base)
	if orig == base {
		return
	}
	first := filepath.Join(dir, orig)
	if _, err := r.fs.Stat(first); err != nil {
		return
	}
	h1, err1 := hashFile(r.fs, src)
	h2, err2 := hashFile(r.fs, first)
	if err1 != nil || err2 != nil {
		return
	}
	if h1 == h2 {
		stats.Duplicates++
		r.log.Warn("  duplicate content: %s and %s are byte-identical", base, orig)
	}
}

// hashFile returns the xxhash digest of a file's content.
func hashFile(fs afero.Fs, path string) (uint64, error) {
	f, err := fs.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

// cleanup is the recursive walk mode: delete everything that is not valid
// media, touch nothing else.
func (r *Runner) cleanup(ctx context.Context) (RunStats, error) {
	var stats RunStats

	dir := r.cfg.BaseDir()
	if fi, err := r.fs.Stat(dir); err != nil || !fi.IsDir() {
		return stats, fmt.Errorf("cleanup directory not found: %s", dir)
	}

	files, err := DiscoverFiles(r.fs, dir)
	if err != nil {
		return stats, fmt.Errorf("walk %q: %w", dir, err)
	}
	stats.Total = len(files)
	r.log.Info("Cleaning %s: %d files to check", dir, stats.Total)

	for i, path := range files {
		stats.Current = i + 1
		if ctx.Err() != nil {
			r.log.Warn("Interrupted")
			break
		}

		basename := filepath.Base(path)
		r.log.Info("[%d/%d] %s", stats.Current, stats.Total, basename)

		vd := r.cls.Classify(ctx, path)
		r.countVerdict(vd, basename, &stats)

		if planner.Plan(config.ModeCleanup, vd.Status) == planner.ActionDelete {
			r.remove(path, &stats)
		}
	}
	return stats, nil
}

func (r *Runner) logSummary(stats *RunStats, elapsed time.Duration) {
	r.log.Info("==============================")
	r.log.Info("Done in %s: %d valid, %d invalid, %d timed out",
		display.FormatDuration(elapsed), stats.Valid, stats.Invalid, stats.TimedOut)
	if stats.Renamed > 0 || r.cfg.Mode == config.ModeRename {
		r.log.Info("  Renamed: %d", stats.Renamed)
	}
	if r.cfg.Mode == config.ModeMove {
		r.log.Info("  Moved: %d", stats.Moved)
	}
	if stats.Deleted > 0 {
		r.log.Info("  Deleted: %d (%s reclaimed)", stats.Deleted, display.FormatBytes(stats.BytesReclaimed))
	}
	if stats.Missing > 0 {
		r.log.Warn("  Not found: %d", stats.Missing)
	}
	if stats.Duplicates > 0 {
		r.log.Warn("  Duplicate content: %d", stats.Duplicates)
	}
	if stats.Errors > 0 {
		r.log.Warn("  Skipped on error: %d", stats.Errors)
	}
}
