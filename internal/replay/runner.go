package replay

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/resonance/internal/engine"
)

// Config holds the replay command configuration.
type Config struct {
	Path      string // a .jsonl file or a directory searched recursively
	StatePath string // resumable state file; empty uses DefaultStatePath
	Since     time.Time
	Until     time.Time
	DryRun    bool // score and classify only, leave relationships untouched
}

// Summary reports what a run did.
type Summary struct {
	Files        int            `json:"files"`
	Messages     int            `json:"messages"`
	Applied      int            `json:"applied"`
	Skipped      int            `json:"skipped"`
	Errors       int            `json:"errors"`
	GlyphCounts  map[string]int `json:"glyph_counts"`
	DryRun       bool           `json:"dry_run"`
	AlreadyKnown int            `json:"already_processed"`
}

// Runner feeds message logs through the engine.
type Runner struct {
	cfg    Config
	engine *engine.Engine
	logger *slog.Logger
}

// NewRunner creates a replay runner.
func NewRunner(cfg Config, eng *engine.Engine, logger *slog.Logger) *Runner {
	return &Runner{cfg: cfg, engine: eng, logger: logger}
}

// Run replays every unprocessed file. State is saved after each file, and on
// cancellation with the count of messages already handled, so an interrupted
// run resumes at the first message it had not finished.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	state, err := LoadState(r.cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	files, err := r.discoverFiles()
	if err != nil {
		return nil, fmt.Errorf("discover files: %w", err)
	}

	sum := &Summary{GlyphCounts: make(map[string]int), DryRun: r.cfg.DryRun}
	var pending []string
	for _, f := range files {
		if state.IsProcessed(f) {
			sum.AlreadyKnown++
			continue
		}
		pending = append(pending, f)
	}
	state.FilesRemaining = len(pending)
	r.logger.Info("files discovered", "total", len(files), "pending", len(pending), "dry_run", r.cfg.DryRun)

	for _, path := range pending {
		if err := ctx.Err(); err != nil {
			r.logger.Info("replay interrupted, saving state")
			r.save(state)
			return sum, err
		}

		msgs, bad, err := ParseFile(path)
		if err != nil {
			r.logger.Error("failed to read file", "path", path, "error", err)
			state.AddError(err.Error())
			sum.Errors++
			r.save(state)
			continue
		}
		applied := 0
		done := min(state.Progress(path), len(msgs))
		if done > 0 {
			// Malformed lines were recorded by the interrupted run.
			r.logger.Info("resuming file", "path", path, "already_handled", done)
		} else {
			for _, le := range bad {
				r.logger.Warn("skipping malformed line", "path", path, "line", le.Line, "error", le.Err)
				state.AddError(fmt.Sprintf("%s: %v", path, le))
				sum.Errors++
			}
		}
		for i := done; i < len(msgs); i++ {
			if err := ctx.Err(); err != nil {
				return r.interrupt(state, sum, path, i, applied, err)
			}
			m := msgs[i]
			if !r.inDateRange(m.Timestamp) {
				sum.Skipped++
				continue
			}
			sum.Messages++

			if r.cfg.DryRun {
				ev := r.engine.Evaluate(m.Text)
				sum.GlyphCounts[ev.Glyph.String()]++
				continue
			}

			res, err := r.engine.ProcessAt(ctx, m.UserID, m.Text, m.Timestamp)
			if err != nil {
				if cerr := contextErr(ctx, err); cerr != nil {
					sum.Messages--
					return r.interrupt(state, sum, path, i, applied, cerr)
				}
				r.logger.Error("process failed", "path", path, "user_id", m.UserID, "error", err)
				state.AddError(fmt.Sprintf("%s: user %s: %v", path, m.UserID, err))
				sum.Errors++
				state.MessagesProcessed++
				continue
			}
			state.MessagesProcessed++
			sum.GlyphCounts[res.Glyph.String()]++
			applied++
		}

		sum.Applied += applied
		sum.Files++
		state.InteractionsApplied += applied
		if !r.cfg.DryRun {
			state.MarkProcessed(path)
		}
		state.FilesRemaining--
		r.save(state)

		r.logger.Info("file replayed", "path", path, "messages", len(msgs), "applied", applied)
	}

	r.logger.Info("replay complete",
		"files", sum.Files,
		"messages", sum.Messages,
		"applied", sum.Applied,
		"errors", sum.Errors,
	)
	return sum, nil
}

// interrupt records partial progress in path without marking it processed.
func (r *Runner) interrupt(state *State, sum *Summary, path string, handled, applied int, err error) (*Summary, error) {
	sum.Applied += applied
	state.InteractionsApplied += applied
	state.SetProgress(path, handled)
	r.logger.Info("replay interrupted, saving state", "path", path, "handled", handled)
	r.save(state)
	return sum, err
}

// contextErr reports err as a cancellation when it came from ctx.
func contextErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

// save writes state unless this is a dry run, which must leave no trace.
func (r *Runner) save(state *State) {
	if r.cfg.DryRun {
		return
	}
	if err := state.Save(); err != nil {
		r.logger.Warn("failed to save replay state", "path", state.Path(), "error", err)
	}
}

func (r *Runner) discoverFiles() ([]string, error) {
	info, err := os.Stat(r.cfg.Path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{r.cfg.Path}, nil
	}

	var files []string
	err = filepath.WalkDir(r.cfg.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".jsonl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// inDateRange treats messages without a timestamp as always in range.
func (r *Runner) inDateRange(ts time.Time) bool {
	if ts.IsZero() {
		return true
	}
	if !r.cfg.Since.IsZero() && ts.Before(r.cfg.Since) {
		return false
	}
	if !r.cfg.Until.IsZero() && ts.After(r.cfg.Until) {
		return false
	}
	return true
}

const dateLayout = "2006-01-02"

// ParseSince parses a lower bound given as a bare date or RFC3339. Empty means
// unbounded.
func ParseSince(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// ParseUntil parses an inclusive upper bound. A bare date covers the whole
// day, so it resolves to the last instant before the next midnight.
func ParseUntil(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	}
	return time.Parse(time.RFC3339, s)
}
