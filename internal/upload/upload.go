// Package upload pushes exercise plan files written offline to a HealthTrack
// server, remembering what was sent in a local SQLite database.
package upload

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/claude/healthtrack/internal/plan"
)

// planExtensions are the file types picked up when walking a directory.
var planExtensions = map[string]bool{".md": true, ".markdown": true, ".txt": true}

// Stats tracks upload progress.
type Stats struct {
	FilesTotal    int
	FilesUploaded int
	FilesSkipped  int
	FilesErrored  int
	DaysParsed    int
}

// PlanSaver is the server side of an upload. *Client implements it.
type PlanSaver interface {
	SavePlan(ctx context.Context, env plan.Environment, text string) error
}

// Uploader collects plan files, checks that they parse, and saves each one
// as the user's plan for its environment.
type Uploader struct {
	client PlanSaver
	state  *StateDB
	env    plan.Environment
	dryRun bool
	log    *slog.Logger
	stats  Stats
}

// New creates a new Uploader. env forces the environment of every file;
// when empty it is taken from the file name (see EnvironmentFor). state may
// be nil, in which case every file is sent.
func New(client PlanSaver, state *StateDB, env plan.Environment, dryRun bool, log *slog.Logger) *Uploader {
	return &Uploader{
		client: client,
		state:  state,
		env:    env,
		dryRun: dryRun,
		log:    log,
	}
}

// EnvironmentFor derives the environment from a file name: names containing
// "gym" are gym plans, names containing "home" are home plans. fallback is
// used for anything else.
func EnvironmentFor(path string, fallback plan.Environment) (plan.Environment, error) {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(name, string(plan.Gym)):
		return plan.Gym, nil
	case strings.Contains(name, string(plan.Home)):
		return plan.Home, nil
	case fallback != "":
		return fallback, nil
	}
	return "", fmt.Errorf("%s: cannot tell home from gym, name the file after the environment or pass one explicitly", path)
}

// Run uploads every plan file found in paths. Directories are walked for
// .md, .markdown and .txt files. A file that fails is counted and logged and
// does not stop the run.
func (u *Uploader) Run(ctx context.Context, paths []string) (*Stats, error) {
	files, err := collectFiles(paths)
	if err != nil {
		return &u.stats, err
	}
	u.stats.FilesTotal = len(files)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return &u.stats, err
		}
		if err := u.uploadFile(ctx, path); err != nil {
			u.stats.FilesErrored++
			u.log.Error("upload failed", "file", path, "error", err)
		}
	}
	return &u.stats, nil
}

func (u *Uploader) uploadFile(ctx context.Context, path string) error {
	env := u.env
	if env == "" {
		var err error
		if env, err = EnvironmentFor(path, ""); err != nil {
			return err
		}
	}

	hash, err := HashFile(path)
	if err != nil {
		return fmt.Errorf("hashing: %w", err)
	}
	if u.state != nil {
		done, err := u.state.IsUploaded(path, string(env), hash)
		if err != nil {
			return fmt.Errorf("checking state: %w", err)
		}
		if done {
			u.stats.FilesSkipped++
			u.log.Debug("unchanged, skipping", "file", path, "environment", env)
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading: %w", err)
	}
	days := plan.Parse(string(data))
	if len(days) == 0 {
		return fmt.Errorf("no \"Day N\" headings found")
	}
	u.stats.DaysParsed += len(days)

	if u.dryRun {
		u.log.Info("dry run", "file", path, "environment", env, "days", len(days))
		return nil
	}

	if err := u.client.SavePlan(ctx, env, string(data)); err != nil {
		return err
	}
	if u.state != nil {
		if err := u.state.MarkUploaded(path, string(env), hash, len(days)); err != nil {
			return fmt.Errorf("recording upload: %w", err)
		}
	}
	u.stats.FilesUploaded++
	u.log.Info("uploaded", "file", path, "environment", env, "days", len(days))
	return nil
}

// collectFiles expands directories and returns absolute, de-duplicated paths
// in sorted order.
func collectFiles(paths []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	add := func(p string) error {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		if !seen[abs] {
			seen[abs] = true
			files = append(files, abs)
		}
		return nil
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		if !info.IsDir() {
			if err := add(p); err != nil {
				return nil, err
			}
			continue
		}
		err = filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !planExtensions[strings.ToLower(filepath.Ext(path))] {
				return nil
			}
			return add(path)
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", p, err)
		}
	}

	sort.Strings(files)
	return files, nil
}
