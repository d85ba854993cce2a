package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rcastner/duscan/internal/config"
	"github.com/rcastner/duscan/internal/display"
	"github.com/rcastner/duscan/internal/history"
	"github.com/rcastner/duscan/internal/logger"
	"github.com/rcastner/duscan/internal/pattern"
	"github.com/rcastner/duscan/internal/scan"
)

// scanSetup is everything runScan needs beyond the scan.Config itself.
type scanSetup struct {
	cfg         *scan.Config
	preWarnings []scan.Warning
	format      display.PathFormat
	logLevel    string
	progress    bool
	save        bool
}

// runScan is the RunE of the root command.
func runScan(cmd *cobra.Command, args []string) error {
	setup, err := buildSetup(cmd, args)
	if err != nil {
		return err
	}

	log := logger.New(cmd.ErrOrStderr(), setup.logLevel)
	started := time.Now()

	runner := scan.NewRunner(log)
	var progress *display.ProgressIndicator
	if setup.progress {
		progress = display.NewProgressIndicator(cmd.ErrOrStderr())
		runner.Progress = progress.Update
	}

	res, err := runner.Run(setup.cfg, setup.preWarnings)
	if progress != nil {
		// The progress line is cleared before anything else is printed.
		progress.Finish()
	}
	if err != nil {
		return err
	}

	renderer := display.Renderer{
		Out:    cmd.OutOrStdout(),
		Root:   setup.cfg.Root,
		Format: setup.format,
	}
	if err := renderer.Render(res); err != nil {
		return err
	}

	// Warnings go to stderr after the primary output, never interleaved.
	display.FlushWarnings(cmd.ErrOrStderr(), res.Warnings)
	log.Debugf("scan of %s complete: %s", setup.cfg.Root, display.Summary(res))

	if setup.save {
		if err := saveRun(setup.cfg, res, started); err != nil {
			log.Warnf("could not record run history: %v", err)
		}
	}
	return nil
}

// buildSetup assembles the scan configuration from YAML defaults and CLI
// flags, flags winning. All validation problems surface as ConfigError so
// the process exits with the argument-error code.
func buildSetup(cmd *cobra.Command, args []string) (*scanSetup, error) {
	flags := cmd.Flags()

	defaults, err := config.LoadUserDefaults()
	if err != nil {
		return nil, &scan.ConfigError{Reason: "defaults file", Err: err}
	}

	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	root, err := filepath.Abs(filepath.Clean(target))
	if err != nil {
		return nil, &scan.ConfigError{Reason: fmt.Sprintf("cannot resolve target %q", target), Err: err}
	}
	// A symlinked target scans its resolved directory; the walk itself
	// never follows the root link otherwise. A missing target is left as
	// is so the run fails with a TargetError, not a ConfigError.
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	level, _ := flags.GetInt("level")
	if !flags.Changed("level") && defaults.Level != nil {
		level = *defaults.Level
	}
	if level < 0 {
		return nil, &scan.ConfigError{Reason: fmt.Sprintf("level must be a non-negative integer, got %d", level)}
	}

	minSizeStr, _ := flags.GetString("min-size")
	if !flags.Changed("min-size") && defaults.MinSize != "" {
		minSizeStr = defaults.MinSize
	}
	minSize, err := config.ParseSize(minSizeStr)
	if err != nil {
		return nil, &scan.ConfigError{Reason: "min-size", Err: err}
	}

	var cut uint64
	if cutStr, _ := flags.GetString("cut"); cutStr != "" {
		cut, err = config.ParseSize(cutStr)
		if err != nil {
			return nil, &scan.ConfigError{Reason: "cut", Err: err}
		}
	}

	sortStr, _ := flags.GetString("sort")
	if !flags.Changed("sort") && defaults.Sort != "" {
		sortStr = defaults.Sort
	}
	sortKey, err := scan.ParseSortKey(sortStr)
	if err != nil {
		return nil, &scan.ConfigError{Reason: "sort", Err: err}
	}

	formatStr, _ := flags.GetString("format")
	if !flags.Changed("format") && defaults.Format != "" {
		formatStr = defaults.Format
	}
	format, err := display.ParsePathFormat(formatStr)
	if err != nil {
		return nil, &scan.ConfigError{Reason: "format", Err: err}
	}

	reverse, _ := flags.GetBool("reverse")
	if !flags.Changed("reverse") && defaults.Reverse != nil {
		reverse = *defaults.Reverse
	}
	tree, _ := flags.GetBool("tree")
	if !flags.Changed("tree") && defaults.Tree != nil {
		tree = *defaults.Tree
	}
	workers, _ := flags.GetInt("workers")
	if !flags.Changed("workers") && defaults.Workers != nil {
		workers = *defaults.Workers
	}
	if workers < 0 {
		return nil, &scan.ConfigError{Reason: fmt.Sprintf("workers must be >= 0, got %d", workers)}
	}

	all, _ := flags.GetBool("all")
	oneFS, _ := flags.GetBool("one-file-system")
	deref, _ := flags.GetBool("dereference")
	progress, _ := flags.GetBool("progress")
	save, _ := flags.GetBool("save")

	logLevel := defaults.LogLevel
	if debug, _ := flags.GetBool("debug"); debug {
		logLevel = "debug"
	}

	whitelistRaws, err := collectPatterns(flags, root, "whitelist", "whitelist-file", config.IncludeFileName)
	if err != nil {
		return nil, &scan.ConfigError{Reason: "whitelist", Err: err}
	}

	// The blacklist is only assembled when no whitelist exists at all; a
	// non-empty whitelist takes total precedence anyway.
	var blacklistRaws []string
	if len(whitelistRaws) == 0 {
		blacklistRaws, err = collectPatterns(flags, root, "blacklist", "blacklist-file", config.IgnoreFileName)
		if err != nil {
			return nil, &scan.ConfigError{Reason: "blacklist", Err: err}
		}
	}

	whitelistPaths, whitelistPatterns := splitWhitelist(whitelistRaws)
	activePaths, preWarnings := scan.ValidateWhitelistPaths(root, whitelistPaths)

	whitelist := pattern.NewSet()
	if err := whitelist.AddAll(whitelistPatterns); err != nil {
		return nil, &scan.ConfigError{Reason: "whitelist", Err: err}
	}
	blacklist := pattern.NewSet()
	if err := blacklist.AddAll(blacklistRaws); err != nil {
		return nil, &scan.ConfigError{Reason: "blacklist", Err: err}
	}

	cfg := &scan.Config{
		Root:           root,
		MaxDepth:       level,
		MinSize:        minSize,
		Cut:            cut,
		All:            all,
		Sort:           sortKey,
		Reverse:        reverse,
		Tree:           tree,
		FollowSymlinks: deref,
		OneFilesystem:  oneFS,
		Whitelist:      whitelist,
		Blacklist:      blacklist,
		WhitelistPaths: activePaths,
		Workers:        workers,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &scanSetup{
		cfg:         cfg,
		preWarnings: preWarnings,
		format:      format,
		logLevel:    logLevel,
		progress:    progress,
		save:        save,
	}, nil
}

// collectPatterns gathers raw pattern strings for one list: the inline
// comma-separated flag, then the explicit pattern file. When neither was
// given, the auto-discovered pattern files (target directory first, then
// home) supply the list.
func collectPatterns(flags *pflag.FlagSet, root, inlineFlag, fileFlag, discoverName string) ([]string, error) {
	var raws []string

	if inline, _ := flags.GetString(inlineFlag); inline != "" {
		for _, p := range strings.Split(inline, ",") {
			if p = strings.TrimSpace(p); p != "" {
				raws = append(raws, p)
			}
		}
	}

	if file, _ := flags.GetString(fileFlag); file != "" {
		loaded, err := config.LoadPatternFile(file)
		if err != nil {
			return nil, err
		}
		raws = append(raws, loaded...)
	}

	if len(raws) > 0 {
		return raws, nil
	}

	for _, pf := range config.FindPatternFiles(root, discoverName) {
		loaded, err := config.LoadPatternFile(pf)
		if err != nil {
			continue // discovered files are best-effort
		}
		raws = append(raws, loaded...)
	}
	return raws, nil
}

// splitWhitelist separates explicit whitelist paths from patterns. An entry
// is a path when it is absolute, carries no glob metacharacters, and is not
// a regex.
func splitWhitelist(raws []string) (paths, patterns []string) {
	for _, raw := range raws {
		if isExplicitPath(raw) {
			paths = append(paths, raw)
		} else {
			patterns = append(patterns, raw)
		}
	}
	return paths, patterns
}

func isExplicitPath(raw string) bool {
	if !strings.HasPrefix(raw, "/") {
		return false
	}
	if strings.HasPrefix(raw, pattern.RegexPrefix) {
		return false
	}
	return !strings.ContainsAny(raw, "*?[")
}

// saveRun records a completed run in the history database.
func saveRun(cfg *scan.Config, res *scan.Result, started time.Time) error {
	dbPath, err := history.DefaultPath()
	if err != nil {
		return err
	}
	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	var total uint64
	for _, e := range res.Entries {
		if e.Path == cfg.Root {
			total = e.Size
			break
		}
	}

	return store.Save(history.Run{
		ID:         history.NewRunID(),
		Root:       cfg.Root,
		StartedAt:  started,
		Duration:   res.Duration,
		Entries:    len(res.Entries),
		Warnings:   len(res.Warnings),
		TotalBytes: total,
		Flags:      summarizeFlags(cfg),
	})
}

// summarizeFlags renders the effective configuration compactly for the
// history record.
func summarizeFlags(cfg *scan.Config) string {
	parts := []string{fmt.Sprintf("-l %d", cfg.MaxDepth), "-s " + cfg.Sort.String()}
	if cfg.MinSize > 0 {
		parts = append(parts, fmt.Sprintf("-m %d", cfg.MinSize))
	}
	if cfg.Cut > 0 {
		parts = append(parts, fmt.Sprintf("-c %d", cfg.Cut))
	}
	if cfg.All {
		parts = append(parts, "-a")
	}
	if cfg.Reverse {
		parts = append(parts, "-r")
	}
	if cfg.Tree {
		parts = append(parts, "-t")
	}
	if cfg.OneFilesystem {
		parts = append(parts, "-x")
	}
	if cfg.FollowSymlinks {
		parts = append(parts, "-L")
	}
	return strings.Join(parts, " ")
}

