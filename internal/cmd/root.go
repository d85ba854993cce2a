// Package cmd wires the duscan CLI: flag parsing, configuration assembly,
// and output rendering around the scan pipeline.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

// NewRootCommand creates the root duscan command. The root command itself
// performs the scan; history inspection lives in a subcommand.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duscan [target]",
		Short: "Analyze disk usage with flexible filtering and sorting",
		Long: `Duscan reports disk usage of a directory subtree with configurable depth,
size thresholds, sort order, and whitelist/blacklist filtering, rendered as
a flat list or a tree.

Patterns are shell globs by default; prefix with "regex:" for regular
expression search. A non-empty whitelist fully overrides the blacklist, and
whitelisted paths are exempt from the min-size and cut thresholds. Pattern
files ` + "`.duscan_include` and `.duscan_ignore`" + ` are auto-discovered in the
target directory and your home directory when no explicit patterns are
given.

Examples:
  # Two levels deep, entries of 100 MB and up, largest last
  duscan -l 2 -m 100M /var

  # Tree view sorted by name
  duscan --tree --sort name ~/projects

  # Everything traversed, but final output trimmed below 1 GB
  duscan -a -c 1G /data

  # Keep only node_modules directories, wherever they are
  duscan -w node_modules --tree .

  # Exclude caches and temp files
  duscan -b '.cache,regex:\.tmp$' ~

  # Record the run and review it later
  duscan --save /srv && duscan history`,
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runScan,
	}

	flags := cmd.Flags()
	flags.IntP("level", "l", 1, "Maximum recursion depth (0 = target only)")
	flags.BoolP("one-file-system", "x", false, "Stay on one filesystem")
	flags.BoolP("dereference", "L", false, "Follow symbolic links")
	flags.StringP("min-size", "m", "0", "Minimum size threshold (e.g. 10M, 1.5G)")
	flags.BoolP("all", "a", false, "Include all entries regardless of min-size (cut still applies)")
	flags.StringP("cut", "c", "", "Final cutoff size applied after sorting (whitelisted paths exempt)")
	flags.StringP("whitelist", "w", "", "Comma-separated whitelist patterns or absolute paths (overrides blacklist)")
	flags.String("whitelist-file", "", "File containing whitelist patterns, one per line")
	flags.StringP("blacklist", "b", "", "Comma-separated blacklist patterns")
	flags.String("blacklist-file", "", "File containing blacklist patterns, one per line")
	flags.StringP("sort", "s", "size", "Sort key: size or name")
	flags.BoolP("reverse", "r", false, "Reverse sort order")
	flags.BoolP("tree", "t", false, "Display results as a tree")
	flags.StringP("format", "f", "relative", "Path format: absolute, relative, or basename")
	flags.BoolP("progress", "p", false, "Show sizing progress on stderr")
	flags.BoolP("debug", "d", false, "Enable debug diagnostics on stderr")
	flags.Int("workers", 0, "Size-measurement workers (0 = number of CPUs)")
	flags.Bool("save", false, "Record this run in the scan history")

	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
