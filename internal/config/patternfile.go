package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Pattern file names auto-discovered in the scan target and home directory.
const (
	IncludeFileName = ".duscan_include"
	IgnoreFileName  = ".duscan_ignore"
)

// LoadPatternFile reads an ordered sequence of pattern strings from a file,
// skipping blank lines and comment lines starting with '#'.
func LoadPatternFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern file %s: %w", path, err)
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read pattern file %s: %w", path, err)
	}
	return patterns, nil
}

// FindPatternFiles returns the pattern files named filename that exist in
// the target directory and the user's home directory, local file first. The
// home file is skipped when it is the same file as the local one.
func FindPatternFiles(targetDir, filename string) []string {
	var files []string

	local := filepath.Join(targetDir, filename)
	if isRegularFile(local) {
		files = append(files, local)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return files
	}
	homeFile := filepath.Join(home, filename)
	if homeFile != local && isRegularFile(homeFile) {
		files = append(files, homeFile)
	}
	return files
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
