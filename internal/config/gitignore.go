package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const gitignoreHeader = "# vlist project data written by 'vlist config init'\n"

// GitignoreContent returns the .gitignore written into the project directory
// dir. Log files are always ignored. When logFile lies inside dir, its path
// relative to dir is listed as well so a non-".log" name stays untracked.
func GitignoreContent(dir, logFile string) string {
	var sb strings.Builder
	sb.WriteString(gitignoreHeader)
	sb.WriteString("*.log\n")

	if rel, ok := relativeInside(dir, logFile); ok && filepath.Ext(rel) != ".log" {
		sb.WriteString("/" + filepath.ToSlash(rel) + "\n")
	}
	return sb.String()
}

// relativeInside reports path relative to dir when path is inside dir.
func relativeInside(dir, path string) (string, bool) {
	if path == "" || !filepath.IsAbs(path) {
		return "", false
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// EnsureGitignore writes GitignoreContent(dir, logFile) to dir/.gitignore unless
// the file exists. It reports whether a file was created.
func EnsureGitignore(dir, logFile string) (bool, error) {
	gitignorePath := filepath.Join(dir, ".gitignore")

	if _, err := os.Stat(gitignorePath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking .gitignore at %s: %w", gitignorePath, err)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	//nolint:gosec // .gitignore must be world-readable (0644).
	if err := os.WriteFile(gitignorePath, []byte(GitignoreContent(dir, logFile)), 0o644); err != nil {
		return false, fmt.Errorf("writing .gitignore at %s: %w", gitignorePath, err)
	}

	return true, nil
}
