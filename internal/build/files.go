// Package build drives the compiler over files: it finds sources, loads
// them, merges each result into a skeleton and writes or diffs the target.
package build

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Job is one source file and the target it compiles to.
type Job struct {
	Source string
	Target string
}

// TargetFor swaps the extension of source for ext.
func TargetFor(source, ext string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + ext
}

// Discover walks root and returns a job for every file ending in sourceExt,
// sorted by path.
func Discover(root, sourceExt, targetExt string) ([]Job, error) {
	var jobs []Job
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), sourceExt) {
			jobs = append(jobs, Job{Source: path, Target: TargetFor(path, targetExt)})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Source < jobs[j].Source })
	return jobs, nil
}

// ReadSource reads a whole markup file as UTF-8. A leading byte order mark
// is dropped and line endings are normalised to "\n".
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return decode(data)
}

func decode(data []byte) (string, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return "", fmt.Errorf("failed to decode: %w", err)
	}
	text := strings.ReplaceAll(string(decoded), "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n"), nil
}

// LoadOrDefault returns the contents of path, or fallback when it cannot be
// read. loaded reports which one was returned.
func LoadOrDefault(path, fallback string) (content string, loaded bool) {
	if path == "" {
		return fallback, false
	}
	text, err := ReadSource(path)
	if err != nil {
		return fallback, false
	}
	return text, true
}

// WriteTarget writes content to path, creating parent directories.
func WriteTarget(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// readExisting returns the current content of a target, empty when missing.
func readExisting(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
