// Package queue selects the next languages to generate from a static ordered
// list, filtered against an append-only completion log.
//
// The list file is newline-delimited; blank lines and lines starting with '#'
// are skipped. The completion log is plain text, one language per line, and
// is only ever appended to. Duplicate log entries are tolerated: the log is
// read as a set, so a re-run after a crash between write and append cannot
// corrupt selection.
package queue

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Queue selects work units from the language list.
type Queue struct {
	languagesPath string
	completedPath string
	small         map[string]struct{}
	maxSmallPerRun int
}

// Options configures a Queue.
type Options struct {
	// LanguagesPath is the ordered language list file.
	LanguagesPath string

	// CompletedLogPath is the append-only completion log file.
	CompletedLogPath string

	// SmallLanguages are grouped up to MaxSmallPerRun at a time.
	SmallLanguages []string

	// MaxSmallPerRun caps the size of a small-language group (min 1).
	MaxSmallPerRun int
}

// New creates a Queue. A missing completion log is treated as empty; a
// missing language list surfaces on Languages().
func New(opts Options) *Queue {
	small := make(map[string]struct{}, len(opts.SmallLanguages))
	for _, lang := range opts.SmallLanguages {
		small[lang] = struct{}{}
	}
	maxSmall := opts.MaxSmallPerRun
	if maxSmall < 1 {
		maxSmall = 1
	}
	return &Queue{
		languagesPath:  opts.LanguagesPath,
		completedPath:  opts.CompletedLogPath,
		small:          small,
		maxSmallPerRun: maxSmall,
	}
}

// Languages returns the ordered candidate list from the list file.
func (q *Queue) Languages() ([]string, error) {
	langs, err := readList(q.languagesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read language list %q: %w", q.languagesPath, err)
	}
	return langs, nil
}

// Completed returns the set of languages recorded in the completion log.
// A missing log file yields an empty set.
func (q *Queue) Completed() (map[string]struct{}, error) {
	lines, err := readList(q.completedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]struct{}{}, nil
		}
		return nil, fmt.Errorf("failed to read completion log %q: %w", q.completedPath, err)
	}
	completed := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		completed[line] = struct{}{}
	}
	return completed, nil
}

// NextBatch returns the next 1-2 languages to process: the first language in
// list order that is not in the completion log. If that language is in the
// small set, the immediately following uncompleted language is grouped with
// it, capped at MaxSmallPerRun. An exhausted list yields an empty batch.
func (q *Queue) NextBatch() ([]string, error) {
	languages, err := q.Languages()
	if err != nil {
		return nil, err
	}
	completed, err := q.Completed()
	if err != nil {
		return nil, err
	}
	return Pick(languages, completed, q.small, q.maxSmallPerRun), nil
}

// Pick implements batch selection over in-memory inputs. It is exposed
// separately so selection can be tested without touching the filesystem.
func Pick(languages []string, completed map[string]struct{}, small map[string]struct{}, maxSmallPerRun int) []string {
	if maxSmallPerRun < 1 {
		maxSmallPerRun = 1
	}
	for i, lang := range languages {
		if _, done := completed[lang]; done {
			continue
		}
		if _, isSmall := small[lang]; !isSmall {
			return []string{lang}
		}
		group := []string{lang}
		if i+1 < len(languages) {
			next := languages[i+1]
			if _, done := completed[next]; !done {
				group = append(group, next)
			}
		}
		if len(group) > maxSmallPerRun {
			group = group[:maxSmallPerRun]
		}
		return group
	}
	return nil
}

// MarkCompleted appends a language to the completion log, creating parent
// directories and the file as needed. Callers must only invoke this after a
// successful output write; a crash before the append leaves the output file
// in place and the language unmarked, which is safe to re-run.
func (q *Queue) MarkCompleted(language string) error {
	if err := os.MkdirAll(filepath.Dir(q.completedPath), 0o755); err != nil {
		return fmt.Errorf("failed to create completion log directory: %w", err)
	}
	f, err := os.OpenFile(q.completedPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open completion log %q: %w", q.completedPath, err)
	}
	defer f.Close()

	if _, err := f.WriteString(language + "\n"); err != nil {
		return fmt.Errorf("failed to append to completion log: %w", err)
	}
	return f.Sync()
}

// readList reads a newline-delimited file, trimming whitespace and skipping
// blank lines and '#' comments.
func readList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var items []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		items = append(items, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
