package book

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Writer persists generated content into the output tree.
// Writes are wholesale: an existing file is replaced, never merged.
type Writer struct {
	layout Layout
}

// NewWriter creates a writer for the given layout.
func NewWriter(layout Layout) *Writer {
	return &Writer{layout: layout}
}

// Layout returns the writer's layout.
func (w *Writer) Layout() Layout {
	return w.layout
}

// WriteBook writes the single-file book for a language.
func (w *Writer) WriteBook(language, content string) (string, error) {
	path := w.layout.BookPath(language)
	if err := writeFile(path, content); err != nil {
		return "", err
	}
	slog.Info("book written", "language", language, "path", path)
	return path, nil
}

// WriteChapter writes a chapter file, prepending a title heading when the
// model did not produce one.
func (w *Writer) WriteChapter(language, title, slug, content string) (string, error) {
	path := w.layout.ChapterPath(language, slug)
	if err := writeFile(path, EnsureTitleHeading(content, title)); err != nil {
		return "", err
	}
	slog.Info("chapter written", "language", language, "slug", slug, "path", path)
	return path, nil
}

// WriteDraft writes a draft file and its metadata side file. The metadata's
// token estimate is computed from the draft text.
func (w *Writer) WriteDraft(language, slug, content string, meta DraftMeta) (string, error) {
	path := w.layout.DraftPath(language, slug)
	if err := writeFile(path, content); err != nil {
		return "", err
	}

	meta.Language = language
	meta.Slug = slug
	meta.EstimatedTokens = EstimateTokens(content)
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC()
	}

	metaPath := w.layout.DraftMetaPath(language, slug)
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal draft metadata: %w", err)
	}
	if err := writeFile(metaPath, string(data)+"\n"); err != nil {
		return "", err
	}

	slog.Info("draft written",
		"language", language,
		"slug", slug,
		"estimated_tokens", meta.EstimatedTokens,
	)
	return path, nil
}

// WriteFinal writes a polished chapter file.
func (w *Writer) WriteFinal(language, slug, content string) (string, error) {
	path := w.layout.FinalPath(language, slug)
	if err := writeFile(path, content); err != nil {
		return "", err
	}
	slog.Info("polished chapter written", "language", language, "slug", slug, "path", path)
	return path, nil
}

// ErrorReport records a failure as a JSON document instead of aborting the
// run. Reports are append-only evidence; nothing reads them back during
// normal operation.
type ErrorReport struct {
	ID          string    `json:"id"`
	Stage       string    `json:"stage"`
	Language    string    `json:"language,omitempty"`
	Slug        string    `json:"slug,omitempty"`
	Provider    string    `json:"provider,omitempty"`
	Error       string    `json:"error"`
	RawResponse string    `json:"raw_response,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// WriteErrorReport persists an error report under a fresh unique name and
// returns its path. The report's ID and timestamp are filled in when empty.
func (w *Writer) WriteErrorReport(report ErrorReport) (string, error) {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if report.Timestamp.IsZero() {
		report.Timestamp = time.Now().UTC()
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal error report: %w", err)
	}

	path := filepath.Join(w.layout.ErrorsDir(), report.ID+".json")
	if err := writeFile(path, string(data)+"\n"); err != nil {
		return "", err
	}

	slog.Warn("error report written",
		"stage", report.Stage,
		"language", report.Language,
		"slug", report.Slug,
		"path", path,
	)
	return path, nil
}

// EnsureTitleHeading prepends a level-one heading when content does not
// start with one. Leading whitespace is ignored for the check but preserved
// in the output body.
func EnsureTitleHeading(content, title string) string {
	trimmed := strings.TrimLeft(content, " \t\n")
	if strings.HasPrefix(trimmed, "# ") {
		return content
	}
	return "# " + title + "\n\n" + content
}

// writeFile writes content to path, creating parent directories as needed.
func writeFile(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
