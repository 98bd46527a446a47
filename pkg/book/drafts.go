package book

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"
)

// DraftMeta describes a staged draft awaiting polish.
type DraftMeta struct {
	// Language is the programming language the draft belongs to.
	Language string `json:"language"`

	// Slug is the draft's file name stem.
	Slug string `json:"slug"`

	// Title is the chapter title, when known.
	Title string `json:"title,omitempty"`

	// Model is the model that produced the draft.
	Model string `json:"model,omitempty"`

	// EstimatedTokens is the heuristic token count of the draft text,
	// used by the budget planner to size polish batches.
	EstimatedTokens int `json:"estimated_tokens"`

	// CreatedAt is when the draft was written.
	CreatedAt time.Time `json:"created_at"`
}

// Draft pairs a staged draft's metadata with its text.
type Draft struct {
	Meta DraftMeta
	Path string
	Text string
}

// ScanDrafts walks the output tree and returns drafts that have not been
// polished yet, ordered by (language, slug) so batch composition is stable
// across runs. A draft counts as polished once a file with the same slug
// exists under the language's final directory.
//
// A metadata file without a matching draft file is skipped with a warning;
// a draft file without metadata gets its estimate recomputed from the text.
func ScanDrafts(layout Layout) ([]Draft, error) {
	entries, err := os.ReadDir(layout.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var drafts []Draft
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == "errors" {
			continue
		}
		language := entry.Name()

		languageDrafts, err := scanLanguage(layout, language)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, languageDrafts...)
	}

	sort.Slice(drafts, func(i, j int) bool {
		if drafts[i].Meta.Language != drafts[j].Meta.Language {
			return drafts[i].Meta.Language < drafts[j].Meta.Language
		}
		return drafts[i].Meta.Slug < drafts[j].Meta.Slug
	})

	return drafts, nil
}

func scanLanguage(layout Layout, language string) ([]Draft, error) {
	entries, err := os.ReadDir(layout.DraftsDir(language))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read drafts for %s: %w", language, err)
	}

	var drafts []Draft
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		slug := strings.TrimSuffix(entry.Name(), ".md")

		// Already polished drafts are left in place but not rescanned.
		if _, err := os.Stat(layout.FinalPath(language, slug)); err == nil {
			continue
		}

		path := layout.DraftPath(language, slug)
		text, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read draft %s: %w", path, err)
		}

		meta, err := readDraftMeta(layout.DraftMetaPath(language, slug))
		if err != nil {
			slog.Warn("draft metadata unreadable, recomputing estimate",
				"language", language,
				"slug", slug,
				"error", err,
			)
			meta = DraftMeta{}
		}
		meta.Language = language
		meta.Slug = slug
		if meta.EstimatedTokens == 0 {
			meta.EstimatedTokens = EstimateTokens(string(text))
		}

		drafts = append(drafts, Draft{
			Meta: meta,
			Path: path,
			Text: string(text),
		})
	}

	return drafts, nil
}

func readDraftMeta(path string) (DraftMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DraftMeta{}, err
	}
	var meta DraftMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return DraftMeta{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return meta, nil
}
