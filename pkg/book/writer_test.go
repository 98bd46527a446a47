package book

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestWriteChapter_PrependsTitleHeading(t *testing.T) {
	w := NewWriter(NewLayout(t.TempDir()))

	path, err := w.WriteChapter("Go", "Slices", "slices", "content without heading")
	if err != nil {
		t.Fatalf("WriteChapter failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# Slices\n\n") {
		t.Errorf("Expected prepended title heading, got:\n%s", data)
	}
}

func TestWriteChapter_KeepsExistingHeading(t *testing.T) {
	w := NewWriter(NewLayout(t.TempDir()))

	path, err := w.WriteChapter("Go", "Slices", "slices", "# Slices\n\nbody")
	if err != nil {
		t.Fatalf("WriteChapter failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Count(string(data), "# Slices") != 1 {
		t.Errorf("Expected a single heading, got:\n%s", data)
	}
}

func TestEnsureTitleHeading_LeadingWhitespace(t *testing.T) {
	got := EnsureTitleHeading("\n\n# Already\nbody", "Other")
	if strings.HasPrefix(got, "# Other") {
		t.Errorf("Expected existing heading to be detected, got:\n%s", got)
	}
}

func TestWriteBook_Overwrites(t *testing.T) {
	w := NewWriter(NewLayout(t.TempDir()))

	if _, err := w.WriteBook("Rust", "first version"); err != nil {
		t.Fatalf("WriteBook failed: %v", err)
	}
	path, err := w.WriteBook("Rust", "second version")
	if err != nil {
		t.Fatalf("WriteBook failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "second version" {
		t.Errorf("Expected wholesale overwrite, got %q", data)
	}
}

func TestWriteDraft_WritesMetadata(t *testing.T) {
	layout := NewLayout(t.TempDir())
	w := NewWriter(layout)

	text := strings.Repeat("word ", 100)
	if _, err := w.WriteDraft("Lua", "lua-basics", text, DraftMeta{Model: "mixtral-8x7b"}); err != nil {
		t.Fatalf("WriteDraft failed: %v", err)
	}

	data, err := os.ReadFile(layout.DraftMetaPath("Lua", "lua-basics"))
	if err != nil {
		t.Fatalf("Expected metadata file: %v", err)
	}

	var meta DraftMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		t.Fatalf("Failed to parse metadata: %v", err)
	}
	if meta.Language != "Lua" || meta.Slug != "lua-basics" {
		t.Errorf("Unexpected meta identity: %+v", meta)
	}
	if meta.Model != "mixtral-8x7b" {
		t.Errorf("Expected model to be recorded, got %q", meta.Model)
	}
	// 100 words * 1.3 + 100 overhead
	if meta.EstimatedTokens != 230 {
		t.Errorf("Expected estimate 230, got %d", meta.EstimatedTokens)
	}
}

func TestWriteErrorReport_UniqueFiles(t *testing.T) {
	layout := NewLayout(t.TempDir())
	w := NewWriter(layout)

	first, err := w.WriteErrorReport(ErrorReport{Stage: "draft", Language: "Go", Error: "boom"})
	if err != nil {
		t.Fatalf("WriteErrorReport failed: %v", err)
	}
	second, err := w.WriteErrorReport(ErrorReport{Stage: "draft", Language: "Go", Error: "boom again"})
	if err != nil {
		t.Fatalf("WriteErrorReport failed: %v", err)
	}

	if first == second {
		t.Error("Expected distinct report files for distinct failures")
	}

	data, _ := os.ReadFile(first)
	var report ErrorReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("Failed to parse report: %v", err)
	}
	if report.ID == "" || report.Timestamp.IsZero() {
		t.Errorf("Expected ID and timestamp to be filled in: %+v", report)
	}
	if report.Error != "boom" {
		t.Errorf("Unexpected error message: %q", report.Error)
	}
}

func TestEstimateTokens(t *testing.T) {
	if got := EstimateTokens(""); got != 100 {
		t.Errorf("Expected flat overhead 100 for empty text, got %d", got)
	}
	if got := EstimateTokens("one two three four five six seven eight nine ten"); got != 113 {
		t.Errorf("Expected 113 for ten words, got %d", got)
	}
}
