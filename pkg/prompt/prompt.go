// Package prompt builds the text prompts sent to generation providers.
//
// Prompt construction is a pure function of its inputs plus the supplied
// date: the same language, title, and date always produce the same prompt.
// The master prompt (system context) is loaded from a file and merged with
// fixed per-stage instructions.
package prompt

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// PolishMarker separates polished chapters in a batched polish response.
const PolishMarker = "===POLISHED==="

// Frontmatter is the YAML frontmatter embedded at the top of chapter prompts.
type Frontmatter struct {
	Title    string `yaml:"title"`
	Language string `yaml:"language"`
	Date     string `yaml:"date"`
}

// Builder constructs prompts from the master prompt plus per-stage
// instructions.
type Builder struct {
	master string
	now    func() time.Time
}

// NewBuilder creates a Builder with the given master prompt text.
func NewBuilder(master string) *Builder {
	return &Builder{master: master, now: time.Now}
}

// NewBuilderFromFile loads the master prompt from a file. A missing file is
// an error: generation without system context produces unusable output.
func NewBuilderFromFile(path string) (*Builder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read master prompt %q: %w", path, err)
	}
	return NewBuilder(string(data)), nil
}

// WithClock replaces the time source, fixing the frontmatter date in tests.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Master returns the master prompt text.
func (b *Builder) Master() string {
	return b.master
}

// Book builds the user prompt requesting a complete encyclopedia for one
// language as a single Markdown book.
func (b *Builder) Book(language string) string {
	return fmt.Sprintf(
		"Produce the complete encyclopedia for the language '%s'. "+
			"Output a single Obsidian-ready Markdown file named book.md. "+
			"No meta commentary, no prompt leakage.", language)
}

// Chapter builds the prompt for a single chapter, embedding YAML frontmatter
// (title, language, date) followed by the fixed style guidance.
func (b *Builder) Chapter(language, title string) string {
	fm := Frontmatter{
		Title:    title,
		Language: language,
		Date:     b.now().UTC().Format("2006-01-02"),
	}
	fmBytes, _ := yaml.Marshal(&fm)

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(fmBytes)
	sb.WriteString("---\n\n")
	sb.WriteString("# " + title + "\n\n")
	sb.WriteString(chapterGuidance)
	sb.WriteString("\n\n<!-- Begin chapter content -->\n\n")
	return sb.String()
}

// ChapterInstructions builds the user prompt for a single-chapter run with
// the full chapter template constraints.
func (b *Builder) ChapterInstructions(language, title string) string {
	return fmt.Sprintf(
		"Produce a single chapter for the programming-language encyclopedia for '%s'.\n\n"+
			"The chapter title is: %q.\n\n"+
			"Constraints:\n"+
			"- Output valid Markdown only.\n"+
			"- Produce one chapter only (no extra chapters, no appendix).\n"+
			"- Start the chapter with a short Spark & Byte dialogue (2-4 lines).\n"+
			"- Include: Concept explanation, Deep dive, Multiple examples, at least one block\n"+
			"  with line-by-line annotated code, a Mermaid diagram, an Exercises section, and a short Recap.\n"+
			"- Use runnable examples where possible and label code blocks with language tags.\n"+
			"- Avoid mentioning prompts, system messages, or AI instructions.\n"+
			"- Keep output self-contained (no external links required).\n\n"+
			"Format requirements:\n"+
			"- First line must be a level-1 heading with the chapter title.\n"+
			"- The single chapter is the entire response (no surrounding explanation).\n\n"+
			"Now produce the chapter.\n", language, title)
}

// Draft builds the prompt for a bulk-drafting run: one representative
// chapter draft per language, to be polished and split later.
func (b *Builder) Draft(language string) string {
	var sb strings.Builder
	sb.WriteString(b.master)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Produce a detailed draft for the encyclopedia for language: %s.\n", language)
	sb.WriteString("Include chapters, but output only a single representative chapter draft as Markdown titled 'DRAFT: Example Chapter'.\n")
	sb.WriteString("This is a draft -- we will later polish and split.\n")
	return sb.String()
}

// PolishItem is one draft included in a batched polish prompt.
type PolishItem struct {
	Language string
	Slug     string
	Text     string
}

// Polish builds a batched polish prompt: editing instructions followed by
// each draft wrapped in DRAFT START/END markers. The response is expected to
// contain one polished chapter per draft, separated by PolishMarker.
func (b *Builder) Polish(items []PolishItem) string {
	var sb strings.Builder
	sb.WriteString("You are an expert editor. For each DRAFT block below, produce a polished, final Markdown chapter.")
	sb.WriteString(" Keep chapter formatting, add Spark & Byte dialogue, Mermaid diagram placeholders if needed, exercises, examples, and a concise recap.")
	sb.WriteString(" Output polished chapters in the same order as the drafts, separated by a clear marker: ")
	sb.WriteString(PolishMarker)
	sb.WriteString(" between chapters.\n\n")
	for _, item := range items {
		fmt.Fprintf(&sb, "### DRAFT START (%s/%s)\n%s\n### DRAFT END\n\n", item.Language, item.Slug, item.Text)
	}
	return sb.String()
}

// SplitPolished splits a polish response into per-draft chapters. When the
// marker is absent the whole response is treated as a single chapter; short
// responses are padded by repeating the full text so every draft in the
// batch receives output.
func SplitPolished(response string, expected int) []string {
	var parts []string
	if strings.Contains(response, PolishMarker) {
		for _, p := range strings.Split(response, PolishMarker) {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
	} else if trimmed := strings.TrimSpace(response); trimmed != "" {
		parts = append(parts, trimmed)
	}

	joined := strings.TrimSpace(response)
	for len(parts) < expected {
		parts = append(parts, joined)
	}
	return parts[:expected]
}

const chapterGuidance = `Write a complete, production-ready Obsidian Markdown chapter.

Style rules:
- Warm, analogy-heavy, teen-friendly voice (inverse tone shift as topics progress).
- Include a short Spark & Byte dialogue (two characters) that teases the core concept.
- Use Mermaid diagrams when helpful (provide the diagram code block).
- For code examples: include line-by-line commentary as inline comments or adjacent explanation.
- Provide 2-3 practical exercises and hide answers in collapsible sections.
- End with a concise recap and recommended next steps.
- Do NOT include any meta-text about prompts, 'as an AI', or internal tool details.`
