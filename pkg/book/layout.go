// Package book manages the on-disk layout of the generated encyclopedia:
// per-language book files, chapter files, draft staging, polished finals,
// and error reports.
package book

import "path/filepath"

// Layout computes paths inside the output tree. The tree is laid out as:
//
//	<root>/
//	  <Language>/
//	    book.md                  single-file book
//	    chapters/<slug>.md       individually generated chapters
//	    drafts/<slug>.md         cheap drafts awaiting polish
//	    drafts/meta/<slug>.json  draft metadata (token estimates, model)
//	    final/<slug>.md          polished chapters
//	  errors/<id>.json           error reports across all languages
//
// Language directories keep the language's display name verbatim; slugs are
// only used for file names within them.
type Layout struct {
	// Root is the output directory holding all languages.
	Root string
}

// NewLayout creates a layout rooted at dir.
func NewLayout(dir string) Layout {
	return Layout{Root: dir}
}

// LanguageDir returns the directory for a language.
func (l Layout) LanguageDir(language string) string {
	return filepath.Join(l.Root, language)
}

// BookPath returns the path of the single-file book for a language.
func (l Layout) BookPath(language string) string {
	return filepath.Join(l.LanguageDir(language), "book.md")
}

// ChaptersDir returns the chapters directory for a language.
func (l Layout) ChaptersDir(language string) string {
	return filepath.Join(l.LanguageDir(language), "chapters")
}

// ChapterPath returns the path of a chapter file.
func (l Layout) ChapterPath(language, slug string) string {
	return filepath.Join(l.ChaptersDir(language), slug+".md")
}

// DraftsDir returns the drafts directory for a language.
func (l Layout) DraftsDir(language string) string {
	return filepath.Join(l.LanguageDir(language), "drafts")
}

// DraftPath returns the path of a draft file.
func (l Layout) DraftPath(language, slug string) string {
	return filepath.Join(l.DraftsDir(language), slug+".md")
}

// DraftMetaDir returns the draft metadata directory for a language.
func (l Layout) DraftMetaDir(language string) string {
	return filepath.Join(l.DraftsDir(language), "meta")
}

// DraftMetaPath returns the path of a draft's metadata file.
func (l Layout) DraftMetaPath(language, slug string) string {
	return filepath.Join(l.DraftMetaDir(language), slug+".json")
}

// FinalDir returns the polished chapters directory for a language.
func (l Layout) FinalDir(language string) string {
	return filepath.Join(l.LanguageDir(language), "final")
}

// FinalPath returns the path of a polished chapter file.
func (l Layout) FinalPath(language, slug string) string {
	return filepath.Join(l.FinalDir(language), slug+".md")
}

// ErrorsDir returns the directory holding error reports.
func (l Layout) ErrorsDir() string {
	return filepath.Join(l.Root, "errors")
}
