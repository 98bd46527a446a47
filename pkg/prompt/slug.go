package prompt

import "strings"

// FallbackSlug is returned when slugification consumes the whole input.
const FallbackSlug = "chapter"

// Slugify derives a filesystem-safe identifier from a human-readable title.
// Runs of non-alphanumeric characters collapse to a single hyphen, leading
// and trailing hyphens are stripped, and an empty result yields FallbackSlug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return FallbackSlug
	}
	return slug
}
