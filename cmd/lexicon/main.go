// Lexicon generates a multi-language programming encyclopedia by driving
// LLM provider APIs and writing the results as Markdown.
//
// It works through an ordered language list one run at a time, tracking
// progress in an append-only completion log, and supports a cheap
// draft-then-polish flow for bulk production within free-tier quotas.
//
// Usage:
//
//	# Generate the next book from the language queue
//	lexicon generate
//
//	# Rehearse a run without calling any API
//	lexicon generate --mock
//
//	# Generate a single chapter
//	lexicon chapter --language Go --title "Concurrency Patterns"
//
//	# Stage cheap drafts for the whole backlog
//	lexicon draft
//
//	# Polish staged drafts within today's request budget
//	lexicon polish
//
//	# Show queue progress and the remaining budget
//	lexicon status
//
//	# Run the cron daemon with the drafts watcher
//	lexicon schedule
package main

func main() {
	Execute()
}
