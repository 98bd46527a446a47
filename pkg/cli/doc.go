// Package cli provides shared helpers for the lexicon command line:
// typed command errors, signal-aware contexts, and output formatting.
package cli
