// Package huggingface implements the Hugging Face Inference API provider
// adapter.
//
// Hosted models behind the Inference API do not share a single response
// shape: some return a list of objects with a generated_text field, some a
// flat object, and some wrap results in a list under a results key. The
// adapter normalizes all known shapes to plain text and returns a
// providers.ParseError carrying the raw body for anything it does not
// recognize, so an unexpected payload is preserved for inspection rather
// than written into a chapter.
package huggingface
