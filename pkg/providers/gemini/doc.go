// Package gemini implements the Google Gemini provider adapter.
//
// This package provides an implementation of the providers.Provider
// interface for the generateContent API. Responses arrive as candidate
// content blocks whose text parts are concatenated; a legacy top-level
// output field is accepted as a fallback. Unrecognized payloads surface as
// providers.ParseError with the raw body preserved.
//
// Gemini serves the polishing stage, which batches several drafts into one
// request to stretch a small daily quota; the batching itself lives in the
// pipeline, not here.
package gemini
