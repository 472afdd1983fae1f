// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The productivity engine lives here as plain functions:
// IndexCorpus, Creativity, Summarize, FilterVocabulary and the
// Resampler. AnalysisService chains them into a comparison.
//
// Services are pure Go with no CGO.
package services
