// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentStore: Content Source persistence (SQLite or memory)
//   - Extractor: Turns uploaded bytes into plain text
//   - ExtractorRegistry: Selects the extractor for a MIME type
//   - AnalysisEngine: Runs the normalise, vocabulary, TF-IDF and similarity stages
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or extractor package
package driven
