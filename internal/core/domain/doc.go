// Package domain defines the core business entities for dupecheck.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An uploaded document held by the Content Source
//   - SourceDocument: The (id, filename, text) tuple fed to analysis
//   - AnalysisJob: One asynchronous run of the similarity pipeline
//   - AnalysisResult: Pairs, matrix and statistics of a completed job
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
