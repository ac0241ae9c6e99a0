// Package engine implements the analysis pipeline behind driven.AnalysisEngine.
//
// An Engine is built once per process with New, shared by every worker of
// the job orchestrator, and released with Close. Each Analyze call runs an
// ordered Pipeline of stages over private per-call state:
//
//	normalise -> tokenize -> vocabulary -> vectorize -> compare -> statistics
//
// Nothing computed by one call is visible to another.
package engine
