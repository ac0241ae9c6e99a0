// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - DocumentService: the Content Source (upload, extraction, lookup)
//   - AnalysisService: asynchronous similarity jobs on a bounded worker pool
//   - SettingsService: typed settings over a ConfigStore
//
// Services are pure Go with no CGO dependencies.
package services
