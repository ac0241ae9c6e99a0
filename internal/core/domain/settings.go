package domain

import (
	"fmt"
	"strings"
)

// StorageBackend selects the Content Source persistence adapter.
type StorageBackend string

// Available storage backends.
const (
	// StorageSQLite persists documents in a SQLite database under the data directory.
	StorageSQLite StorageBackend = "sqlite"

	// StorageMemory keeps documents in process memory only.
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	return b == StorageSQLite || b == StorageMemory
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageSQLite:
		return "SQLite (persistent)"
	case StorageMemory:
		return "Memory (lost on exit)"
	default:
		return "Unknown"
	}
}

// AnalysisSettings holds pipeline and worker pool configuration.
type AnalysisSettings struct {
	// DefaultThreshold is used when a job does not specify one.
	DefaultThreshold float64

	// MinThreshold and MaxThreshold bound the accepted job threshold.
	MinThreshold float64
	MaxThreshold float64

	// IncludeAllPairs is the default for jobs that do not specify it.
	IncludeAllPairs bool

	// MaxVocabSize caps the number of terms kept per job.
	MaxVocabSize int

	// MinDocFreq drops terms seen in fewer documents.
	MinDocFreq int

	// Workers is the size of the job worker pool.
	Workers int

	// StopwordLanguage is the ISO 639-1 code of the stopword list.
	StopwordLanguage string

	// ExtraStopwords are removed in addition to the language list.
	ExtraStopwords []string
}

// DefaultConfig returns the job configuration implied by these settings.
func (a AnalysisSettings) DefaultConfig() AnalysisConfig {
	return AnalysisConfig{
		Threshold:       a.DefaultThreshold,
		IncludeAllPairs: a.IncludeAllPairs,
	}
}

// ThresholdInRange reports whether threshold lies in [MinThreshold, MaxThreshold].
func (a AnalysisSettings) ThresholdInRange(threshold float64) bool {
	return threshold >= a.MinThreshold && threshold <= a.MaxThreshold
}

// Validate checks the analysis settings are internally consistent.
func (a AnalysisSettings) Validate() error {
	if a.MinThreshold < 0 || a.MaxThreshold > 1 || a.MinThreshold > a.MaxThreshold {
		return fmt.Errorf("%w: threshold bounds must satisfy 0 <= min <= max <= 1", ErrInvalidInput)
	}
	if !a.ThresholdInRange(a.DefaultThreshold) {
		return fmt.Errorf("%w: default threshold %.2f outside [%.2f, %.2f]",
			ErrInvalidThreshold, a.DefaultThreshold, a.MinThreshold, a.MaxThreshold)
	}
	if a.MaxVocabSize < 1 {
		return fmt.Errorf("%w: max vocabulary size must be positive", ErrInvalidInput)
	}
	if a.MinDocFreq < 1 {
		return fmt.Errorf("%w: min document frequency must be positive", ErrInvalidInput)
	}
	if a.Workers < 1 {
		return fmt.Errorf("%w: worker count must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(a.StopwordLanguage) == "" {
		return fmt.Errorf("%w: stopword language is required", ErrInvalidInput)
	}
	return nil
}

// StorageSettings holds Content Source persistence configuration.
type StorageSettings struct {
	// Backend selects the document store.
	Backend StorageBackend
}

// UploadSettings holds Content Source ingestion limits.
type UploadSettings struct {
	// MaxSizeMB is the largest accepted upload in megabytes.
	MaxSizeMB int
}

// MaxBytes returns the upload limit in bytes.
func (u UploadSettings) MaxBytes() int64 {
	return int64(u.MaxSizeMB) * 1024 * 1024
}

// WatchSettings holds directory watch configuration.
type WatchSettings struct {
	// MaxFilesPerSecond paces ingestion during bursts of file events.
	MaxFilesPerSecond int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Analysis holds pipeline and worker settings.
	Analysis AnalysisSettings

	// Storage holds document store settings.
	Storage StorageSettings

	// Upload holds ingestion limits.
	Upload UploadSettings

	// Watch holds directory watch settings.
	Watch WatchSettings
}

// Validate checks every section.
func (s AppSettings) Validate() error {
	if err := s.Analysis.Validate(); err != nil {
		return err
	}
	if !s.Storage.Backend.IsValid() {
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidInput, s.Storage.Backend)
	}
	if s.Upload.MaxSizeMB < 1 {
		return fmt.Errorf("%w: upload size limit must be positive", ErrInvalidInput)
	}
	if s.Watch.MaxFilesPerSecond < 1 {
		return fmt.Errorf("%w: watch rate must be positive", ErrInvalidInput)
	}
	return nil
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Analysis: AnalysisSettings{
			DefaultThreshold: 0.7,
			MinThreshold:     0.5,
			MaxThreshold:     1.0,
			IncludeAllPairs:  true,
			MaxVocabSize:     10000,
			MinDocFreq:       1,
			Workers:          2,
			StopwordLanguage: "en",
		},
		Storage: StorageSettings{
			Backend: StorageSQLite,
		},
		Upload: UploadSettings{
			MaxSizeMB: 50,
		},
		Watch: WatchSettings{
			MaxFilesPerSecond: 20,
		},
	}
}

// AllStorageBackends returns all available storage backends.
func AllStorageBackends() []StorageBackend {
	return []StorageBackend{StorageSQLite, StorageMemory}
}
