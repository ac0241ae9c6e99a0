package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
	"github.com/custodia-labs/dupecheck/internal/core/ports/driven"
	"github.com/custodia-labs/dupecheck/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDefaultThreshold = "analysis.default_threshold"
	keyMinThreshold     = "analysis.min_threshold"
	keyMaxThreshold     = "analysis.max_threshold"
	keyIncludeAllPairs  = "analysis.include_all_pairs"
	keyMaxVocabSize     = "analysis.max_vocab_size"
	keyMinDocFreq       = "analysis.min_doc_freq"
	keyWorkers          = "analysis.workers"
	keyStopwordLanguage = "analysis.stopword_language"
	keyExtraStopwords   = "analysis.extra_stopwords"
	keyStorageBackend   = "storage.backend"
	keyUploadMaxSizeMB  = "upload.max_size_mb"
	keyWatchRate        = "watch.max_files_per_second"
)

// settingKind is how a raw string from Set is parsed before storage.
type settingKind int

const (
	kindFloat settingKind = iota
	kindInt
	kindBool
	kindString
	kindList
)

var settingKinds = map[string]settingKind{
	keyDefaultThreshold: kindFloat,
	keyMinThreshold:     kindFloat,
	keyMaxThreshold:     kindFloat,
	keyIncludeAllPairs:  kindBool,
	keyMaxVocabSize:     kindInt,
	keyMinDocFreq:       kindInt,
	keyWorkers:          kindInt,
	keyStopwordLanguage: kindString,
	keyExtraStopwords:   kindList,
	keyStorageBackend:   kindString,
	keyUploadMaxSizeMB:  kindInt,
	keyWatchRate:        kindInt,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings. Missing or malformed
// values fall back to their defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Analysis: domain.AnalysisSettings{
			DefaultThreshold: s.getFloat(keyDefaultThreshold, defaults.Analysis.DefaultThreshold),
			MinThreshold:     s.getFloat(keyMinThreshold, defaults.Analysis.MinThreshold),
			MaxThreshold:     s.getFloat(keyMaxThreshold, defaults.Analysis.MaxThreshold),
			IncludeAllPairs:  s.getBool(keyIncludeAllPairs, defaults.Analysis.IncludeAllPairs),
			MaxVocabSize:     s.getInt(keyMaxVocabSize, defaults.Analysis.MaxVocabSize),
			MinDocFreq:       s.getInt(keyMinDocFreq, defaults.Analysis.MinDocFreq),
			Workers:          s.getInt(keyWorkers, defaults.Analysis.Workers),
			StopwordLanguage: s.getString(keyStopwordLanguage, defaults.Analysis.StopwordLanguage),
			ExtraStopwords:   s.configStore.GetStringSlice(keyExtraStopwords),
		},
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
		},
		Upload: domain.UploadSettings{
			MaxSizeMB: s.getInt(keyUploadMaxSizeMB, defaults.Upload.MaxSizeMB),
		},
		Watch: domain.WatchSettings{
			MaxFilesPerSecond: s.getInt(keyWatchRate, defaults.Watch.MaxFilesPerSecond),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyDefaultThreshold, settings.Analysis.DefaultThreshold},
		{keyMinThreshold, settings.Analysis.MinThreshold},
		{keyMaxThreshold, settings.Analysis.MaxThreshold},
		{keyIncludeAllPairs, settings.Analysis.IncludeAllPairs},
		{keyMaxVocabSize, settings.Analysis.MaxVocabSize},
		{keyMinDocFreq, settings.Analysis.MinDocFreq},
		{keyWorkers, settings.Analysis.Workers},
		{keyStopwordLanguage, settings.Analysis.StopwordLanguage},
		{keyExtraStopwords, settings.Analysis.ExtraStopwords},
		{keyStorageBackend, settings.Storage.Backend.String()},
		{keyUploadMaxSizeMB, settings.Upload.MaxSizeMB},
		{keyWatchRate, settings.Watch.MaxFilesPerSecond},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value according to key and saves the resulting settings.
// The change is rejected if it leaves the settings invalid.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	parsed, err := parseSetting(kind, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}
	if key == keyStorageBackend && !domain.StorageBackend(strings.TrimSpace(value)).IsValid() {
		return fmt.Errorf("%w: unknown storage backend %q", domain.ErrInvalidInput, value)
	}

	previous, existed := s.configStore.Get(key)
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		if existed {
			_ = s.configStore.Set(key, previous)
		} else {
			_ = s.configStore.Delete(key)
		}
		return err
	}
	return nil
}

// Reset removes a stored setting so its default applies again.
func (s *SettingsService) Reset(key string) error {
	if _, ok := settingKinds[key]; !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return s.configStore.Delete(key)
}

// Keys returns every recognised setting key in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func parseSetting(kind settingKind, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch kind {
	case kindFloat:
		return strconv.ParseFloat(value, 64)
	case kindInt:
		return strconv.Atoi(value)
	case kindBool:
		return strconv.ParseBool(value)
	case kindList:
		var out []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	default:
		return value, nil
	}
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	val := s.configStore.GetString(keyStorageBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StorageBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
