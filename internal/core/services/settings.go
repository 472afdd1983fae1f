package services

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/morpho/internal/core/domain"
	"github.com/custodia-labs/morpho/internal/core/ports/driven"
	"github.com/custodia-labs/morpho/internal/core/ports/driving"
	"github.com/custodia-labs/morpho/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyIterations   = "resample.iterations"
	keyWorkers      = "resample.workers"
	keySeed         = "resample.seed"
	keyOutputDir    = "output.dir"
	keyOutputCSV    = "output.csv"
	keyOutputReport = "output.report"
	keyOutputSample = "output.sample"
	keyDatabase     = "output.database"
)

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

// Get retrieves current application settings.
// Missing or unusable values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Resample: domain.ResampleSettings{
			Iterations: s.getInt(keyIterations, defaults.Resample.Iterations),
			Workers:    s.getInt(keyWorkers, defaults.Resample.Workers),
			Seed:       s.getSeed(),
		},
		Output: domain.OutputSettings{
			Dir:      s.getString(keyOutputDir, defaults.Output.Dir),
			CSV:      s.getBool(keyOutputCSV, defaults.Output.CSV),
			Report:   s.getBool(keyOutputReport, defaults.Output.Report),
			Sample:   s.getBool(keyOutputSample, defaults.Output.Sample),
			Database: s.configStore.GetString(keyDatabase), // No default - empty disables the database
		},
	}

	if settings.Resample.Workers < 1 {
		settings.Resample.Workers = defaults.Resample.Workers
	}

	return settings, nil
}

// Save persists application settings.
// An absent seed or database removes the key instead of storing "".
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyIterations, settings.Resample.Iterations},
		{keyWorkers, settings.Resample.Workers},
		{keyOutputDir, settings.Output.Dir},
		{keyOutputCSV, settings.Output.CSV},
		{keyOutputReport, settings.Output.Report},
		{keyOutputSample, settings.Output.Sample},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	optional := []struct {
		key   string
		value string
	}{
		{keySeed, ""},
		{keyDatabase, settings.Output.Database},
	}
	if settings.Resample.Seed != nil {
		optional[0].value = strconv.FormatUint(*settings.Resample.Seed, 10)
	}
	for _, v := range optional {
		var err error
		if v.value == "" {
			err = s.configStore.Unset(v.key)
		} else {
			err = s.configStore.Set(v.key, v.value)
		}
		if err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set parses value for key and persists it.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case keyIterations:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer: %q", domain.ErrInvalidInput, key, value)
		}
		clamped, changed := ClampIterations(n)
		if changed {
			logger.Warn("%s %d outside [1, %d], storing %d", key, n, MaxIterations, clamped)
		}
		settings.Resample.Iterations = clamped
	case keyWorkers:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: %s must be a positive integer: %q", domain.ErrInvalidInput, key, value)
		}
		settings.Resample.Workers = n
	case keySeed:
		if value == "" {
			settings.Resample.Seed = nil
			break
		}
		seed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be an unsigned integer or empty: %q", domain.ErrInvalidInput, key, value)
		}
		settings.Resample.Seed = &seed
	case keyOutputDir:
		if value == "" {
			return fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidInput, key)
		}
		settings.Output.Dir = value
	case keyOutputCSV, keyOutputReport, keyOutputSample:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false: %q", domain.ErrInvalidInput, key, value)
		}
		switch key {
		case keyOutputCSV:
			settings.Output.CSV = b
		case keyOutputReport:
			settings.Output.Report = b
		default:
			settings.Output.Sample = b
		}
	case keyDatabase:
		settings.Output.Database = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys lists the recognised setting keys.
func (s *SettingsService) Keys() []string {
	return []string{
		keyIterations,
		keyWorkers,
		keySeed,
		keyOutputDir,
		keyOutputCSV,
		keyOutputReport,
		keyOutputSample,
		keyDatabase,
	}
}

// Validate checks that stored settings are usable.
func (s *SettingsService) Validate() error {
	if n := s.configStore.GetInt(keyIterations); n != 0 {
		if _, clamped := ClampIterations(n); clamped {
			return fmt.Errorf("%w: %s %d outside [1, %d]", domain.ErrInvalidInput, keyIterations, n, MaxIterations)
		}
	}
	if _, exists := s.configStore.Get(keyWorkers); exists && s.configStore.GetInt(keyWorkers) < 1 {
		return fmt.Errorf("%w: %s must be at least 1", domain.ErrInvalidInput, keyWorkers)
	}
	if raw := s.configStore.GetString(keySeed); raw != "" {
		if _, err := strconv.ParseUint(raw, 10, 64); err != nil {
			return fmt.Errorf("%w: %s %q is not an unsigned integer", domain.ErrInvalidInput, keySeed, raw)
		}
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getSeed() *uint64 {
	raw := s.configStore.GetString(keySeed)
	if raw == "" {
		return nil
	}
	seed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &seed
}
