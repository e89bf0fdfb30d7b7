package prefsfile

import (
	"encoding/json"
	"fmt"
	"os"

	"currency-converter/internal/entity"

	"github.com/sirupsen/logrus"
)

const DefaultPath = "currency_converter_config.json"

// Store persists the user preferences as a pretty-printed JSON file at a
// fixed path. Every Save rewrites the whole file.
type Store struct {
	path   string
	logger *logrus.Logger
}

func NewStore(path string, logger *logrus.Logger) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{
		path:   path,
		logger: logger,
	}
}

// Load reads the persisted record. A missing or unreadable file is not an
// error: the user simply has no saved preferences yet, so fresh defaults are
// returned.
func (s *Store) Load() *entity.Preferences {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Infof("No readable preferences at %s, starting with defaults: %v", s.path, err)
		return entity.NewPreferences()
	}

	prefs := entity.NewPreferences()
	if err := json.Unmarshal(data, prefs); err != nil {
		s.logger.Warnf("Corrupt preferences file %s, starting with defaults: %v", s.path, err)
		return entity.NewPreferences()
	}
	if prefs.FavoriteCurrencies == nil {
		prefs.FavoriteCurrencies = []string{}
	}

	s.logger.Infof("Loaded preferences from %s (%d favorites)", s.path, len(prefs.FavoriteCurrencies))
	return prefs
}

// Save serializes the full current state, overwriting the previous record.
func (s *Store) Save(prefs *entity.Preferences) error {
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		s.logger.Errorf("Failed to marshal preferences: %v", err)
		return fmt.Errorf("marshal preferences: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.logger.Errorf("Failed to write preferences to %s: %v", s.path, err)
		return fmt.Errorf("write preferences: %w", err)
	}

	s.logger.Debugf("Saved preferences to %s", s.path)
	return nil
}
