package prefsfile

import "currency-converter/internal/entity"

type PreferencesStore interface {
	Load() *entity.Preferences
	Save(prefs *entity.Preferences) error
}
