package entity

import "slices"

// Preferences is the persisted per-user record: the default source currency,
// the pinned favorites (most recently added first) and the provider API key.
type Preferences struct {
	DefaultFromCurrency string   `json:"defaultFromCurrency"`
	FavoriteCurrencies  []string `json:"favoriteCurrencies"`
	APIKey              string   `json:"apiKey"`
}

func NewPreferences() *Preferences {
	return &Preferences{
		FavoriteCurrencies: []string{},
	}
}

func (p *Preferences) SetDefaultFromCurrency(code string) {
	p.DefaultFromCurrency = code
}

func (p *Preferences) SetAPIKey(key string) {
	p.APIKey = key
}

func (p *Preferences) HasCredential() bool {
	return p.APIKey != ""
}

// AddFavorite prepends code to the favorites list. Returns false without
// modification when the code is already present.
func (p *Preferences) AddFavorite(code string) bool {
	if slices.Contains(p.FavoriteCurrencies, code) {
		return false
	}
	p.FavoriteCurrencies = append([]string{code}, p.FavoriteCurrencies...)
	return true
}
