package usecase

type ConversionResponse struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Result float64 `json:"result"`
}

type RefreshResponse struct {
	LastUpdated string `json:"last_updated"`
	NextUpdate  string `json:"next_update"`
}

type CurrencyListResponse struct {
	Favorites  []string `json:"favorites"`
	Currencies []string `json:"currencies"`
}

type StatusResponse struct {
	DefaultFromCurrency string   `json:"default_from_currency"`
	Favorites           []string `json:"favorites"`
	LastUpdated         string   `json:"last_updated"`
	NextUpdate          string   `json:"next_update"`
}
