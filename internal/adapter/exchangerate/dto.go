package exchangerate

const resultSuccess = "success"

// LatestRatesResponse mirrors the provider's /latest payload. Rates are
// expressed against BaseCode, the reference currency the request was made for.
type LatestRatesResponse struct {
	Result             string             `json:"result"`
	Documentation      string             `json:"documentation"`
	TermsOfUse         string             `json:"terms_of_use"`
	TimeLastUpdateUnix int64              `json:"time_last_update_unix"`
	TimeLastUpdateUTC  string             `json:"time_last_update_utc"`
	TimeNextUpdateUnix int64              `json:"time_next_update_unix"`
	TimeNextUpdateUTC  string             `json:"time_next_update_utc"`
	BaseCode           string             `json:"base_code"`
	ConversionRates    map[string]float64 `json:"conversion_rates"`
}

func (r *LatestRatesResponse) Successful() bool {
	return r.Result == resultSuccess
}
