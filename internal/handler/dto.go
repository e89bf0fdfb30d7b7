package handler

type SetDefaultRequest struct {
	Code string `json:"code" binding:"required"`
}

type AddFavoriteRequest struct {
	Code string `json:"code" binding:"required"`
}

type ConvertResponse struct {
	Amount  float64 `json:"amount"`
	From    string  `json:"from"`
	To      string  `json:"to"`
	Result  float64 `json:"result"`
	Display string  `json:"display"`
}
