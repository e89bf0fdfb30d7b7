package handler

import (
	"errors"
	"net/http"
	"strconv"

	"currency-converter/internal/service"
	"currency-converter/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type ConverterHandler struct {
	usecase usecase.ConverterUsecase
	logger  *logrus.Logger
	printer *message.Printer
}

func NewConverterHandler(usecase usecase.ConverterUsecase, logger *logrus.Logger) *ConverterHandler {
	return &ConverterHandler{
		usecase: usecase,
		logger:  logger,
		printer: message.NewPrinter(language.English),
	}
}

func (h *ConverterHandler) Register(r *gin.Engine) {
	r.GET("/currency/convert", h.Convert)
	r.GET("/currency/list", h.ListCurrencies)
	r.GET("/currency/refresh", h.RefreshRates)
	r.GET("/currency/status", h.Status)
	r.GET("/preferences", h.GetPreferences)
	r.POST("/preferences/default", h.SetDefaultCurrency)
	r.POST("/preferences/favorites", h.AddFavorite)
}

func (h *ConverterHandler) Convert(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	amountStr := c.Query("amount")

	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'from' and 'to'"})
		return
	}
	if amountStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'amount'"})
		return
	}

	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'amount' parameter, must be a positive number"})
		return
	}

	result, err := h.usecase.Convert(c.Request.Context(), amount, from, to)
	if err != nil {
		h.logger.Errorf("Failed to convert %s %s to %s: %v", amountStr, from, to, err)
		switch {
		case errors.Is(err, usecase.ErrInvalidCurrencyCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrRatesUnavailable):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "conversion failed"})
		}
		return
	}

	c.JSON(http.StatusOK, ConvertResponse{
		Amount: result.Amount,
		From:   result.From,
		To:     result.To,
		Result: result.Result,
		Display: h.printer.Sprintf("%.2f %s = %.2f %s",
			result.Amount, result.From, result.Result, result.To),
	})
}

func (h *ConverterHandler) ListCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, h.usecase.ListCurrencies())
}

func (h *ConverterHandler) RefreshRates(c *gin.Context) {
	result, err := h.usecase.RefreshRates(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Failed to refresh rates: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to refresh rates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "rates successfully updated",
		"last_updated": result.LastUpdated,
		"next_update":  result.NextUpdate,
	})
}

func (h *ConverterHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.usecase.Status())
}

func (h *ConverterHandler) GetPreferences(c *gin.Context) {
	status := h.usecase.Status()
	c.JSON(http.StatusOK, gin.H{
		"default_from_currency": status.DefaultFromCurrency,
		"favorites":             status.Favorites,
	})
}

func (h *ConverterHandler) SetDefaultCurrency(c *gin.Context) {
	var req SetDefaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required field 'code'"})
		return
	}

	if err := h.usecase.SetDefaultCurrency(req.Code); err != nil {
		h.logger.Errorf("Failed to set default currency %q: %v", req.Code, err)
		if errors.Is(err, usecase.ErrInvalidCurrencyCode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": req.Code + " set as default source currency"})
}

func (h *ConverterHandler) AddFavorite(c *gin.Context) {
	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required field 'code'"})
		return
	}

	added, err := h.usecase.AddFavorite(req.Code)
	if err != nil {
		h.logger.Errorf("Failed to add favorite %q: %v", req.Code, err)
		if errors.Is(err, usecase.ErrInvalidCurrencyCode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save preferences"})
		return
	}

	if !added {
		c.JSON(http.StatusOK, gin.H{"message": req.Code + " is already in favorites"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": req.Code + " added to favorites"})
}
