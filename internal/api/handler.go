// Package api exposes analyses over HTTP.
package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"TickerSignal/internal/analysis"
	"TickerSignal/internal/calculator"
	"TickerSignal/internal/model"
	"TickerSignal/internal/notifier"
	"TickerSignal/internal/recorder"
)

// Analyzer is the part of the collector the handlers need.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (*model.Analysis, error)
	AnalyzeSeries(symbol string, points []model.PricePoint, opts analysis.Options) (*model.Analysis, error)
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AnalysisResponse is an analysis plus its rendered one-line verdict.
type AnalysisResponse struct {
	*model.Analysis
	Summary string `json:"summary"`
}

// AnalyzeRequest carries a caller-supplied price history.
type AnalyzeRequest struct {
	Symbol    string             `json:"symbol" binding:"required"`
	Points    []model.PricePoint `json:"points"`
	SMAWindow int                `json:"sma_window"`
	TailRows  int                `json:"tail_rows"`
}

// Handler serves the analysis endpoints.
type Handler struct {
	an  Analyzer
	rec recorder.Recorder
}

// NewHandler creates a Handler. A nil recorder disables /history.
func NewHandler(an Analyzer, rec recorder.Recorder) *Handler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Handler{an: an, rec: rec}
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, analysis.ErrInvalidOptions):
		return http.StatusBadRequest
	case errors.Is(err, calculator.ErrEmptyData), errors.Is(err, calculator.ErrInsufficientHistory):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

// GetAnalysis fetches and analyzes a symbol, recording the decision.
//
// GET /api/v1/analysis/:symbol
func (h *Handler) GetAnalysis(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))

	a, err := h.an.Analyze(c.Request.Context(), symbol)
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.rec.RecordAnalysis(a); err != nil {
		log.Printf("[ERROR] record analysis %s: %v", symbol, err)
	}
	c.JSON(http.StatusOK, AnalysisResponse{Analysis: a, Summary: notifier.FormatSummary(a)})
}

// PostAnalysis analyzes the price history in the request body.
//
// POST /api/v1/analysis
func (h *Handler) PostAnalysis(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	a, err := h.an.AnalyzeSeries(strings.ToUpper(req.Symbol), req.Points, analysis.Options{
		SMAWindow: req.SMAWindow,
		TailRows:  req.TailRows,
	})
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, AnalysisResponse{Analysis: a, Summary: notifier.FormatSummary(a)})
}

// GetHistory lists recorded decisions for a symbol.
//
// GET /api/v1/history/:symbol?limit=10
func (h *Handler) GetHistory(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a non-negative integer"})
		return
	}

	records, err := h.rec.History(symbol, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	if records == nil {
		records = []model.DecisionRecord{}
	}
	c.JSON(http.StatusOK, records)
}

// Health handles /healthz.
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
