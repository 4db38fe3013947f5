package handlers

import (
	"errors"
	"net/http"
	"time"

	apperrors "github.com/MinisterHD/Assets-Value-App/internal/errors"
	"github.com/MinisterHD/Assets-Value-App/internal/models"
	"github.com/MinisterHD/Assets-Value-App/internal/services"
)

type AnalyticsHandler struct {
	history   services.PriceHistory
	analytics services.Analytics
}

func NewAnalyticsHandler(history services.PriceHistory, analytics services.Analytics) *AnalyticsHandler {
	return &AnalyticsHandler{history: history, analytics: analytics}
}

// windowFor loads the shared history window behind all comparison charts.
func (h *AnalyticsHandler) windowFor(r *http.Request, defaultDays int) ([]*models.HistoryPoint, error) {
	ids, err := parseIDList(r.URL.Query()["ids"])
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, &apperrors.ErrValidation{Field: "ids", Message: "at least one asset id is required"}
	}
	days := parseDays(r.URL.Query().Get("days"), defaultDays)
	since := time.Now().AddDate(0, 0, -days)
	return h.history.WindowBatch(r.Context(), ids, since)
}

// insufficientData is the placeholder result analytics return instead of an
// error when the stored history cannot support the computation.
func insufficientData(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"insufficient_data": true})
}

// HandlePerformance handles GET /api/analytics/performance?ids=&days=30
func (h *AnalyticsHandler) HandlePerformance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	points, err := h.windowFor(r, 30)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	series, err := h.analytics.Normalize(points)
	if errors.Is(err, apperrors.ErrInsufficientData) {
		insufficientData(w)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"insufficient_data": false,
		"series":            series,
	})
}

// HandleCorrelation handles GET /api/analytics/correlation?ids=&days=90
func (h *AnalyticsHandler) HandleCorrelation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	points, err := h.windowFor(r, 90)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	matrix, err := h.analytics.Correlation(h.analytics.Pivot(points))
	if errors.Is(err, apperrors.ErrInsufficientData) {
		insufficientData(w)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"insufficient_data": false,
		"correlation":       matrix,
	})
}

// HandleVolatility handles GET /api/analytics/volatility?ids=&days=90
func (h *AnalyticsHandler) HandleVolatility(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	points, err := h.windowFor(r, 90)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	report, err := h.analytics.Volatility(h.analytics.Pivot(points))
	if errors.Is(err, apperrors.ErrInsufficientData) {
		insufficientData(w)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"insufficient_data": false,
		"volatility":        report,
	})
}
