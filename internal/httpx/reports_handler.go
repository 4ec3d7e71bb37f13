package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/zibacafe/cafe-system/internal/redisx"
	"github.com/zibacafe/cafe-system/internal/reports"
)

type ReportsHandler struct {
	Ledger     reports.SalesLedger
	Forecaster *reports.Forecaster
	Redis      *redis.Client // optional summary cache
}

func (h *ReportsHandler) Register(r *chi.Mux) {
	r.Get("/reports/summary", h.summary)
	r.Get("/reports/forecast", h.forecast)
}

func (h *ReportsHandler) summary(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cacheKey := fmt.Sprintf(redisx.KeySummaryReport, startDate, endDate)
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, cacheKey).Result(); err == nil && s != "" {
			writeJSON(w, http.StatusOK, json.RawMessage(s))
			return
		}
	}

	summary, err := reports.Summarize(ctx, h.Ledger, startDate, endDate)
	if errors.Is(err, reports.ErrBadDateFormat) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.Redis != nil {
		if b, err := json.Marshal(summary); err == nil {
			_ = h.Redis.Set(ctx, cacheKey, b, redisx.TTLSummaryCache).Err()
		}
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *ReportsHandler) forecast(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	predictions, err := h.Forecaster.ForecastToday(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if predictions == nil {
		writeJSON(w, http.StatusOK, map[string]string{"message": reports.InsufficientDataMessage})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"predicted_demand_today": predictions})
}
