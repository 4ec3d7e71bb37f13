package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zibacafe/cafe-system/internal/settings"
)

type SettingsHandler struct {
	Repo *settings.Repo
}

func (h *SettingsHandler) Register(r *chi.Mux) {
	r.Get("/settings/{key}", h.get)
	r.Put("/settings/{key}", h.put)
}

func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	s, err := h.Repo.Get(ctx, key)
	if errors.Is(err, settings.ErrNotFound) {
		// unknown keys answer with a null value, not a 404
		writeJSON(w, http.StatusOK, map[string]any{"key": key, "value": nil})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *SettingsHandler) put(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	s, err := h.Repo.Put(ctx, chi.URLParam(r, "key"), req.Value)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s)
}
