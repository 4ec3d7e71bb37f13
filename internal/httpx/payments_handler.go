package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/zibacafe/cafe-system/internal/payments"
	"github.com/zibacafe/cafe-system/internal/settings"
)

// SettingMPAccessToken is the settings key holding the Mercado Pago
// credential. Injected through the settings store, never compiled in.
const SettingMPAccessToken = "mp_access_token"

type PaymentOrderReq struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	OrderID     int             `json:"order_id"`
}

type PaymentsHandler struct {
	Settings *settings.Repo
	Client   *payments.Client
}

func (h *PaymentsHandler) Register(r *chi.Mux) {
	r.Post("/create_payment_order", h.createPaymentOrder)
}

func (h *PaymentsHandler) createPaymentOrder(w http.ResponseWriter, r *http.Request) {
	var req PaymentOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 12*time.Second)
	defer cancel()

	token, err := h.Settings.Get(ctx, SettingMPAccessToken)
	if errors.Is(err, settings.ErrNotFound) || (err == nil && token.Value == "") {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Mercado Pago access token is not configured"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	initPoint, err := h.Client.CreatePreference(ctx, token.Value, strconv.Itoa(req.OrderID), req.TotalAmount)
	var upstream *payments.UpstreamError
	if errors.As(err, &upstream) {
		writeJSON(w, upstream.StatusCode, map[string]any{"error": json.RawMessage(upstream.Body)})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"qr_data": initPoint})
}
