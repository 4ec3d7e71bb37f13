package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	kafkax "github.com/zibacafe/cafe-system/internal/kafka"
	"github.com/zibacafe/cafe-system/internal/ledger"
)

type CreateSaleReq struct {
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	PaymentMethod string             `json:"payment_method"`
	Items         []ledger.ItemInput `json:"items"`
}

type SalesHandler struct {
	Repo     *ledger.Repo
	Producer *kafkax.Producer
	Service  string
}

func (h *SalesHandler) Register(r *chi.Mux) {
	r.Post("/sales", h.createSale)
}

func (h *SalesHandler) createSale(w http.ResponseWriter, r *http.Request) {
	var req CreateSaleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.TotalAmount.IsNegative() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "total_amount must be non-negative"})
		return
	}
	for _, it := range req.Items {
		if it.ProductName == "" || it.Quantity <= 0 || it.UnitPrice.IsNegative() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid sale item"})
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sale, err := h.Repo.RecordSale(ctx, req.TotalAmount, req.PaymentMethod, req.Items)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.Producer != nil {
		items := make([]ledger.SaleRecordedItem, 0, len(sale.Items))
		for _, it := range sale.Items {
			items = append(items, ledger.SaleRecordedItem{ProductName: it.ProductName, Quantity: it.Quantity})
		}
		ev := ledger.Envelope{
			EventID:       uuid.NewString(),
			EventType:     ledger.EventSaleRecorded,
			EventVersion:  1,
			OccurredAt:    time.Now().UTC(),
			Producer:      h.Service,
			TraceID:       r.Header.Get("X-Request-Id"),
			CorrelationID: sale.ID,
			Payload: kafkax.MustMarshal(ledger.SaleRecordedPayload{
				SaleID:        sale.ID,
				TotalAmount:   sale.TotalAmount,
				PaymentMethod: sale.PaymentMethod,
				SoldAt:        sale.CreatedAt,
				Items:         items,
			}),
		}
		h.Producer.Publish(ledger.PartitionKey(sale.ID), kafkax.MustMarshal(ev),
			kafkago.Header{Key: "x-event-type", Value: []byte(ledger.EventSaleRecorded)},
			kafkago.Header{Key: "x-event-version", Value: []byte("1")},
		)
	}

	writeJSON(w, http.StatusCreated, sale)
}
