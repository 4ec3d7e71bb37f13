package ledger

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const EventSaleRecorded = "SaleRecorded"

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // sale_id
	Payload       json.RawMessage `json:"payload"`
}

type SaleRecordedItem struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

type SaleRecordedPayload struct {
	SaleID        string             `json:"sale_id"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	PaymentMethod string             `json:"payment_method"`
	SoldAt        time.Time          `json:"sold_at"`
	Items         []SaleRecordedItem `json:"items"`
}
