package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is one completed ticket. Immutable after creation; TotalAmount is
// whatever the register sent and is not recomputed from the items.
type Sale struct {
	ID            string          `json:"id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []SaleItem      `json:"items"`
}

// SaleItem records the product by name, not by catalog id: analytics joins
// on the name, so renaming a product in the catalog fragments its history.
type SaleItem struct {
	ID          string          `json:"id"`
	SaleID      string          `json:"sale_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// ItemSale is one historical line item joined to its sale's timestamp,
// the row shape the forecaster consumes.
type ItemSale struct {
	ProductName string
	Quantity    int
	SoldAt      time.Time
}
