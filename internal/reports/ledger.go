// Package reports holds the read-only analytics over the sales ledger: the
// date-range sales summary and the per-product demand forecast. Both are
// pure computations over a SalesLedger; they never touch SQL themselves.
package reports

import (
	"context"
	"time"

	"github.com/zibacafe/cafe-system/internal/ledger"
)

// SalesLedger is the slice of the store the analytics need.
type SalesLedger interface {
	// SalesBetween returns sales with creation timestamp in [start, end),
	// items attached.
	SalesBetween(ctx context.Context, start, end time.Time) ([]ledger.Sale, error)
	// ItemHistory returns every line item ever recorded with its sale's
	// timestamp.
	ItemHistory(ctx context.Context) ([]ledger.ItemSale, error)
}
