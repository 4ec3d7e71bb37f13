package reports

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ErrBadDateFormat marks a summary request whose dates do not parse as
// YYYY-MM-DD. Handlers map it to a 400.
var ErrBadDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

const (
	dateLayout       = "2006-01-02"
	topProductsLimit = 5
)

type ProductQuantity struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type Summary struct {
	StartDate     string            `json:"start_date"`
	EndDate       string            `json:"end_date"`
	TotalRevenue  decimal.Decimal   `json:"total_revenue"`
	TotalSales    int               `json:"total_sales"`
	AverageTicket decimal.Decimal   `json:"average_ticket"`
	TopProducts   []ProductQuantity `json:"top_products"`
}

// Summarize aggregates the sales between startDate and endDate inclusive.
// The end date covers its whole day: the ledger is queried over the
// half-open window [start 00:00, end+1d 00:00).
func Summarize(ctx context.Context, l SalesLedger, startDate, endDate string) (*Summary, error) {
	start, err := time.ParseInLocation(dateLayout, startDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date %q", ErrBadDateFormat, startDate)
	}
	end, err := time.ParseInLocation(dateLayout, endDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date %q", ErrBadDateFormat, endDate)
	}
	end = end.AddDate(0, 0, 1)

	sales, err := l.SalesBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	soldByProduct := map[string]int{}
	for _, s := range sales {
		revenue = revenue.Add(s.TotalAmount)
		for _, it := range s.Items {
			soldByProduct[it.ProductName] += it.Quantity
		}
	}

	avg := decimal.Zero
	if len(sales) > 0 {
		avg = revenue.Div(decimal.NewFromInt(int64(len(sales))))
	}

	top := make([]ProductQuantity, 0, len(soldByProduct))
	for name, qty := range soldByProduct {
		top = append(top, ProductQuantity{Name: name, Quantity: qty})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Quantity != top[j].Quantity {
			return top[i].Quantity > top[j].Quantity
		}
		return top[i].Name < top[j].Name // deterministic tie break
	})
	if len(top) > topProductsLimit {
		top = top[:topProductsLimit]
	}

	return &Summary{
		StartDate:     startDate,
		EndDate:       endDate,
		TotalRevenue:  revenue,
		TotalSales:    len(sales),
		AverageTicket: avg,
		TopProducts:   top,
	}, nil
}
