package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zibacafe/cafe-system/internal/ledger"
	"github.com/zibacafe/cafe-system/internal/reports"
)

type fakeLedger struct {
	sales []ledger.Sale
	items []ledger.ItemSale

	gotStart time.Time
	gotEnd   time.Time
}

func (f *fakeLedger) SalesBetween(_ context.Context, start, end time.Time) ([]ledger.Sale, error) {
	f.gotStart, f.gotEnd = start, end
	var out []ledger.Sale
	for _, s := range f.sales {
		if !s.CreatedAt.Before(start) && s.CreatedAt.Before(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeLedger) ItemHistory(_ context.Context) ([]ledger.ItemSale, error) {
	return f.items, nil
}

func saleAt(t time.Time, total int64, items ...ledger.SaleItem) ledger.Sale {
	return ledger.Sale{
		TotalAmount: decimal.NewFromInt(total),
		CreatedAt:   t,
		Items:       items,
	}
}

func TestSummarizeSingleDay(t *testing.T) {
	day := func(hhmmss string) time.Time {
		ts, err := time.Parse("2006-01-02 15:04:05", "2024-01-01 "+hhmmss)
		require.NoError(t, err)
		return ts.UTC()
	}
	l := &fakeLedger{sales: []ledger.Sale{
		saleAt(day("00:00:00"), 100),
		saleAt(day("12:30:00"), 200),
		saleAt(day("23:59:59"), 300),
		// first instant of the next day sits outside the window
		saleAt(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), 999),
	}}

	got, err := reports.Summarize(context.Background(), l, "2024-01-01", "2024-01-01")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", got.StartDate)
	assert.Equal(t, "2024-01-01", got.EndDate)
	assert.Equal(t, 3, got.TotalSales)
	assert.True(t, got.TotalRevenue.Equal(decimal.NewFromInt(600)), "revenue %s", got.TotalRevenue)
	assert.True(t, got.AverageTicket.Equal(decimal.NewFromInt(200)), "avg %s", got.AverageTicket)

	// the ledger was queried over the half-open window [start, start+1d)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), l.gotStart)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), l.gotEnd)
}

func TestSummarizeEmptyLedger(t *testing.T) {
	got, err := reports.Summarize(context.Background(), &fakeLedger{}, "2024-01-01", "2024-01-02")
	require.NoError(t, err)

	assert.Equal(t, 0, got.TotalSales)
	assert.True(t, got.TotalRevenue.IsZero())
	assert.True(t, got.AverageTicket.IsZero(), "average ticket must be 0 when there are no sales")
	assert.NotNil(t, got.TopProducts)
	assert.Len(t, got.TopProducts, 0)
}

func TestSummarizeBadDates(t *testing.T) {
	for _, tc := range [][2]string{
		{"01-01-2024", "2024-01-02"},
		{"2024-01-01", "tomorrow"},
		{"", "2024-01-02"},
		{"2024-1-1", "2024-01-02"},
	} {
		_, err := reports.Summarize(context.Background(), &fakeLedger{}, tc[0], tc[1])
		assert.ErrorIs(t, err, reports.ErrBadDateFormat, "dates %q..%q", tc[0], tc[1])
	}
}

func TestSummarizeTopProducts(t *testing.T) {
	ts := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	l := &fakeLedger{sales: []ledger.Sale{
		saleAt(ts, 1000,
			ledger.SaleItem{ProductName: "Latte", Quantity: 7},
			ledger.SaleItem{ProductName: "Expresso", Quantity: 4},
			ledger.SaleItem{ProductName: "Medialuna", Quantity: 9},
		),
		saleAt(ts.Add(time.Hour), 1000,
			ledger.SaleItem{ProductName: "Latte", Quantity: 2},
			ledger.SaleItem{ProductName: "Brownie", Quantity: 4},
			ledger.SaleItem{ProductName: "Criollo", Quantity: 3},
			ledger.SaleItem{ProductName: "Cortado", Quantity: 3},
			ledger.SaleItem{ProductName: "Scon", Quantity: 1},
		),
	}}

	got, err := reports.Summarize(context.Background(), l, "2024-03-10", "2024-03-10")
	require.NoError(t, err)

	require.Len(t, got.TopProducts, 5)
	assert.Equal(t, []reports.ProductQuantity{
		{Name: "Latte", Quantity: 9},
		{Name: "Medialuna", Quantity: 9},
		{Name: "Brownie", Quantity: 4},
		{Name: "Expresso", Quantity: 4},
		{Name: "Cortado", Quantity: 3},
	}, got.TopProducts)

	for i := 1; i < len(got.TopProducts); i++ {
		assert.GreaterOrEqual(t, got.TopProducts[i-1].Quantity, got.TopProducts[i].Quantity)
	}
}

func TestSummarizeQuantitiesSummedAcrossSales(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	l := &fakeLedger{sales: []ledger.Sale{
		saleAt(ts, 100, ledger.SaleItem{ProductName: "Latte", Quantity: 1}),
		saleAt(ts.Add(time.Minute), 100, ledger.SaleItem{ProductName: "Latte", Quantity: 5}),
	}}

	got, err := reports.Summarize(context.Background(), l, "2024-05-01", "2024-05-01")
	require.NoError(t, err)
	require.Len(t, got.TopProducts, 1)
	assert.Equal(t, reports.ProductQuantity{Name: "Latte", Quantity: 6}, got.TopProducts[0])
}
