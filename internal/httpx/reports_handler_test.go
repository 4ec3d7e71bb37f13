package httpx_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zibacafe/cafe-system/internal/httpx"
	"github.com/zibacafe/cafe-system/internal/ledger"
	"github.com/zibacafe/cafe-system/internal/reports"
)

type stubLedger struct {
	sales []ledger.Sale
	items []ledger.ItemSale
}

func (s *stubLedger) SalesBetween(_ context.Context, start, end time.Time) ([]ledger.Sale, error) {
	var out []ledger.Sale
	for _, sale := range s.sales {
		if !sale.CreatedAt.Before(start) && sale.CreatedAt.Before(end) {
			out = append(out, sale)
		}
	}
	return out, nil
}

func (s *stubLedger) ItemHistory(_ context.Context) ([]ledger.ItemSale, error) {
	return s.items, nil
}

func newReportsServer(l *stubLedger) *httptest.Server {
	router := httpx.NewRouter()
	(&httpx.ReportsHandler{
		Ledger: l,
		Forecaster: &reports.Forecaster{
			Ledger: l,
			Now:    func() time.Time { return time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC) },
		},
	}).Register(router)
	return httptest.NewServer(router)
}

func TestSummaryEndpointBadDates(t *testing.T) {
	srv := newReportsServer(&stubLedger{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/reports/summary?start_date=notadate&end_date=2024-01-02")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body, "error")
}

func TestSummaryEndpoint(t *testing.T) {
	srv := newReportsServer(&stubLedger{sales: []ledger.Sale{
		{
			TotalAmount: decimal.NewFromInt(500),
			CreatedAt:   time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC),
			Items:       []ledger.SaleItem{{ProductName: "Latte", Quantity: 2}},
		},
	}})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/reports/summary?start_date=2024-01-01&end_date=2024-01-01")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got reports.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 1, got.TotalSales)
	assert.True(t, got.TotalRevenue.Equal(decimal.NewFromInt(500)))
	require.Len(t, got.TopProducts, 1)
	assert.Equal(t, reports.ProductQuantity{Name: "Latte", Quantity: 2}, got.TopProducts[0])
}

func TestForecastEndpointNoData(t *testing.T) {
	srv := newReportsServer(&stubLedger{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/reports/forecast")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, reports.InsufficientDataMessage, body["message"])
}

func TestForecastEndpoint(t *testing.T) {
	var items []ledger.ItemSale
	for d := 0; d < 12; d++ {
		items = append(items, ledger.ItemSale{
			ProductName: "Latte",
			Quantity:    1,
			SoldAt:      time.Date(2024, 1, 1+d, 9, 0, 0, 0, time.UTC),
		})
	}
	srv := newReportsServer(&stubLedger{items: items})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/reports/forecast")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Predicted map[string]int `json:"predicted_demand_today"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, map[string]int{"Latte": 1}, body.Predicted)
}
