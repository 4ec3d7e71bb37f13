package payments_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zibacafe/cafe-system/internal/payments"
)

func TestCreatePreference(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/checkout/preferences", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"init_point": "https://mp.example/checkout/123"})
	}))
	defer srv.Close()

	c := payments.NewClient(srv.URL)
	initPoint, err := c.CreatePreference(context.Background(), "TEST-TOKEN", "42", decimal.NewFromFloat(1234.567))
	require.NoError(t, err)

	assert.Equal(t, "https://mp.example/checkout/123", initPoint)
	assert.Equal(t, "Bearer TEST-TOKEN", gotAuth)
	assert.Equal(t, "CAFE_SYSTEM_42", gotBody["external_reference"])

	items, ok := gotBody["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "Pedido #42 - Zibá Café", item["title"])
	assert.Equal(t, "ARS", item["currency_id"])
	// amount is rounded to two decimals before it goes out
	assert.Equal(t, "1234.57", item["unit_price"])
}

func TestCreatePreferenceUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid access token"})
	}))
	defer srv.Close()

	c := payments.NewClient(srv.URL)
	_, err := c.CreatePreference(context.Background(), "BAD-TOKEN", "7", decimal.NewFromInt(100))

	var upstream *payments.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusUnauthorized, upstream.StatusCode)
	assert.Contains(t, string(upstream.Body), "invalid access token")
}
