package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookNotifier_ProductBackInStock(t *testing.T) {
	var received backInStockPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL)
	err := notifier.ProductBackInStock(context.Background(),
		[]string{"ana@example.com"}, "Oak Armchair", "http://shop.test/products/7")

	require.NoError(t, err)
	assert.Equal(t, []string{"ana@example.com"}, received.Recipients)
	assert.Equal(t, "Oak Armchair", received.ProductName)
	assert.Equal(t, "http://shop.test/products/7", received.ProductURL)
}

func TestWebhookNotifier_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL)
	err := notifier.ProductBackInStock(context.Background(), []string{"ana@example.com"}, "Oak Armchair", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
