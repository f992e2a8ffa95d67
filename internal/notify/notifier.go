// Package notify is the boundary to the notification collaborator. Catalog
// and order code treats it as fire-and-forget: delivery failures are logged,
// never propagated as catalog or order failures.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Notifier delivers back-in-stock notices to the users waiting on a product.
type Notifier interface {
	ProductBackInStock(ctx context.Context, recipients []string, productName, productURL string) error
}

// WebhookNotifier posts the notice as JSON to a configured delivery endpoint
// (the mail/notification service sits behind it).
type WebhookNotifier struct {
	url    string
	client *http.Client
}

// NewWebhookNotifier creates a notifier for the given endpoint URL.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type backInStockPayload struct {
	Recipients  []string `json:"recipients"`
	ProductName string   `json:"product_name"`
	ProductURL  string   `json:"product_url"`
}

func (n *WebhookNotifier) ProductBackInStock(ctx context.Context, recipients []string, productName, productURL string) error {
	body, err := json.Marshal(backInStockPayload{
		Recipients:  recipients,
		ProductName: productName,
		ProductURL:  productURL,
	})
	if err != nil {
		return fmt.Errorf("notify: failed to encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("notify: delivery request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("notify: delivery endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// NopNotifier is used when no delivery endpoint is configured.
type NopNotifier struct{}

func (NopNotifier) ProductBackInStock(ctx context.Context, recipients []string, productName, productURL string) error {
	return nil
}
