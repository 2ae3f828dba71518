// Package docsync mirrors shop summaries to a remote document store.
package docsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
)

// HTTPSyncer upserts shop documents with PUT {baseURL}/shops/{shopID}.
type HTTPSyncer struct {
	baseURL string
	client  *http.Client
}

var _ portssvc.ShopDocumentSyncer = (*HTTPSyncer)(nil)

// NewHTTPSyncer creates a syncer for baseURL with a per-request timeout.
func NewHTTPSyncer(baseURL string, timeout time.Duration) *HTTPSyncer {
	return &HTTPSyncer{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// UpsertShopDocument replaces the remote document's fields with fields.
func (s *HTTPSyncer) UpsertShopDocument(ctx context.Context, shopID string, fields map[string]any) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode shop document %s: %w", shopID, err)
	}

	endpoint := s.baseURL + "/shops/" + url.PathEscape(shopID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build shop document request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to upsert shop document %s: %w", shopID, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("failed to upsert shop document %s: remote returned %s", shopID, resp.Status)
	}
	return nil
}

// NoopSyncer is used when no remote document store is configured.
type NoopSyncer struct{}

var _ portssvc.ShopDocumentSyncer = NoopSyncer{}

func (NoopSyncer) UpsertShopDocument(context.Context, string, map[string]any) error {
	return nil
}

// New returns an HTTPSyncer for baseURL, or a NoopSyncer when baseURL is empty.
func New(baseURL string, timeout time.Duration) portssvc.ShopDocumentSyncer {
	if baseURL == "" {
		return NoopSyncer{}
	}
	return NewHTTPSyncer(baseURL, timeout)
}
