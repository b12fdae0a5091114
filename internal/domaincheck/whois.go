package domaincheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	// DefaultEndpoint is the public availability lookup service.
	DefaultEndpoint = "https://whois.freeaiapi.xyz/check"
	// LookupTimeout bounds a single availability lookup.
	LookupTimeout = 5 * time.Second
)

// Lookup reports whether a fully qualified domain is available.
type Lookup interface {
	Available(ctx context.Context, domain string) (bool, error)
}

// WhoisLookup posts {"domain": ...} to a lookup service and reads
// {"available": bool, "domain": string} back.
type WhoisLookup struct {
	HTTPClient *http.Client
	Endpoint   string
	Timeout    time.Duration
}

// NewWhoisLookup returns a lookup against endpoint with the standard timeout.
func NewWhoisLookup(endpoint string) *WhoisLookup {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &WhoisLookup{HTTPClient: &http.Client{}, Endpoint: endpoint, Timeout: LookupTimeout}
}

type whoisRequest struct {
	Domain string `json:"domain"`
}

type whoisResponse struct {
	Available bool   `json:"available"`
	Domain    string `json:"domain"`
}

// Available queries the service for domain.
func (w *WhoisLookup) Available(ctx context.Context, domain string) (bool, error) {
	timeout := w.Timeout
	if timeout <= 0 {
		timeout = LookupTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(whoisRequest{Domain: domain})
	if err != nil {
		return false, fmt.Errorf("encoding request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.Endpoint, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := w.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("lookup request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("lookup service returned HTTP %d", resp.StatusCode)
	}
	var wr whoisResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return false, fmt.Errorf("decoding lookup reply: %w", err)
	}
	return wr.Available, nil
}
