package publicip

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"strings"
)

// DefaultEndpoint is a plain-text echo service that returns the caller's
// public IP address.
const DefaultEndpoint = "https://api.ipify.org"

// Fetcher discovers the caller's public IP from an ipify-style endpoint.
type Fetcher struct {
	url  string
	http *http.Client
}

// New creates a new Fetcher. An empty url selects the default endpoint.
func New(url string) *Fetcher {
	if url == "" {
		url = DefaultEndpoint
	}
	return &Fetcher{url: url, http: &http.Client{}}
}

// Fetch returns the caller's public IP address.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching public IP from %s: %w", f.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching public IP from %s: %s", f.url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return "", fmt.Errorf("reading public IP response: %w", err)
	}

	addr, err := netip.ParseAddr(strings.TrimSpace(string(body)))
	if err != nil {
		return "", fmt.Errorf("parsing public IP response %q: %w", strings.TrimSpace(string(body)), err)
	}
	return addr.String(), nil
}
