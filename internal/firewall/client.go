package firewall

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dynfw/firewall-sync/internal/auth"
	"github.com/dynfw/firewall-sync/internal/domain"
)

// RuleClient defines the interface for reading and replacing the target
// resource's IP allow-list.
type RuleClient interface {
	GetRules(ctx context.Context) (domain.RuleSet, error)
	ReplaceRules(ctx context.Context, rules domain.RuleSet) error
}

// Target identifies the protected resource on the management API.
type Target struct {
	BaseURL        string
	SubscriptionID string
	ResourceGroup  string
	Provider       string
	ResourceName   string
	APIVersion     string
}

// Client talks to the management API's firewall-rules endpoints.
type Client struct {
	target Target
	issuer auth.Issuer
	http   *http.Client
}

// Ensure Client implements RuleClient.
var _ RuleClient = (*Client)(nil)

// New creates a new firewall rules client. The HTTP client is shared across
// invocations and holds no per-request state.
func New(target Target, issuer auth.Issuer) *Client {
	return &Client{
		target: target,
		issuer: issuer,
		http:   &http.Client{},
	}
}

// ruleEntry is the wire form of one allow-list entry.
type ruleEntry struct {
	Value string `json:"value"`
}

// rulesResponse is the body of a firewall-rules read.
type rulesResponse struct {
	Value []ruleEntry `json:"value"`
}

// replaceRequest is the body of a firewall-rules replace. The rule set is
// submitted wholesale: entries missing from IPRules are dropped remotely.
type replaceRequest struct {
	Properties ruleProperties `json:"properties"`
}

type ruleProperties struct {
	IPRules []ruleEntry `json:"ipRules"`
}

func (c *Client) rulesURL() string {
	return fmt.Sprintf("%s/subscriptions/%s/resourceGroups/%s/providers/%s/%s/firewallRules",
		strings.TrimSuffix(c.target.BaseURL, "/"),
		c.target.SubscriptionID,
		c.target.ResourceGroup,
		c.target.Provider,
		c.target.ResourceName)
}

// GetRules reads the current allow-list.
func (c *Client) GetRules(ctx context.Context) (domain.RuleSet, error) {
	token, err := c.issuer.Token(ctx)
	if err != nil {
		return nil, err
	}

	url := c.rulesURL() + "?api-version=" + c.target.APIVersion
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reading firewall rules: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.APIStatusError{
			Method:     http.MethodGet,
			StatusCode: resp.StatusCode,
			Reason:     responseReason(resp),
		}
	}

	var body rulesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding firewall rules response: %w", err)
	}

	rules := make(domain.RuleSet, 0, len(body.Value))
	for _, entry := range body.Value {
		rules = append(rules, entry.Value)
	}
	return rules, nil
}

// ReplaceRules overwrites the allow-list with the given full rule set.
func (c *Client) ReplaceRules(ctx context.Context, rules domain.RuleSet) error {
	token, err := c.issuer.Token(ctx)
	if err != nil {
		return err
	}

	entries := make([]ruleEntry, 0, len(rules))
	for _, ip := range rules {
		entries = append(entries, ruleEntry{Value: ip})
	}
	payload, err := json.Marshal(replaceRequest{Properties: ruleProperties{IPRules: entries}})
	if err != nil {
		return fmt.Errorf("marshaling firewall rules: %w", err)
	}

	url := c.rulesURL() + "/default?api-version=" + c.target.APIVersion
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("replacing firewall rules: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.APIStatusError{
			Method:     http.MethodPut,
			StatusCode: resp.StatusCode,
			Reason:     responseReason(resp),
		}
	}
	return nil
}

// responseReason extracts the remote-supplied reason text from an error
// response, falling back to the status line.
func responseReason(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		if reason := strings.TrimSpace(string(body)); reason != "" {
			return reason
		}
	}
	return resp.Status
}
