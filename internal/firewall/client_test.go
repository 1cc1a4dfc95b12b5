package firewall_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dynfw/firewall-sync/internal/domain"
	"github.com/dynfw/firewall-sync/internal/firewall"
)

// staticIssuer returns a fixed token without a network round trip.
type staticIssuer struct {
	token string
	err   error
}

func (s *staticIssuer) Token(ctx context.Context) (string, error) {
	return s.token, s.err
}

func newTarget(baseURL string) firewall.Target {
	return firewall.Target{
		BaseURL:        baseURL,
		SubscriptionID: "sub-1",
		ResourceGroup:  "rg-1",
		Provider:       "Microsoft.Storage/storageAccounts",
		ResourceName:   "acct-1",
		APIVersion:     "2022-07-01",
	}
}

const rulesPath = "/subscriptions/sub-1/resourceGroups/rg-1/providers/Microsoft.Storage/storageAccounts/acct-1/firewallRules"

func TestGetRules(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET, got %s", r.Method)
		}
		if r.URL.Path != rulesPath {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("api-version"); got != "2022-07-01" {
			t.Errorf("Expected api-version 2022-07-01, got %s", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Expected bearer token header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"value":[{"value":"198.51.100.1"},{"value":"203.0.113.7"}]}`))
	}))
	defer srv.Close()

	client := firewall.New(newTarget(srv.URL), &staticIssuer{token: "tok-123"})
	rules, err := client.GetRules(context.Background())
	if err != nil {
		t.Fatalf("GetRules failed: %v", err)
	}

	want := domain.RuleSet{"198.51.100.1", "203.0.113.7"}
	if len(rules) != len(want) {
		t.Fatalf("Expected %v, got %v", want, rules)
	}
	for i := range want {
		if rules[i] != want[i] {
			t.Errorf("Rule %d: expected %q, got %q", i, want[i], rules[i])
		}
	}
}

func TestGetRules_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("caller is not authorized"))
	}))
	defer srv.Close()

	client := firewall.New(newTarget(srv.URL), &staticIssuer{token: "tok-123"})
	_, err := client.GetRules(context.Background())

	var statusErr *domain.APIStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected APIStatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", statusErr.StatusCode)
	}
	if statusErr.Reason != "caller is not authorized" {
		t.Errorf("Expected remote reason in error, got %q", statusErr.Reason)
	}
}

func TestGetRules_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value":"not-a-list"}`))
	}))
	defer srv.Close()

	client := firewall.New(newTarget(srv.URL), &staticIssuer{token: "tok-123"})
	if _, err := client.GetRules(context.Background()); err == nil {
		t.Fatal("Expected a decode error for a shape mismatch")
	}
}

func TestGetRules_TokenFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("No request should reach the API when the token exchange fails")
	}))
	defer srv.Close()

	issuer := &staticIssuer{err: &domain.AuthError{Err: errors.New("invalid client secret")}}
	client := firewall.New(newTarget(srv.URL), issuer)
	_, err := client.GetRules(context.Background())

	var authErr *domain.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Expected AuthError, got %v", err)
	}
}

func TestReplaceRules(t *testing.T) {
	var body struct {
		Properties struct {
			IPRules []struct {
				Value string `json:"value"`
			} `json:"ipRules"`
		} `json:"properties"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("Expected PUT, got %s", r.Method)
		}
		if r.URL.Path != rulesPath+"/default" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Expected bearer token header, got %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("Decoding request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := firewall.New(newTarget(srv.URL), &staticIssuer{token: "tok-123"})
	err := client.ReplaceRules(context.Background(), domain.RuleSet{"198.51.100.1", "203.0.113.7"})
	if err != nil {
		t.Fatalf("ReplaceRules failed: %v", err)
	}

	want := []string{"198.51.100.1", "203.0.113.7"}
	if len(body.Properties.IPRules) != len(want) {
		t.Fatalf("Expected %d ipRules, got %d", len(want), len(body.Properties.IPRules))
	}
	for i := range want {
		if body.Properties.IPRules[i].Value != want[i] {
			t.Errorf("ipRules[%d]: expected %q, got %q", i, want[i], body.Properties.IPRules[i].Value)
		}
	}
}

func TestReplaceRules_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte("resource is being updated"))
	}))
	defer srv.Close()

	client := firewall.New(newTarget(srv.URL), &staticIssuer{token: "tok-123"})
	err := client.ReplaceRules(context.Background(), domain.RuleSet{"198.51.100.1"})

	var statusErr *domain.APIStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected APIStatusError, got %v", err)
	}
	if statusErr.Method != http.MethodPut {
		t.Errorf("Expected method PUT in error, got %s", statusErr.Method)
	}
}
