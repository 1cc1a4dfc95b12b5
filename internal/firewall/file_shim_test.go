package firewall_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dynfw/firewall-sync/internal/domain"
	"github.com/dynfw/firewall-sync/internal/firewall"
)

func TestFileShim_EmptyWhenMissing(t *testing.T) {
	shim := firewall.NewFileShim(filepath.Join(t.TempDir(), "rules.json"))

	rules, err := shim.GetRules(context.Background())
	if err != nil {
		t.Fatalf("GetRules failed: %v", err)
	}
	if len(rules) != 0 {
		t.Errorf("Expected empty rule set, got %v", rules)
	}
}

func TestFileShim_RoundTrip(t *testing.T) {
	shim := firewall.NewFileShim(filepath.Join(t.TempDir(), "rules.json"))
	ctx := context.Background()

	want := domain.RuleSet{"198.51.100.1", "203.0.113.7"}
	if err := shim.ReplaceRules(ctx, want); err != nil {
		t.Fatalf("ReplaceRules failed: %v", err)
	}

	rules, err := shim.GetRules(ctx)
	if err != nil {
		t.Fatalf("GetRules failed: %v", err)
	}
	if len(rules) != len(want) {
		t.Fatalf("Expected %v, got %v", want, rules)
	}
	for i := range want {
		if rules[i] != want[i] {
			t.Errorf("Rule %d: expected %q, got %q", i, want[i], rules[i])
		}
	}
}
