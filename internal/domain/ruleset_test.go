package domain_test

import (
	"testing"

	"github.com/dynfw/firewall-sync/internal/domain"
)

func TestRuleSetContains(t *testing.T) {
	rules := domain.RuleSet{"198.51.100.1", "203.0.113.7"}

	if !rules.Contains("203.0.113.7") {
		t.Error("Expected Contains to find an existing IP")
	}
	if rules.Contains("203.0.113.8") {
		t.Error("Expected Contains to miss an absent IP")
	}
	// Exact string match only
	if rules.Contains("203.0.113.07") {
		t.Error("Expected no normalization in the membership check")
	}
}

func TestRuleSetWithIP(t *testing.T) {
	rules := domain.RuleSet{"198.51.100.1", "192.0.2.9"}
	updated := rules.WithIP("203.0.113.7")

	want := []string{"198.51.100.1", "192.0.2.9", "203.0.113.7"}
	if len(updated) != len(want) {
		t.Fatalf("Expected %v, got %v", want, updated)
	}
	for i := range want {
		if updated[i] != want[i] {
			t.Errorf("Position %d: expected %q, got %q", i, want[i], updated[i])
		}
	}

	// The original is untouched
	if len(rules) != 2 {
		t.Errorf("Expected original rule set unchanged, got %v", rules)
	}
}
