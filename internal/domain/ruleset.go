package domain

import "slices"

// RuleSet is the ordered allow-list of IP addresses on the target resource.
// The order is the remote API's order and must be preserved on writes.
type RuleSet []string

// Contains reports whether ip is already in the allow-list (exact string match).
func (r RuleSet) Contains(ip string) bool {
	return slices.Contains(r, ip)
}

// WithIP returns a copy of the rule set with ip appended. Existing entries
// keep their order; nothing is deduplicated or removed.
func (r RuleSet) WithIP(ip string) RuleSet {
	out := make(RuleSet, 0, len(r)+1)
	out = append(out, r...)
	out = append(out, ip)
	return out
}
