// Package market maps instrument codes to their benchmark index and daily
// price-limit ratio. The table is built from configuration and passed to the
// analyzer explicitly, so per-market-regime changes never touch code.
package market

import "sort"

// Rule binds a code prefix to a benchmark and a limit ratio.
type Rule struct {
	Prefix     string
	IndexCode  string
	IndexName  string
	LimitRatio float64
}

// RuleSet resolves rules by longest matching prefix.
type RuleSet struct {
	rules []Rule // sorted by descending prefix length
}

// DefaultRules reproduces the mainland A-share conventions:
// Shanghai main board 10% vs 上证A股, STAR market 20%, Shenzhen main board 10%
// vs 深证A股, ChiNext 20%, Beijing exchange 30% vs 北证50.
func DefaultRules() []Rule {
	return []Rule{
		{Prefix: "6", IndexCode: "sh000002", IndexName: "上证A股", LimitRatio: 1.10},
		{Prefix: "688", IndexCode: "sh000002", IndexName: "上证A股", LimitRatio: 1.20},
		{Prefix: "0", IndexCode: "sz399107", IndexName: "深证A股", LimitRatio: 1.10},
		{Prefix: "3", IndexCode: "sz399107", IndexName: "深证A股", LimitRatio: 1.10},
		{Prefix: "300", IndexCode: "sz399107", IndexName: "深证A股", LimitRatio: 1.20},
		{Prefix: "4", IndexCode: "bj899050", IndexName: "北证50", LimitRatio: 1.30},
		{Prefix: "8", IndexCode: "bj899050", IndexName: "北证50", LimitRatio: 1.30},
	}
}

// NewRuleSet builds a resolver from the given rules. Empty input falls back
// to DefaultRules.
func NewRuleSet(rules []Rule) *RuleSet {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Prefix) > len(sorted[j].Prefix)
	})
	return &RuleSet{rules: sorted}
}

// Resolve returns the rule for a stock code, longest prefix winning.
// Unknown codes default to the Shanghai main board rule.
func (rs *RuleSet) Resolve(code string) Rule {
	for _, r := range rs.rules {
		if len(code) >= len(r.Prefix) && code[:len(r.Prefix)] == r.Prefix {
			return r
		}
	}
	return Rule{Prefix: "", IndexCode: "sh000002", IndexName: "上证A股", LimitRatio: 1.10}
}
