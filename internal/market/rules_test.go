package market

import "testing"

func TestResolve_DefaultRules(t *testing.T) {
	rs := NewRuleSet(nil)
	tests := []struct {
		code      string
		indexCode string
		ratio     float64
	}{
		{"600372", "sh000002", 1.10},
		{"601698", "sh000002", 1.10},
		{"688001", "sh000002", 1.20},
		{"002519", "sz399107", 1.10},
		{"000700", "sz399107", 1.10},
		{"300750", "sz399107", 1.20},
		{"301269", "sz399107", 1.10},
		{"830799", "bj899050", 1.30},
		{"430047", "bj899050", 1.30},
	}
	for _, tt := range tests {
		rule := rs.Resolve(tt.code)
		if rule.IndexCode != tt.indexCode {
			t.Errorf("%s: index %s, want %s", tt.code, rule.IndexCode, tt.indexCode)
		}
		if rule.LimitRatio != tt.ratio {
			t.Errorf("%s: limit ratio %v, want %v", tt.code, rule.LimitRatio, tt.ratio)
		}
	}
}

func TestResolve_LongestPrefixWins(t *testing.T) {
	rs := NewRuleSet([]Rule{
		{Prefix: "6", IndexCode: "a", LimitRatio: 1.10},
		{Prefix: "68", IndexCode: "b", LimitRatio: 1.15},
		{Prefix: "688", IndexCode: "c", LimitRatio: 1.20},
	})
	if got := rs.Resolve("688123").IndexCode; got != "c" {
		t.Errorf("688123 resolved to %s, want c", got)
	}
	if got := rs.Resolve("681000").IndexCode; got != "b" {
		t.Errorf("681000 resolved to %s, want b", got)
	}
	if got := rs.Resolve("600000").IndexCode; got != "a" {
		t.Errorf("600000 resolved to %s, want a", got)
	}
}

func TestResolve_UnknownCodeFallsBack(t *testing.T) {
	rs := NewRuleSet([]Rule{{Prefix: "6", IndexCode: "a", LimitRatio: 1.10}})
	rule := rs.Resolve("999999")
	if rule.IndexCode != "sh000002" || rule.LimitRatio != 1.10 {
		t.Errorf("unknown code rule = %+v", rule)
	}
}
