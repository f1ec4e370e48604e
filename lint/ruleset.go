package lint

import "maps"

// Severity levels a ruleset assigns to rule ids.
const (
	SeverityOff     = 0
	SeverityWarning = 1
	SeverityError   = 2
)

// Ruleset maps rule ids to severities. A missing or zero entry disables the
// rule.
type Ruleset map[string]int

// Clone returns an independent copy of the ruleset.
func (rs Ruleset) Clone() Ruleset {
	return maps.Clone(rs)
}

// DefaultRuleset enables every registered rule as a warning.
func DefaultRuleset() Ruleset {
	rs := make(Ruleset)
	for _, rule := range Rules() {
		rs[rule.ID] = SeverityWarning
	}
	return rs
}
