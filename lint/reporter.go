package lint

// Reporter collects messages and statistics for one verification run. Rules
// report through it, the allow table and ignore ranges decide what sticks.
type Reporter struct {
	Messages []Message
	Stats    map[string]int

	lines   []string
	ruleset Ruleset
	allow   AllowTable
	ignore  IgnoreRanges
}

func NewReporter(lines []string, ruleset Ruleset, allow AllowTable, ignore IgnoreRanges) *Reporter {
	return &Reporter{
		Messages: []Message{},
		Stats:    map[string]int{},
		lines:    lines,
		ruleset:  ruleset,
		allow:    allow,
		ignore:   ignore,
	}
}

// Error records an unconditional error. Neither allow comments nor ignore
// ranges suppress it.
func (r *Reporter) Error(message string, line, col int, rule *Rule) {
	r.Messages = append(r.Messages, Message{
		Type:     "error",
		Line:     line,
		Col:      col,
		Message:  message,
		Evidence: r.evidence(line),
		RuleID:   ruleID(rule),
		Rule:     rule,
	})
}

// Report records a rule finding. The severity comes from the ruleset, allow
// comments on the same line and ignore ranges drop the message.
func (r *Reporter) Report(message string, line, col int, rule *Rule) {
	if ids, ok := r.allow[line]; ok && ids[ruleID(rule)] {
		return
	}
	if r.ignore.Contains(line) {
		return
	}

	typ := "warning"
	if r.ruleset[ruleID(rule)] == SeverityError {
		typ = "error"
	}
	r.Messages = append(r.Messages, Message{
		Type:     typ,
		Line:     line,
		Col:      col,
		Message:  message,
		Evidence: r.evidence(line),
		RuleID:   ruleID(rule),
		Rule:     rule,
	})
}

// Info records an informational message.
func (r *Reporter) Info(message string, line, col int, rule *Rule) {
	r.Messages = append(r.Messages, Message{
		Type:     "info",
		Line:     line,
		Col:      col,
		Message:  message,
		Evidence: r.evidence(line),
		RuleID:   ruleID(rule),
		Rule:     rule,
	})
}

// RollupError records a stylesheet-wide error with no position.
func (r *Reporter) RollupError(message string, rule *Rule) {
	r.Messages = append(r.Messages, Message{
		Type:    "error",
		Message: message,
		Rollup:  true,
		RuleID:  ruleID(rule),
		Rule:    rule,
	})
}

// RollupWarn records a stylesheet-wide warning with no position.
func (r *Reporter) RollupWarn(message string, rule *Rule) {
	r.Messages = append(r.Messages, Message{
		Type:    "warning",
		Message: message,
		Rollup:  true,
		RuleID:  ruleID(rule),
		Rule:    rule,
	})
}

// Stat records a named statistic.
func (r *Reporter) Stat(name string, value int) {
	r.Stats[name] = value
}

func (r *Reporter) evidence(line int) string {
	if line >= 1 && line <= len(r.lines) {
		return r.lines[line-1]
	}
	return ""
}

func ruleID(rule *Rule) string {
	if rule == nil {
		return ""
	}
	return rule.ID
}
