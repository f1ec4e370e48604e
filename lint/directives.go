package lint

import (
	"regexp"
	"strings"
)

// Comment directives understood inside stylesheets:
//
//	/* csslint allow: rule-a, rule-b */     suppress listed rules on this line
//	/* csslint ignore:start */              suppress everything until ignore:end
//	/* csslint ignore:end */
//	/* csslint rule-a: 2, rule-b: false */  override rule severities
var (
	allowLineRE   = regexp.MustCompile(`(?i)/\*[ \t]*csslint[ \t]+allow:[ \t]*([^*]*)\*/`)
	ignoreStartRE = regexp.MustCompile(`(?i)/\*[ \t]*csslint[ \t]+ignore:start[ \t]*\*/`)
	ignoreEndRE   = regexp.MustCompile(`(?i)/\*[ \t]*csslint[ \t]+ignore:end[ \t]*\*/`)
	embeddedRE    = regexp.MustCompile(`/\*\s*csslint([^*]*)\*/`)
)

var directiveValues = map[string]int{
	"true":  SeverityError,
	"":      SeverityWarning,
	"false": SeverityOff,
	"2":     SeverityError,
	"1":     SeverityWarning,
	"0":     SeverityOff,
}

// AllowTable records, per 1-based line, the rule ids suppressed on that line.
type AllowTable map[int]map[string]bool

// IgnoreRanges is a list of 1-based inclusive line ranges to suppress.
type IgnoreRanges [][2]int

// Contains reports whether line falls inside any ignored range.
func (ir IgnoreRanges) Contains(line int) bool {
	for _, r := range ir {
		if r[0] <= line && line <= r[1] {
			return true
		}
	}
	return false
}

// extractDirectives scans the stylesheet lines for allow and ignore comments.
// An unclosed ignore:start runs to the final line, a second start before the
// matching end is absorbed and a stray end does nothing.
func extractDirectives(lines []string) (AllowTable, IgnoreRanges) {
	allow := AllowTable{}
	var ignore IgnoreRanges

	ignoreStart := 0
	for i, line := range lines {
		lineno := i + 1

		if m := allowLineRE.FindStringSubmatch(line); m != nil {
			ids := map[string]bool{}
			for _, id := range strings.Split(strings.ToLower(m[1]), ",") {
				if id = strings.TrimSpace(id); id != "" {
					ids[id] = true
				}
			}
			if len(ids) > 0 {
				allow[lineno] = ids
			}
		}

		if ignoreStartRE.MatchString(line) && ignoreStart == 0 {
			ignoreStart = lineno
		}
		if ignoreEndRE.MatchString(line) && ignoreStart != 0 {
			ignore = append(ignore, [2]int{ignoreStart, lineno})
			ignoreStart = 0
		}
	}
	if ignoreStart != 0 {
		ignore = append(ignore, [2]int{ignoreStart, len(lines)})
	}

	return allow, ignore
}

// applyEmbeddedRuleset merges every severity-override comment into the
// ruleset in document order, a later comment wins for the same rule id.
// Allow and ignore comments match the same shape and are skipped.
func applyEmbeddedRuleset(text string, rs Ruleset) {
	for _, m := range embeddedRE.FindAllStringSubmatch(text, -1) {
		body := strings.TrimSpace(strings.ToLower(m[1]))
		if strings.HasPrefix(body, "allow:") || strings.HasPrefix(body, "ignore:") {
			continue
		}
		for _, entry := range strings.Split(body, ",") {
			pair := strings.Split(entry, ":")
			key := strings.TrimSpace(pair[0])
			if key == "" {
				continue
			}
			value := ""
			if len(pair) > 1 {
				value = strings.TrimSpace(pair[1])
			}
			if level, ok := directiveValues[value]; ok {
				rs[key] = level
			}
		}
	}
}
