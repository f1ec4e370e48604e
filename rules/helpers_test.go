package rules_test

import (
	"testing"

	"csslint/lint"
	_ "csslint/rules"
)

// verify runs the engine with only the listed rules enabled as warnings.
func verify(t *testing.T, src string, ids ...string) *lint.Report {
	t.Helper()
	rs := lint.Ruleset{}
	for _, id := range ids {
		rs[id] = lint.SeverityWarning
	}
	return lint.NewEngine(nil).Verify(src, rs)
}

func messagesFor(report *lint.Report, id string) []lint.Message {
	var out []lint.Message
	for _, m := range report.Messages {
		if m.RuleID == id {
			out = append(out, m)
		}
	}
	return out
}

// wantMessages asserts the exact message texts reported by one rule, in
// order.
func wantMessages(t *testing.T, report *lint.Report, id string, want ...string) []lint.Message {
	t.Helper()
	got := messagesFor(report, id)
	if len(got) != len(want) {
		t.Fatalf("expected %d messages for %s, got %d: %+v", len(want), id, len(got), got)
	}
	for i := range want {
		if got[i].Message != want[i] {
			t.Errorf("message %d: expected %q, got %q", i, want[i], got[i].Message)
		}
	}
	return got
}

func wantPosition(t *testing.T, m lint.Message, line, col int) {
	t.Helper()
	if m.Line != line || m.Col != col {
		t.Errorf("expected message at %d:%d, got %d:%d (%q)", line, col, m.Line, m.Col, m.Message)
	}
}
