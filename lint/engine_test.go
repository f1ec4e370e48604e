package lint_test

import (
	"strings"
	"testing"

	"csslint/css"
	"csslint/lint"
)

func init() {
	lint.RegisterRule(&lint.Rule{
		ID:   "test-wide-rule",
		Name: "Every rule",
		Desc: "Flags every style rule, used to exercise the engine.",
		Init: func(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
			parser.AddListener(css.EventRuleStart, func(e *css.Event) {
				reporter.Report("rule found", e.Line, e.Col, rule)
			})
		},
	})
	lint.RegisterRule(&lint.Rule{
		ID:   "test-panics",
		Name: "Broken",
		Desc: "Panics during init, used to exercise isolation.",
		Init: func(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
			panic("broken rule")
		},
	})
	lint.RegisterRule(&lint.Rule{
		ID:   "errors",
		Name: "Parsing errors",
		Desc: "Reports parser errors.",
		Init: func(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
			parser.AddListener(css.EventError, func(e *css.Event) {
				reporter.Report(e.Message, e.Line, e.Col, rule)
			})
		},
	})
}

func TestVerifyReportsEnabledRules(t *testing.T) {
	e := lint.NewEngine(nil)
	report := e.Verify(".a { color: red; }\n.b { color: blue; }", lint.Ruleset{"test-wide-rule": lint.SeverityWarning})

	if len(report.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d: %v", len(report.Messages), report.Messages)
	}
	for i, m := range report.Messages {
		if m.Type != "warning" || m.Message != "rule found" {
			t.Errorf("unexpected message %+v", m)
		}
		if m.Line != i+1 || m.Col != 1 {
			t.Errorf("expected message at %d:1, got %d:%d", i+1, m.Line, m.Col)
		}
	}
	if report.Ruleset["errors"] != lint.SeverityError {
		t.Error("expected errors severity to be forced to error")
	}
}

func TestVerifySeverityMapping(t *testing.T) {
	e := lint.NewEngine(nil)
	report := e.Verify(".a {}", lint.Ruleset{"test-wide-rule": lint.SeverityError})

	if len(report.Messages) != 1 || report.Messages[0].Type != "error" {
		t.Fatalf("expected one error, got %v", report.Messages)
	}
}

func TestVerifyDisabledRule(t *testing.T) {
	e := lint.NewEngine(nil)
	report := e.Verify(".a {}", lint.Ruleset{"test-wide-rule": lint.SeverityOff})

	if len(report.Messages) != 0 {
		t.Fatalf("expected no messages, got %v", report.Messages)
	}
}

func TestVerifyNilRulesetEnablesAll(t *testing.T) {
	e := lint.NewEngine(nil)
	report := e.Verify(".a {}", nil)

	found := false
	for _, m := range report.Messages {
		if m.RuleID == "test-wide-rule" && m.Type == "warning" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected default ruleset to enable registered rules, got %v", report.Messages)
	}
}

func TestVerifyRuleInitPanicIsolated(t *testing.T) {
	e := lint.NewEngine(nil)
	report := e.Verify(".a {}", lint.Ruleset{"test-panics": 1, "test-wide-rule": 1})

	if len(report.Messages) != 1 || report.Messages[0].Message != "rule found" {
		t.Fatalf("expected the healthy rule to still run, got %v", report.Messages)
	}
}

func TestVerifyParserErrorsForcedToError(t *testing.T) {
	e := lint.NewEngine(nil)
	report := e.Verify("p { color red; }", lint.Ruleset{"errors": lint.SeverityWarning})

	if len(report.Messages) == 0 {
		t.Fatal("expected a parser error message")
	}
	for _, m := range report.Messages {
		if m.RuleID == "errors" && m.Type != "error" {
			t.Errorf("expected parser errors to stay errors, got %+v", m)
		}
	}
}

func TestVerifyAllowComment(t *testing.T) {
	e := lint.NewEngine(nil)
	report := e.Verify(".a {} /* csslint allow: test-wide-rule */\n.b {}", lint.Ruleset{"test-wide-rule": 1})

	if len(report.Messages) != 1 {
		t.Fatalf("expected 1 message, got %v", report.Messages)
	}
	if report.Messages[0].Line != 2 {
		t.Errorf("expected the surviving message on line 2, got %d", report.Messages[0].Line)
	}
}

func TestVerifyIgnoreRange(t *testing.T) {
	e := lint.NewEngine(nil)
	src := strings.Join([]string{
		"/* csslint ignore:start */",
		".a {}",
		"/* csslint ignore:end */",
		".b {}",
	}, "\n")
	report := e.Verify(src, lint.Ruleset{"test-wide-rule": 1})

	if len(report.Messages) != 1 {
		t.Fatalf("expected 1 message, got %v", report.Messages)
	}
	if report.Messages[0].Line != 4 {
		t.Errorf("expected the surviving message on line 4, got %d", report.Messages[0].Line)
	}
	if len(report.Ignore) != 1 {
		t.Errorf("expected the ignore range in the report, got %v", report.Ignore)
	}
}

func TestVerifyEmbeddedRulesetDisables(t *testing.T) {
	e := lint.NewEngine(nil)
	report := e.Verify("/* csslint test-wide-rule: false */\n.a {}", lint.Ruleset{"test-wide-rule": 1})

	if len(report.Messages) != 0 {
		t.Fatalf("expected embedded override to disable the rule, got %v", report.Messages)
	}
}

func TestVerifyEmbeddedRulesetEnables(t *testing.T) {
	e := lint.NewEngine(nil)
	report := e.Verify("/* csslint test-wide-rule: true */\n.a {}", lint.Ruleset{})

	if len(report.Messages) != 1 || report.Messages[0].Type != "error" {
		t.Fatalf("expected embedded override to enable the rule as error, got %v", report.Messages)
	}
}

func TestVerifyEmbeddedRulesetLaterCommentWins(t *testing.T) {
	e := lint.NewEngine(nil)
	report := e.Verify("/* csslint test-wide-rule: 2 */\n/* csslint test-wide-rule: false */\n.a {}", lint.Ruleset{})

	if len(report.Messages) != 0 {
		t.Fatalf("expected the later override to disable the rule, got %v", report.Messages)
	}
}

func TestVerifyEmbeddedRulesetSecondCommentApplies(t *testing.T) {
	e := lint.NewEngine(nil)
	report := e.Verify("/* csslint errors: 2 */\n/* csslint test-wide-rule: 2 */\n.a {}", lint.Ruleset{})

	if len(report.Messages) != 1 || report.Messages[0].Type != "error" {
		t.Fatalf("expected the second comment to enable the rule as error, got %v", report.Messages)
	}
}
