// Package rules contains the built-in lint rules. Importing the package
// registers every rule with the lint registry.
package rules

import (
	"regexp"
	"strings"

	"csslint/css"
	"csslint/lint"
)

func init() {
	lint.RegisterRule(&lint.Rule{
		ID:       "empty-rules",
		Name:     "Disallow empty rules",
		Desc:     "Rules without any properties specified should be removed.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Disallow-empty-rules",
		Browsers: "All",
		Init:     initEmptyRules,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "import",
		Name:     "Disallow @import",
		Desc:     "Don't use @import, use <link> instead.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Disallow-%40import",
		Browsers: "All",
		Init:     initImport,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "bulletproof-font-face",
		Name:     "Use the bulletproof @font-face syntax",
		Desc:     "Use the bulletproof @font-face syntax to avoid 404's in old IE (http://www.fontspring.com/blog/the-new-bulletproof-font-face-syntax).",
		URL:      "https://github.com/CSSLint/csslint/wiki/Bulletproof-font-face",
		Browsers: "All",
		Init:     initBulletproofFontFace,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "errors",
		Name:     "Parsing Errors",
		Desc:     "This rule looks for recoverable syntax errors.",
		Browsers: "All",
		Init:     initErrors,
	})
}

func initEmptyRules(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	count := 0
	parser.AddListener(css.EventRuleStart, func(*css.Event) {
		count = 0
	})
	parser.AddListener(css.EventProperty, func(*css.Event) {
		count++
	})
	parser.AddListener(css.EventRuleEnd, func(e *css.Event) {
		if count == 0 && len(e.Selectors) > 0 {
			reporter.Report("Rule is empty.", e.Selectors[0].Line, e.Selectors[0].Col, rule)
		}
	})
}

func initImport(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	parser.AddListener(css.EventImport, func(e *css.Event) {
		reporter.Report("@import prevents parallel downloads, use <link> instead.", e.Line, e.Col, rule)
	})
}

var bulletproofSrcRE = regexp.MustCompile(`(?i)^\s?url\(['"].+\.eot\?.*['"]\)\s*format\(['"]embedded-opentype['"]\).*$`)

func initBulletproofFontFace(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	var (
		inFontFace bool
		firstSrc   bool
		failed     bool
		line, col  int
	)

	parser.AddListener(css.EventFontFaceStart, func(*css.Event) {
		inFontFace = true
		firstSrc = true
		failed = false
	})

	parser.AddListener(css.EventProperty, func(e *css.Event) {
		if !inFontFace {
			return
		}
		line, col = e.Line, e.Col

		if strings.ToLower(e.PropertyText()) != "src" {
			return
		}
		// src values often wrap across lines, fold the whitespace before
		// matching. The advanced syntax repeats src, a later conforming
		// value clears the failure.
		value := strings.Join(strings.Fields(e.Value.Text), " ")
		if !bulletproofSrcRE.MatchString(value) && firstSrc {
			failed = true
			firstSrc = false
		} else if bulletproofSrcRE.MatchString(value) && !firstSrc {
			failed = false
		}
	})

	parser.AddListener(css.EventFontFaceEnd, func(*css.Event) {
		inFontFace = false
		if failed {
			reporter.Report("@font-face declaration doesn't follow the fontspring bulletproof syntax.", line, col, rule)
		}
	})
}

// initErrors surfaces parser diagnostics. Errors bypass allow and ignore
// directives, warnings go through the normal report path so they can be
// suppressed.
func initErrors(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	parser.AddListener(css.EventError, func(e *css.Event) {
		reporter.Error(e.Message, e.Line, e.Col, rule)
	})
	parser.AddListener(css.EventWarning, func(e *css.Event) {
		reporter.Report(e.Message, e.Line, e.Col, rule)
	})
}
