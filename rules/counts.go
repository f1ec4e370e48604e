package rules

import (
	"fmt"
	"strings"

	"csslint/css"
	"csslint/lint"
)

func init() {
	lint.RegisterRule(&lint.Rule{
		ID:       "floats",
		Name:     "Disallow too many floats",
		Desc:     "This rule tests if the float property is used too many times.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Disallow-too-many-floats",
		Browsers: "All",
		Init:     initFloats,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "font-faces",
		Name:     "Don't use too many web fonts",
		Desc:     "Too many different web fonts in the same stylesheet.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Don%27t-use-too-many-web-fonts",
		Browsers: "All",
		Init:     initFontFaces,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "font-sizes",
		Name:     "Disallow too many font sizes",
		Desc:     "Checks the number of font-size declarations.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Don%27t-use-too-many-font-size-declarations",
		Browsers: "All",
		Init:     initFontSizes,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "import-ie-limit",
		Name:     "@import limit on IE under IE10",
		Desc:     "IE6-9 supports up to 31 @import per stylesheet.",
		Browsers: "IE6,IE7,IE8,IE9",
		Init:     initImportIELimit,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "important",
		Name:     "Disallow !important",
		Desc:     "Be careful when using !important declaration.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Disallow-%21important",
		Browsers: "All",
		Init:     initImportant,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "rules-count",
		Name:     "Rules Count",
		Desc:     "Track how many rules there are.",
		Browsers: "All",
		Init:     initRulesCount,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "selector-max",
		Name:     "Error when past the 4095 selector limit for IE",
		Desc:     "Will error when selector count is over 4095.",
		Browsers: "IE",
		Init:     initSelectorMax,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "selector-max-approaching",
		Name:     "Warn when approaching the 4095 selector limit for IE",
		Desc:     "Will warn when selector count is within 100 of 4095.",
		Browsers: "IE",
		Init:     initSelectorMaxApproaching,
	})
}

func initFloats(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	count := 0
	parser.AddListener(css.EventProperty, func(e *css.Event) {
		if strings.ToLower(e.Property) == "float" && strings.ToLower(e.Value.Text) != "none" {
			count++
		}
	})
	parser.AddListener(css.EventStylesheetEnd, func(*css.Event) {
		reporter.Stat("floats", count)
		if count >= 10 {
			reporter.RollupWarn(fmt.Sprintf("Too many floats (%d), you're probably using them for layout. Consider using a grid system instead.", count), rule)
		}
	})
}

func initFontFaces(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	count := 0
	parser.AddListener(css.EventFontFaceStart, func(*css.Event) {
		count++
	})
	parser.AddListener(css.EventStylesheetEnd, func(*css.Event) {
		if count > 5 {
			reporter.RollupWarn(fmt.Sprintf("Too many @font-face declarations (%d).", count), rule)
		}
	})
}

func initFontSizes(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	count := 0
	parser.AddListener(css.EventProperty, func(e *css.Event) {
		if strings.ToLower(e.PropertyText()) == "font-size" {
			count++
		}
	})
	parser.AddListener(css.EventStylesheetEnd, func(*css.Event) {
		reporter.Stat("font-sizes", count)
		if count >= 10 {
			reporter.RollupWarn(fmt.Sprintf("Too many font-size declarations (%d), abstraction needed.", count), rule)
		}
	})
}

func initImportIELimit(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	const maxImports = 31

	count := 0
	parser.AddListener(css.EventStylesheetStart, func(*css.Event) {
		count = 0
	})
	parser.AddListener(css.EventImport, func(*css.Event) {
		count++
	})
	parser.AddListener(css.EventStylesheetEnd, func(*css.Event) {
		if count > maxImports {
			reporter.RollupError(fmt.Sprintf("Too many @import rules (%d). IE6-9 supports up to 31 import per stylesheet.", count), rule)
		}
	})
}

func initImportant(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	count := 0
	parser.AddListener(css.EventProperty, func(e *css.Event) {
		if e.Important {
			count++
			reporter.Report("Use of !important", e.Line, e.Col, rule)
		}
	})
	parser.AddListener(css.EventStylesheetEnd, func(*css.Event) {
		reporter.Stat("important", count)
		if count >= 10 {
			reporter.RollupWarn(fmt.Sprintf("Too many !important declarations (%d), try to use less than 10 to avoid specificity issues.", count), rule)
		}
	})
}

func initRulesCount(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	count := 0
	parser.AddListener(css.EventRuleStart, func(*css.Event) {
		count++
	})
	parser.AddListener(css.EventStylesheetEnd, func(*css.Event) {
		reporter.Stat("rule-count", count)
	})
}

func initSelectorMax(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	count := 0
	parser.AddListener(css.EventRuleStart, func(e *css.Event) {
		count += len(e.Selectors)
	})
	parser.AddListener(css.EventStylesheetEnd, func(*css.Event) {
		if count > 4095 {
			reporter.Report("4096 selectors exceeded. Internet Explorer supports a maximum of 4095 selectors per stylesheet. Consider refactoring.", 0, 0, rule)
		}
	})
}

func initSelectorMaxApproaching(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	count := 0
	parser.AddListener(css.EventRuleStart, func(e *css.Event) {
		count += len(e.Selectors)
	})
	parser.AddListener(css.EventStylesheetEnd, func(*css.Event) {
		if count >= 3800 {
			reporter.Report(fmt.Sprintf("You have %d selectors. Internet Explorer supports a maximum of 4095 selectors per stylesheet. Consider refactoring.", count), 0, 0, rule)
		}
	})
}
