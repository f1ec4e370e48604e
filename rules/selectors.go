package rules

import (
	"fmt"
	"regexp"
	"strings"

	"csslint/css"
	"csslint/lint"
)

func init() {
	lint.RegisterRule(&lint.Rule{
		ID:       "adjoining-classes",
		Name:     "Disallow adjoining classes",
		Desc:     "Don't use adjoining classes.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Disallow-adjoining-classes",
		Browsers: "IE6",
		Init:     initAdjoiningClasses,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "ids",
		Name:     "Disallow IDs in selectors",
		Desc:     "Selectors should not contain IDs.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Disallow-IDs-in-selectors",
		Browsers: "All",
		Init:     initIDs,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "overqualified-elements",
		Name:     "Disallow overqualified elements",
		Desc:     "Don't use classes or IDs with elements (a.foo or a#foo).",
		URL:      "https://github.com/CSSLint/csslint/wiki/Disallow-overqualified-elements",
		Browsers: "All",
		Init:     initOverqualifiedElements,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "qualified-headings",
		Name:     "Disallow qualified headings",
		Desc:     "Headings should not be qualified (namespaced).",
		URL:      "https://github.com/CSSLint/csslint/wiki/Disallow-qualified-headings",
		Browsers: "All",
		Init:     initQualifiedHeadings,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "regex-selectors",
		Name:     "Disallow selectors that look like regexs",
		Desc:     "Selectors that look like regular expressions are slow and should be avoided.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Disallow-selectors-that-look-like-regular-expressions",
		Browsers: "All",
		Init:     initRegexSelectors,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "selector-newline",
		Name:     "Disallow new-line characters in selectors",
		Desc:     "New-line characters in selectors are usually a forgotten comma and not a descendant combinator.",
		Browsers: "All",
		Init:     initSelectorNewline,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "unique-headings",
		Name:     "Headings should only be defined once",
		Desc:     "Headings should be defined only once.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Headings-should-only-be-defined-once",
		Browsers: "All",
		Init:     initUniqueHeadings,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "universal-selector",
		Name:     "Disallow universal selector",
		Desc:     "The universal selector (*) is known to be slow.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Disallow-universal-selector",
		Browsers: "All",
		Init:     initUniversalSelector,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "unqualified-attributes",
		Name:     "Disallow unqualified attribute selectors",
		Desc:     "Unqualified attribute selectors are known to be slow.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Disallow-unqualified-attribute-selectors",
		Browsers: "All",
		Init:     initUnqualifiedAttributes,
	})
}

func initAdjoiningClasses(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	parser.AddListener(css.EventRuleStart, func(e *css.Event) {
		for _, sel := range e.Selectors {
			for _, part := range sel.Parts {
				if part.IsCombinator() {
					continue
				}
				// every class beyond the first gets its own report
				classes := 0
				for _, mod := range part.Modifiers {
					if mod.Type != css.ModifierClass {
						continue
					}
					if classes++; classes > 1 {
						reporter.Report("Adjoining classes: "+sel.Text, part.Line, part.Col, rule)
					}
				}
			}
		}
	})
}

func initIDs(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	parser.AddListener(css.EventRuleStart, func(e *css.Event) {
		for _, sel := range e.Selectors {
			ids := 0
			for _, part := range sel.Parts {
				if part.IsCombinator() {
					continue
				}
				for _, mod := range part.Modifiers {
					if mod.Type == css.ModifierID {
						ids++
					}
				}
			}
			switch {
			case ids == 1:
				reporter.Report("Don't use Id in selector.", sel.Line, sel.Col, rule)
			case ids > 1:
				reporter.Report(fmt.Sprintf("%d Ids in selector, really?", ids), sel.Line, sel.Col, rule)
			}
		}
	})
}

func initOverqualifiedElements(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	type classUse struct {
		modifier *css.Modifier
		part     *css.SelectorPart
	}
	classes := map[string][]classUse{}
	var order []string

	parser.AddListener(css.EventRuleStart, func(e *css.Event) {
		for _, sel := range e.Selectors {
			for _, part := range sel.Parts {
				if part.IsCombinator() {
					continue
				}
				for _, mod := range part.Modifiers {
					switch {
					case mod.Type == css.ModifierID && part.Element != "":
						reporter.Report(fmt.Sprintf("Element (%s) is overqualified, just use %s without element name.", part.Text, mod.Text), part.Line, part.Col, rule)
					case mod.Type == css.ModifierClass:
						if _, ok := classes[mod.Text]; !ok {
							order = append(order, mod.Text)
						}
						classes[mod.Text] = append(classes[mod.Text], classUse{mod, part})
					}
				}
			}
		}
	})

	// a class used with an element in its only occurrence is overqualified,
	// reused classes may rely on the element for specificity
	parser.AddListener(css.EventStylesheetEnd, func(*css.Event) {
		for _, text := range order {
			uses := classes[text]
			if len(uses) == 1 && uses[0].part.Element != "" {
				reporter.Report(fmt.Sprintf("Element (%s) is overqualified, just use %s without element name.", uses[0].part.Text, uses[0].modifier.Text), uses[0].part.Line, uses[0].part.Col, rule)
			}
		}
	})
}

var headingElementRE = regexp.MustCompile(`(?i)^h[1-6]$`)

func initQualifiedHeadings(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	parser.AddListener(css.EventRuleStart, func(e *css.Event) {
		for _, sel := range e.Selectors {
			for j, part := range sel.Parts {
				if j == 0 || part.IsCombinator() {
					continue
				}
				if headingElementRE.MatchString(part.Element) {
					reporter.Report(fmt.Sprintf("Heading (%s) should not be qualified.", part.Element), part.Line, part.Col, rule)
				}
			}
		}
	})
}

var attrOperatorRE = regexp.MustCompile(`([~|^$*]=)`)

func initRegexSelectors(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	parser.AddListener(css.EventRuleStart, func(e *css.Event) {
		for _, sel := range e.Selectors {
			for _, part := range sel.Parts {
				if part.IsCombinator() {
					continue
				}
				for _, mod := range part.Modifiers {
					if mod.Type != css.ModifierAttribute {
						continue
					}
					if m := attrOperatorRE.FindStringSubmatch(mod.Text); m != nil {
						reporter.Report(fmt.Sprintf("Attribute selectors with %s are slow!", m[1]), mod.Line, mod.Col, rule)
					}
				}
			}
		}
	})
}

func initSelectorNewline(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	parser.AddListener(css.EventRuleStart, func(e *css.Event) {
		for _, sel := range e.Selectors {
			for p := 0; p+1 < len(sel.Parts); p++ {
				part := sel.Parts[p]
				if part.Combinator == "descendant" && sel.Parts[p+1].Line > part.Line {
					reporter.Report("newline character found in selector (forgot a comma?)", part.Line, sel.Parts[0].Col, rule)
				}
			}
		}
	})
}

func initUniqueHeadings(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	headings := map[string]int{}

	parser.AddListener(css.EventRuleStart, func(e *css.Event) {
		for _, sel := range e.Selectors {
			if len(sel.Parts) == 0 {
				continue
			}
			part := sel.Parts[len(sel.Parts)-1]
			if part.IsCombinator() || !headingElementRE.MatchString(part.Element) {
				continue
			}
			pseudo := false
			for _, mod := range part.Modifiers {
				if mod.Type == css.ModifierPseudo {
					pseudo = true
					break
				}
			}
			if pseudo {
				continue
			}
			name := strings.ToLower(part.Element)
			headings[name]++
			if headings[name] > 1 {
				reporter.Report(fmt.Sprintf("Heading (%s) has already been defined.", part.Element), part.Line, part.Col, rule)
			}
		}
	})

	parser.AddListener(css.EventStylesheetEnd, func(*css.Event) {
		var counts []string
		for i := 1; i <= 6; i++ {
			name := fmt.Sprintf("h%d", i)
			if headings[name] > 1 {
				counts = append(counts, fmt.Sprintf("%d %ss", headings[name], name))
			}
		}
		if len(counts) > 0 {
			reporter.RollupWarn(fmt.Sprintf("You have %s defined in this stylesheet.", strings.Join(counts, ", ")), rule)
		}
	})
}

func initUniversalSelector(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	parser.AddListener(css.EventRuleStart, func(e *css.Event) {
		for _, sel := range e.Selectors {
			if len(sel.Parts) == 0 {
				continue
			}
			part := sel.Parts[len(sel.Parts)-1]
			if part.Element == "*" {
				reporter.Report(rule.Desc, sel.Line, sel.Col, rule)
			}
		}
	})
}

func initUnqualifiedAttributes(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	parser.AddListener(css.EventRuleStart, func(e *css.Event) {
		for _, sel := range e.Selectors {
			if len(sel.Parts) == 0 {
				continue
			}
			part := sel.Parts[len(sel.Parts)-1]
			if part.IsCombinator() {
				continue
			}
			qualified := false
			for _, mod := range part.Modifiers {
				if mod.Type == css.ModifierClass || mod.Type == css.ModifierID {
					qualified = true
					break
				}
			}
			// an element name other than * qualifies the attribute lookup
			if qualified || (part.Element != "" && part.Element != "*") {
				continue
			}
			for _, mod := range part.Modifiers {
				if mod.Type == css.ModifierAttribute {
					reporter.Report(rule.Desc, sel.Line, sel.Col, rule)
				}
			}
		}
	})
}
