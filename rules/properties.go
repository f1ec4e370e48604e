package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"csslint/css"
	"csslint/lint"
)

func init() {
	lint.RegisterRule(&lint.Rule{
		ID:       "compatible-vendor-prefixes",
		Name:     "Require compatible vendor prefixes",
		Desc:     "Include all compatible vendor prefixes to reach a wider range of users.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Require-compatible-vendor-prefixes",
		Browsers: "All",
		Init:     initCompatibleVendorPrefixes,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "duplicate-properties",
		Name:     "Disallow duplicate properties",
		Desc:     "Duplicate properties must appear one after the other.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Disallow-duplicate-properties",
		Browsers: "All",
		Init:     initDuplicateProperties,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "known-properties",
		Name:     "Require use of known properties",
		Desc:     "Properties should be known (listed in CSS3 specification) or be a vendor-prefixed property.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Require-use-of-known-properties",
		Browsers: "All",
		Init:     initKnownProperties,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "order-alphabetical",
		Name:     "Alphabetical order",
		Desc:     "Assure properties are in alphabetical order.",
		Browsers: "All",
		Init:     initOrderAlphabetical,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "shorthand",
		Name:     "Require shorthand properties",
		Desc:     "Use shorthand properties where possible.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Require-shorthand-properties",
		Browsers: "All",
		Init:     initShorthand,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "shorthand-overrides",
		Name:     "Disallow shorthands overriding longhands",
		Desc:     "A shorthand property silently resets longhands declared before it in the same rule.",
		Browsers: "All",
		Init:     initShorthandOverrides,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "star-property-hack",
		Name:     "Disallow properties with a star prefix",
		Desc:     "Checks for the star property hack (targets IE6/7).",
		URL:      "https://github.com/CSSLint/csslint/wiki/Disallow-star-hack",
		Browsers: "All",
		Init:     initStarPropertyHack,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "underscore-property-hack",
		Name:     "Disallow properties with an underscore prefix",
		Desc:     "Checks for the underscore property hack (targets IE6).",
		URL:      "https://github.com/CSSLint/csslint/wiki/Disallow-underscore-hack",
		Browsers: "All",
		Init:     initUnderscorePropertyHack,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "vendor-prefix",
		Name:     "Require standard property with vendor prefix",
		Desc:     "When using a vendor-prefixed property, make sure to include the standard one.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Require-standard-property-with-vendor-prefix",
		Browsers: "All",
		Init:     initVendorPrefix,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "zero-units",
		Name:     "Disallow units for 0 values",
		Desc:     "You don't need to specify units when a value is 0.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Disallow-units-for-zero-values",
		Browsers: "All",
		Init:     initZeroUnits,
	})
}

// compatiblePrefixData lists, per standard property, the vendor prefixes
// that shipped implementations and should appear together.
var compatiblePrefixData = map[string]string{
	"animation":                  "webkit",
	"animation-delay":            "webkit",
	"animation-direction":        "webkit",
	"animation-duration":         "webkit",
	"animation-fill-mode":        "webkit",
	"animation-iteration-count":  "webkit",
	"animation-name":             "webkit",
	"animation-play-state":       "webkit",
	"animation-timing-function":  "webkit",
	"appearance":                 "webkit moz",
	"border-end":                 "webkit moz",
	"border-end-color":           "webkit moz",
	"border-end-style":           "webkit moz",
	"border-end-width":           "webkit moz",
	"border-image":               "webkit moz o",
	"border-radius":              "webkit",
	"border-start":               "webkit moz",
	"border-start-color":         "webkit moz",
	"border-start-style":         "webkit moz",
	"border-start-width":         "webkit moz",
	"box-align":                  "webkit moz ms",
	"box-direction":              "webkit moz ms",
	"box-flex":                   "webkit moz ms",
	"box-lines":                  "webkit ms",
	"box-ordinal-group":          "webkit moz ms",
	"box-orient":                 "webkit moz ms",
	"box-pack":                   "webkit moz ms",
	"box-shadow":                 "webkit moz",
	"box-sizing":                 "webkit moz",
	"column-count":               "webkit moz ms",
	"column-gap":                 "webkit moz ms",
	"column-rule":                "webkit moz ms",
	"column-rule-color":          "webkit moz ms",
	"column-rule-style":          "webkit moz ms",
	"column-rule-width":          "webkit moz ms",
	"column-width":               "webkit moz ms",
	"hyphens":                    "epub moz",
	"line-break":                 "webkit ms",
	"margin-end":                 "webkit moz",
	"margin-start":               "webkit moz",
	"marquee-speed":              "webkit wap",
	"marquee-style":              "webkit wap",
	"padding-end":                "webkit moz",
	"padding-start":              "webkit moz",
	"tab-size":                   "moz o",
	"text-size-adjust":           "webkit ms",
	"transform":                  "webkit moz ms o",
	"transform-origin":           "webkit moz ms o",
	"transition":                 "webkit moz o",
	"transition-delay":           "webkit moz o",
	"transition-duration":        "webkit moz o",
	"transition-property":        "webkit moz o",
	"transition-timing-function": "webkit moz o",
	"user-modify":                "webkit moz",
	"user-select":                "webkit moz ms",
	"word-break":                 "epub ms",
	"writing-mode":               "epub ms",
}

func initCompatibleVendorPrefixes(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	variations := map[string][]string{}
	owner := map[string]string{}
	for base, prefixes := range compatiblePrefixData {
		for _, p := range strings.Fields(prefixes) {
			form := "-" + p + "-" + base
			variations[base] = append(variations[base], form)
			owner[form] = base
		}
	}

	var (
		tracked        []*css.Event
		inKeyframes    bool
		keyframePrefix string
	)

	parser.AddListener(css.EventRuleStart, func(*css.Event) {
		tracked = nil
	})
	parser.AddListener(css.EventKeyframesStart, func(e *css.Event) {
		inKeyframes = true
		keyframePrefix = e.Prefix
	})
	parser.AddListener(css.EventKeyframesEnd, func(*css.Event) {
		inKeyframes = false
	})

	parser.AddListener(css.EventProperty, func(e *css.Event) {
		name := strings.ToLower(e.Property)
		if _, ok := owner[name]; !ok {
			return
		}
		// -moz-transform is fine on its own inside @-moz-keyframes
		if inKeyframes && keyframePrefix != "" && strings.HasPrefix(name, "-"+keyframePrefix+"-") {
			return
		}
		tracked = append(tracked, e)
	})

	parser.AddListener(css.EventRuleEnd, func(*css.Event) {
		if len(tracked) == 0 {
			return
		}

		type group struct {
			actual []string
			first  *css.Event
			seen   map[string]bool
		}
		groups := map[string]*group{}
		var order []string
		for _, e := range tracked {
			name := strings.ToLower(e.Property)
			base := owner[name]
			g := groups[base]
			if g == nil {
				g = &group{first: e, seen: map[string]bool{}}
				groups[base] = g
				order = append(order, base)
			}
			if !g.seen[name] {
				g.seen[name] = true
				g.actual = append(g.actual, name)
			}
		}

		for _, base := range order {
			g := groups[base]
			full := variations[base]
			if len(full) <= len(g.actual) {
				continue
			}
			var specified string
			switch len(g.actual) {
			case 1:
				specified = g.actual[0]
			case 2:
				specified = strings.Join(g.actual, " and ")
			default:
				specified = strings.Join(g.actual, ", ")
			}
			for _, form := range full {
				if g.seen[form] {
					continue
				}
				reporter.Report(fmt.Sprintf("The property %s is compatible with %s and should be included as well.", form, specified), g.first.Line, g.first.Col, rule)
			}
		}
	})
}

func initDuplicateProperties(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	props := map[string]string{}
	lastName := ""

	lint.RegisterRuleEvents(parser, lint.RuleListeners{
		Start: func(*css.Event) {
			props = map[string]string{}
			lastName = ""
		},
		Property: func(e *css.Event) {
			// hacked and clean declarations of a property count as the same name
			name := strings.ToLower(e.Property)
			value := e.Value.Text
			if prev, ok := props[name]; ok {
				switch {
				case prev == value:
					reporter.Report(fmt.Sprintf("Duplicate property '%s' found.", e.PropertyText()), e.Line, e.Col, rule)
				case lastName != name:
					reporter.Report(fmt.Sprintf("Ungrouped duplicate property '%s' found.", e.PropertyText()), e.Line, e.Col, rule)
				}
			}
			props[name] = value
			lastName = name
		},
	})
}

func initKnownProperties(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	parser.AddListener(css.EventProperty, func(e *css.Event) {
		if e.Invalid != "" {
			reporter.Report(e.Invalid, e.Line, e.Col, rule)
		}
	})
}

var vendorStripRE = regexp.MustCompile(`^-.*?-`)

func initOrderAlphabetical(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	var props []string

	lint.RegisterRuleEvents(parser, lint.RuleListeners{
		Start: func(*css.Event) {
			props = nil
		},
		Property: func(e *css.Event) {
			props = append(props, vendorStripRE.ReplaceAllString(strings.ToLower(e.Property), ""))
		},
		End: func(e *css.Event) {
			if !sort.StringsAreSorted(props) {
				reporter.Report("Rule doesn't have all its properties in alphabetical order.", e.Line, e.Col, rule)
			}
		},
	})
}

func initShorthand(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	lint.RegisterShorthandEvents(parser, lint.ShorthandListeners{
		End: func(scope *css.Event, longhands map[string][]*css.Event) {
			for _, sh := range lint.ShorthandNames() {
				events := longhands[sh]
				if len(events) == 0 {
					continue
				}
				seen := map[string]bool{}
				var firsts []*css.Event
				for _, e := range events {
					n := strings.ToLower(e.Property)
					if !seen[n] {
						seen[n] = true
						firsts = append(firsts, e)
					}
				}
				if len(seen) != len(lint.Longhands(sh)) {
					continue
				}
				for _, e := range firsts {
					reporter.Report(fmt.Sprintf("'%s' can be replaced by '%s'.", e.Property, sh), e.Line, e.Col, rule)
				}
			}
		},
	})
}

func initShorthandOverrides(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	lint.RegisterShorthandEvents(parser, lint.ShorthandListeners{
		Property: func(sh *css.Event, longhands []*css.Event) {
			seen := map[string]bool{}
			var names []string
			for _, e := range longhands {
				n := strings.ToLower(e.Property)
				if !seen[n] {
					seen[n] = true
					names = append(names, "'"+e.Property+"'")
				}
			}
			reporter.Report(fmt.Sprintf("'%s' overrides %s earlier in this rule.", sh.Property, strings.Join(names, ", ")), sh.Line, sh.Col, rule)
		},
	})
}

func initStarPropertyHack(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	parser.AddListener(css.EventProperty, func(e *css.Event) {
		if e.Hack == "*" {
			reporter.Report("Property with star prefix found.", e.Line, e.Col, rule)
		}
	})
}

func initUnderscorePropertyHack(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	parser.AddListener(css.EventProperty, func(e *css.Event) {
		if e.Hack == "_" {
			reporter.Report("Property with underscore prefix found.", e.Line, e.Col, rule)
		}
	})
}

// vendorPrefixedStandard maps prefixed properties to the standard property
// expected next to them. Note the old Gecko border radius corner naming.
var vendorPrefixedStandard = map[string]string{
	"-webkit-border-radius":              "border-radius",
	"-webkit-border-top-left-radius":     "border-top-left-radius",
	"-webkit-border-top-right-radius":    "border-top-right-radius",
	"-webkit-border-bottom-left-radius":  "border-bottom-left-radius",
	"-webkit-border-bottom-right-radius": "border-bottom-right-radius",

	"-o-border-radius":              "border-radius",
	"-o-border-top-left-radius":     "border-top-left-radius",
	"-o-border-top-right-radius":    "border-top-right-radius",
	"-o-border-bottom-left-radius":  "border-bottom-left-radius",
	"-o-border-bottom-right-radius": "border-bottom-right-radius",

	"-moz-border-radius":             "border-radius",
	"-moz-border-radius-topleft":     "border-top-left-radius",
	"-moz-border-radius-topright":    "border-top-right-radius",
	"-moz-border-radius-bottomleft":  "border-bottom-left-radius",
	"-moz-border-radius-bottomright": "border-bottom-right-radius",

	"-moz-column-count":    "column-count",
	"-webkit-column-count": "column-count",
	"-moz-column-gap":      "column-gap",
	"-webkit-column-gap":   "column-gap",

	"-webkit-box-shadow": "box-shadow",
	"-moz-box-shadow":    "box-shadow",

	"-webkit-transform": "transform",
	"-moz-transform":    "transform",
	"-o-transform":      "transform",
	"-ms-transform":     "transform",

	"-webkit-transition": "transition",
	"-moz-transition":    "transition",
	"-o-transition":      "transition",

	"-webkit-user-select": "user-select",
	"-moz-user-select":    "user-select",

	"-webkit-animation": "animation",
	"-moz-animation":    "animation",

	"-webkit-box-sizing": "box-sizing",
	"-moz-box-sizing":    "box-sizing",
}

func initVendorPrefix(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	type occurrence struct {
		event *css.Event
		pos   int
	}
	props := map[string][]occurrence{}
	var order []string
	num := 1

	lint.RegisterRuleEvents(parser, lint.RuleListeners{
		Start: func(*css.Event) {
			props = map[string][]occurrence{}
			order = nil
			num = 1
		},
		Property: func(e *css.Event) {
			name := strings.ToLower(e.Property)
			if _, ok := props[name]; !ok {
				order = append(order, name)
			}
			props[name] = append(props[name], occurrence{e, num})
			num++
		},
		End: func(*css.Event) {
			for _, name := range order {
				standard, ok := vendorPrefixedStandard[name]
				if !ok {
					continue
				}
				actual := props[name][0]
				if len(props[standard]) == 0 {
					reporter.Report(fmt.Sprintf("Missing standard property '%s' to go along with vendor-prefixed '%s'.", standard, name), actual.event.Line, actual.event.Col, rule)
				} else if props[standard][0].pos < actual.pos {
					reporter.Report(fmt.Sprintf("Standard property '%s' should come after vendor-prefixed property '%s'.", standard, name), actual.event.Line, actual.event.Col, rule)
				}
			}
		},
	})
}

func initZeroUnits(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	parser.AddListener(css.EventProperty, func(e *css.Event) {
		for _, pt := range e.Value.Parts {
			if !pt.Numeric || pt.Number != 0 || pt.Type == css.PartTime {
				continue
			}
			if pt.Units != "" || pt.Type == css.PartPercentage {
				reporter.Report("Values of 0 shouldn't have units specified.", pt.Line, pt.Col, rule)
			}
		}
	})
}
