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
		ID:       "box-model",
		Name:     "Beware of broken box size",
		Desc:     "Don't use width or height when using padding or border.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Beware-of-box-model-size",
		Browsers: "All",
		Init:     initBoxModel,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "box-sizing",
		Name:     "Disallow use of box-sizing",
		Desc:     "The box-sizing property isn't supported in IE6 and IE7.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Disallow-box-sizing",
		Browsers: "IE6,IE7",
		Init:     initBoxSizing,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "display-property-grouping",
		Name:     "Require properties appropriate for display",
		Desc:     "Certain properties shouldn't be used with certain display property values.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Require-properties-appropriate-for-display",
		Browsers: "All",
		Init:     initDisplayPropertyGrouping,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "outline-none",
		Name:     "Disallow outline: none",
		Desc:     "Use of outline: none or outline: 0 should be limited to :focus rules.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Disallow-outline%3Anone",
		Browsers: "All",
		Init:     initOutlineNone,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "text-indent",
		Name:     "Disallow negative text-indent",
		Desc:     "Checks for text indent less than -99px.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Disallow-negative-text-indent",
		Browsers: "All",
		Init:     initTextIndent,
	})
}

var (
	boxWidthProps = []string{"border", "border-left", "border-right", "padding", "padding-left", "padding-right"}

	boxHeightProps = []string{"border", "border-bottom", "border-top", "padding", "padding-bottom", "padding-top"}

	boxZeroValueRE  = regexp.MustCompile(`^0\S*$`)
	boxSizePrefixRE = regexp.MustCompile(`(?i)^(width|height)`)
)

func initBoxModel(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	edged := map[string]bool{}
	for _, p := range boxWidthProps {
		edged[p] = true
	}
	for _, p := range boxHeightProps {
		edged[p] = true
	}

	tracked := map[string]*css.Event{}
	sized := map[string]bool{}
	boxSizing := false

	zeroPart := func(pt *css.ValuePart) bool {
		return pt.Numeric && pt.Number == 0
	}

	check := func(dimension string, props []string, sidePart int) {
		if !sized[dimension] {
			return
		}
		for _, prop := range props {
			e, ok := tracked[prop]
			if !ok {
				continue
			}
			// two-value padding with a zero on this axis doesn't change the
			// rendered size
			if prop == "padding" && len(e.Value.Parts) == 2 && zeroPart(e.Value.Parts[sidePart]) {
				continue
			}
			reporter.Report(fmt.Sprintf("Using %s with %s can sometimes make elements larger than you expect.", dimension, prop), e.Line, e.Col, rule)
		}
	}

	lint.RegisterRuleEvents(parser, lint.RuleListeners{
		Start: func(*css.Event) {
			tracked = map[string]*css.Event{}
			sized = map[string]bool{}
			boxSizing = false
		},
		Property: func(e *css.Event) {
			name := strings.ToLower(e.PropertyText())
			switch {
			case edged[name]:
				if !boxZeroValueRE.MatchString(e.Value.Text) && !(name == "border" && e.Value.Text == "none") {
					tracked[name] = e
				}
			case boxSizePrefixRE.MatchString(name):
				if len(e.Value.Parts) > 0 {
					if t := e.Value.Parts[0].Type; t == css.PartLength || t == css.PartPercentage {
						sized[name] = true
					}
				}
			case name == "box-sizing":
				boxSizing = true
			}
		},
		End: func(*css.Event) {
			if boxSizing {
				return
			}
			check("height", boxHeightProps, 0)
			check("width", boxWidthProps, 1)
		},
	})
}

func initBoxSizing(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	parser.AddListener(css.EventProperty, func(e *css.Event) {
		if strings.ToLower(e.PropertyText()) == "box-sizing" {
			reporter.Report("The box-sizing property isn't supported in IE6 and IE7.", e.Line, e.Col, rule)
		}
	})
}

// displayCheckProps are the properties examined per display value. A non
// empty entry exempts that value, float: none is fine anywhere.
var displayCheckProps = map[string]string{
	"display":        "",
	"float":          "none",
	"height":         "",
	"width":          "",
	"margin":         "",
	"margin-left":    "",
	"margin-right":   "",
	"margin-bottom":  "",
	"margin-top":     "",
	"padding":        "",
	"padding-left":   "",
	"padding-right":  "",
	"padding-bottom": "",
	"padding-top":    "",
	"vertical-align": "",
}

func initDisplayPropertyGrouping(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	props := map[string]*css.Event{}

	report := func(name, display, msg string) {
		e, ok := props[name]
		if !ok {
			return
		}
		if exempt := displayCheckProps[name]; exempt != "" && strings.ToLower(e.Value.Text) == exempt {
			return
		}
		if msg == "" {
			msg = fmt.Sprintf("%s can't be used with display: %s.", name, display)
		}
		reporter.Report(msg, e.Line, e.Col, rule)
	}

	lint.RegisterRuleEvents(parser, lint.RuleListeners{
		Start: func(*css.Event) {
			props = map[string]*css.Event{}
		},
		Property: func(e *css.Event) {
			name := strings.ToLower(e.PropertyText())
			if _, ok := displayCheckProps[name]; ok {
				props[name] = e
			}
		},
		End: func(*css.Event) {
			d, ok := props["display"]
			if !ok {
				return
			}
			display := d.Value.Text
			switch display {
			case "inline":
				report("height", display, "")
				report("width", display, "")
				report("margin", display, "")
				report("margin-top", display, "")
				report("margin-bottom", display, "")
				report("float", display, "display:inline has no effect on floated elements (but may be used to fix the IE6 double-margin bug).")
			case "block":
				report("vertical-align", display, "")
			case "inline-block":
				report("float", display, "")
			default:
				if strings.HasPrefix(display, "table-") {
					report("margin", display, "")
					report("margin-left", display, "")
					report("margin-right", display, "")
					report("margin-top", display, "")
					report("margin-bottom", display, "")
					report("float", display, "")
				}
			}
		},
	})
}

func initOutlineNone(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	type ruleState struct {
		event     *css.Event
		focus     bool
		propCount int
		outline   bool
	}
	var last *ruleState

	lint.RegisterRuleEvents(parser, lint.RuleListeners{
		Start: func(e *css.Event) {
			if len(e.Selectors) == 0 {
				last = nil
				return
			}
			focus := false
			for _, sel := range e.Selectors {
				if strings.Contains(strings.ToLower(sel.Text), ":focus") {
					focus = true
					break
				}
			}
			last = &ruleState{event: e, focus: focus}
		},
		Property: func(e *css.Event) {
			if last == nil {
				return
			}
			last.propCount++
			if strings.ToLower(e.PropertyText()) == "outline" && (e.Value.Text == "none" || e.Value.Text == "0") {
				last.outline = true
			}
		},
		End: func(*css.Event) {
			if last == nil || !last.outline {
				return
			}
			if !last.focus {
				reporter.Report("Outlines should only be modified using :focus.", last.event.Line, last.event.Col, rule)
			} else if last.propCount == 1 {
				reporter.Report("Outlines shouldn't be hidden unless other visual changes are made.", last.event.Line, last.event.Col, rule)
			}
		},
	})
}

func initTextIndent(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	var textIndent *css.Event
	direction := "inherit"

	reset := func(*css.Event) {
		textIndent = nil
		direction = "inherit"
	}
	check := func(*css.Event) {
		if textIndent != nil && direction != "ltr" {
			reporter.Report("Negative text-indent doesn't work well with RTL. If you use text-indent for image replacement explicitly set direction for that item to ltr.", textIndent.Line, textIndent.Col, rule)
		}
	}

	parser.AddListener(css.EventRuleStart, reset)
	parser.AddListener(css.EventFontFaceStart, reset)

	parser.AddListener(css.EventProperty, func(e *css.Event) {
		name := strings.ToLower(e.PropertyText())
		if name == "text-indent" && len(e.Value.Parts) > 0 && e.Value.Parts[0].Numeric && e.Value.Parts[0].Number < -99 {
			textIndent = e
		} else if name == "direction" && e.Value.Text == "ltr" {
			direction = "ltr"
		}
	})

	parser.AddListener(css.EventRuleEnd, check)
	parser.AddListener(css.EventFontFaceEnd, check)
}
