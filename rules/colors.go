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
		ID:       "fallback-colors",
		Name:     "Require fallback colors",
		Desc:     "For older browsers that don't support RGBA, HSL, or HSLA, provide a fallback color.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Require-fallback-colors",
		Browsers: "IE6,IE7,IE8",
		Init:     initFallbackColors,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "gradients",
		Name:     "Require all gradient definitions",
		Desc:     "When using a vendor-prefixed gradient, make sure to use them all.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Require-all-gradient-definitions",
		Browsers: "All",
		Init:     initGradients,
	})
	lint.RegisterRule(&lint.Rule{
		ID:       "duplicate-background-images",
		Name:     "Disallow duplicate background images",
		Desc:     "Every background-image should be unique. Use a common class for e.g. sprites.",
		URL:      "https://github.com/CSSLint/csslint/wiki/Disallow-duplicate-background-images",
		Browsers: "All",
		Init:     initDuplicateBackgroundImages,
	})
}

var colorFallbackProps = map[string]bool{
	"color":               true,
	"background":          true,
	"background-color":    true,
	"border":              true,
	"border-color":        true,
	"border-top":          true,
	"border-right":        true,
	"border-bottom":       true,
	"border-left":         true,
	"border-top-color":    true,
	"border-right-color":  true,
	"border-bottom-color": true,
	"border-left-color":   true,
}

var colorFunctionNameRE = regexp.MustCompile(`([^)]+)\(`)

func initFallbackColors(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	var (
		lastName   string
		lastCompat bool
	)

	lint.RegisterRuleEvents(parser, lint.RuleListeners{
		Start: func(*css.Event) {
			lastName = ""
			lastCompat = false
		},
		Property: func(e *css.Event) {
			name := strings.ToLower(e.PropertyText())
			if !colorFallbackProps[name] {
				lastName, lastCompat = name, false
				return
			}

			compat := false
			for _, pt := range e.Value.Parts {
				if pt.Type != css.PartColor {
					continue
				}
				if !pt.HasAlpha && !pt.HasHue {
					compat = true
					continue
				}
				colorType := ""
				if m := colorFunctionNameRE.FindStringSubmatch(pt.Text); m != nil {
					colorType = strings.ToUpper(m[1])
				}
				// the preceding declaration must be the compat color of the
				// same property
				if lastName != name || !lastCompat {
					reporter.Report(fmt.Sprintf("Fallback %s (hex or RGB) should precede %s %s.", name, colorType, name), e.Line, e.Col, rule)
				}
			}
			lastName, lastCompat = name, compat
		},
	})
}

var (
	prefixedGradientRE = regexp.MustCompile(`(?i)-(moz|o|webkit)(?:-(?:linear|radial))-gradient`)
	oldWebkitGradRE    = regexp.MustCompile(`(?i)-webkit-gradient`)
)

func initGradients(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	var gradients map[string]bool

	parser.AddListener(css.EventRuleStart, func(*css.Event) {
		gradients = map[string]bool{}
	})

	parser.AddListener(css.EventProperty, func(e *css.Event) {
		if gradients == nil {
			return
		}
		if m := prefixedGradientRE.FindStringSubmatch(e.Value.Text); m != nil {
			gradients[strings.ToLower(m[1])] = true
		} else if oldWebkitGradRE.MatchString(e.Value.Text) {
			gradients["oldWebkit"] = true
		}
	})

	parser.AddListener(css.EventRuleEnd, func(e *css.Event) {
		var missing []string
		if !gradients["moz"] {
			missing = append(missing, "Firefox 3.6+")
		}
		if !gradients["webkit"] {
			missing = append(missing, "Webkit (Safari 5+, Chrome)")
		}
		if !gradients["oldWebkit"] {
			missing = append(missing, "Old Webkit (Safari 4+, Chrome)")
		}
		if !gradients["o"] {
			missing = append(missing, "Opera 11.1+")
		}
		if len(missing) > 0 && len(missing) < 4 {
			reporter.Report(fmt.Sprintf("Missing %s for CSS gradient.", strings.Join(missing, ", ")), e.Line, e.Col, rule)
		}
	})
}

func initDuplicateBackgroundImages(rule *lint.Rule, parser *css.Parser, reporter *lint.Reporter) {
	first := map[string]*css.Event{}

	parser.AddListener(css.EventProperty, func(e *css.Event) {
		if !strings.Contains(strings.ToLower(e.PropertyText()), "background") {
			return
		}
		for _, pt := range e.Value.Parts {
			if pt.Type != css.PartURI {
				continue
			}
			if prev, ok := first[pt.URI]; ok {
				reporter.Report(fmt.Sprintf("Background image '%s' was used multiple times, first declared at line %d, col %d.", pt.URI, prev.Line, prev.Col), e.Line, e.Col, rule)
			} else {
				first[pt.URI] = e
			}
		}
	})
}
