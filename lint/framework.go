package lint

import (
	"strings"

	"csslint/css"
)

// RuleListeners bundles the callbacks a rule cares about. Nil callbacks are
// not registered.
type RuleListeners struct {
	Start    func(*css.Event)
	Property func(*css.Event)
	End      func(*css.Event)
}

// Declaration-bearing scopes. Conditional at-rules are deliberately missing,
// they only wrap these scopes and listening on both would fire twice per
// block.
var scopeEvents = [...][2]css.EventType{
	{css.EventRuleStart, css.EventRuleEnd},
	{css.EventFontFaceStart, css.EventFontFaceEnd},
	{css.EventPageStart, css.EventPageEnd},
	{css.EventPageMarginStart, css.EventPageMarginEnd},
	{css.EventKeyframeRuleStart, css.EventKeyframeRuleEnd},
	{css.EventViewportStart, css.EventViewportEnd},
}

// RegisterRuleEvents subscribes the listeners to every declaration-bearing
// scope plus the property events inside them.
func RegisterRuleEvents(parser *css.Parser, l RuleListeners) {
	for _, pair := range scopeEvents {
		if l.Start != nil {
			parser.AddListener(pair[0], l.Start)
		}
		if l.End != nil {
			parser.AddListener(pair[1], l.End)
		}
	}
	if l.Property != nil {
		parser.AddListener(css.EventProperty, l.Property)
	}
}

// ShorthandListeners receive shorthand analysis per declaration-bearing
// scope. Property fires when a shorthand declaration follows longhands it
// expands to, End fires when the scope closes with every longhand seen in it
// bucketed under its owning shorthands.
type ShorthandListeners struct {
	Property func(shorthand *css.Event, longhands []*css.Event)
	End      func(scope *css.Event, longhands map[string][]*css.Event)
}

// RegisterShorthandEvents tracks longhand declarations per scope and feeds
// them to the listeners. Each registration keeps its own scope stack.
func RegisterShorthandEvents(parser *css.Parser, l ShorthandListeners) {
	var stack []map[string][]*css.Event

	RegisterRuleEvents(parser, RuleListeners{
		Start: func(*css.Event) {
			stack = append(stack, map[string][]*css.Event{})
		},
		Property: func(e *css.Event) {
			if len(stack) == 0 || e.InParens {
				return
			}
			seen := stack[len(stack)-1]
			name := strings.ToLower(e.Property)
			for _, owner := range longhandOwners(name) {
				seen[owner] = append(seen[owner], e)
			}
			if _, ok := shorthandDefs[name]; ok && l.Property != nil {
				if over := seen[name]; len(over) > 0 {
					l.Property(e, over)
					delete(seen, name)
				}
			}
		},
		End: func(e *css.Event) {
			if len(stack) == 0 {
				return
			}
			seen := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if l.End != nil {
				l.End(e, seen)
			}
		},
	})
}
