package lint

import (
	"sort"
	"sync"
)

// shorthandDefs maps each shorthand property to the longhands it expands to.
// Only direct expansions are listed, border does not claim border-top-color.
var shorthandDefs = map[string][]string{
	"animation":       {"animation-name", "animation-duration", "animation-timing-function", "animation-delay", "animation-iteration-count", "animation-direction", "animation-fill-mode", "animation-play-state"},
	"background":      {"background-image", "background-position", "background-size", "background-repeat", "background-origin", "background-clip", "background-attachment", "background-color"},
	"border":          {"border-width", "border-style", "border-color"},
	"border-bottom":   {"border-bottom-width", "border-bottom-style", "border-bottom-color"},
	"border-color":    {"border-top-color", "border-right-color", "border-bottom-color", "border-left-color"},
	"border-image":    {"border-image-source", "border-image-slice", "border-image-width", "border-image-outset", "border-image-repeat"},
	"border-left":     {"border-left-width", "border-left-style", "border-left-color"},
	"border-radius":   {"border-top-left-radius", "border-top-right-radius", "border-bottom-right-radius", "border-bottom-left-radius"},
	"border-right":    {"border-right-width", "border-right-style", "border-right-color"},
	"border-style":    {"border-top-style", "border-right-style", "border-bottom-style", "border-left-style"},
	"border-top":      {"border-top-width", "border-top-style", "border-top-color"},
	"border-width":    {"border-top-width", "border-right-width", "border-bottom-width", "border-left-width"},
	"column-rule":     {"column-rule-width", "column-rule-style", "column-rule-color"},
	"columns":         {"column-width", "column-count"},
	"flex":            {"flex-grow", "flex-shrink", "flex-basis"},
	"flex-flow":       {"flex-direction", "flex-wrap"},
	"font":            {"font-style", "font-variant", "font-weight", "font-size", "line-height", "font-family"},
	"gap":             {"row-gap", "column-gap"},
	"grid-template":   {"grid-template-rows", "grid-template-columns", "grid-template-areas"},
	"inset":           {"top", "right", "bottom", "left"},
	"list-style":      {"list-style-type", "list-style-position", "list-style-image"},
	"margin":          {"margin-top", "margin-right", "margin-bottom", "margin-left"},
	"outline":         {"outline-width", "outline-style", "outline-color"},
	"overflow":        {"overflow-x", "overflow-y"},
	"padding":         {"padding-top", "padding-right", "padding-bottom", "padding-left"},
	"text-decoration": {"text-decoration-line", "text-decoration-style", "text-decoration-color"},
	"transition":      {"transition-property", "transition-duration", "transition-timing-function", "transition-delay"},
}

var (
	shorthandOnce sync.Once
	longhandIndex map[string][]string
)

// ShorthandNames returns every known shorthand property sorted by name.
func ShorthandNames() []string {
	names := make([]string, 0, len(shorthandDefs))
	for n := range shorthandDefs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Longhands returns the longhand properties a shorthand expands to, nil for
// properties that are not shorthands.
func Longhands(shorthand string) []string {
	return shorthandDefs[shorthand]
}

// longhandOwners returns the shorthands that expand to the named longhand.
// The reverse index is built once, in sorted shorthand order, so owner lists
// are deterministic.
func longhandOwners(name string) []string {
	shorthandOnce.Do(func() {
		longhandIndex = make(map[string][]string)
		for _, sh := range ShorthandNames() {
			for _, lh := range shorthandDefs[sh] {
				longhandIndex[lh] = append(longhandIndex[lh], sh)
			}
		}
	})
	return longhandIndex[name]
}
