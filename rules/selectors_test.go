package rules_test

import (
	"testing"

	"csslint/lint"
)

func TestAdjoiningClasses(t *testing.T) {
	report := verify(t, ".foo.bar { color: red; }", "adjoining-classes")
	msgs := wantMessages(t, report, "adjoining-classes", "Adjoining classes: .foo.bar")
	wantPosition(t, msgs[0], 1, 1)

	report = verify(t, ".foo .bar { color: red; }", "adjoining-classes")
	wantMessages(t, report, "adjoining-classes")
}

func TestIDsSingle(t *testing.T) {
	report := verify(t, "#nav { color: red; }", "ids")
	msgs := wantMessages(t, report, "ids", "Don't use Id in selector.")
	wantPosition(t, msgs[0], 1, 1)
}

func TestIDsMultiple(t *testing.T) {
	report := verify(t, "#head #nav { color: red; }", "ids")
	wantMessages(t, report, "ids", "2 Ids in selector, really?")
}

func TestIDsSeverityError(t *testing.T) {
	report := lint.NewEngine(nil).Verify("a#x { color: red; }", lint.Ruleset{"ids": lint.SeverityError})
	msgs := wantMessages(t, report, "ids", "Don't use Id in selector.")
	if msgs[0].Type != "error" {
		t.Errorf("expected type error, got %q", msgs[0].Type)
	}
}

func TestOverqualifiedElementsID(t *testing.T) {
	report := verify(t, "a#foo { color: red; }", "overqualified-elements")
	wantMessages(t, report, "overqualified-elements",
		"Element (a#foo) is overqualified, just use #foo without element name.")
}

func TestOverqualifiedElementsClassSingleUse(t *testing.T) {
	report := verify(t, "li.active { color: red; }", "overqualified-elements")
	wantMessages(t, report, "overqualified-elements",
		"Element (li.active) is overqualified, just use .active without element name.")
}

func TestOverqualifiedElementsClassReused(t *testing.T) {
	report := verify(t, "li.active { color: red; }\np.active { color: blue; }", "overqualified-elements")
	wantMessages(t, report, "overqualified-elements")
}

func TestQualifiedHeadings(t *testing.T) {
	report := verify(t, ".box h3 { color: red; }", "qualified-headings")
	msgs := wantMessages(t, report, "qualified-headings", "Heading (h3) should not be qualified.")
	wantPosition(t, msgs[0], 1, 6)

	report = verify(t, "h3 { color: red; }", "qualified-headings")
	wantMessages(t, report, "qualified-headings")
}

func TestRegexSelectors(t *testing.T) {
	report := verify(t, "a[class*=foo] { color: red; }", "regex-selectors")
	wantMessages(t, report, "regex-selectors", "Attribute selectors with *= are slow!")

	report = verify(t, "a[class=foo] { color: red; }", "regex-selectors")
	wantMessages(t, report, "regex-selectors")
}

func TestSelectorNewline(t *testing.T) {
	report := verify(t, ".a\n.b { color: red; }", "selector-newline")
	msgs := wantMessages(t, report, "selector-newline", "newline character found in selector (forgot a comma?)")
	wantPosition(t, msgs[0], 1, 1)
}

func TestSelectorNewlineGroupsAllowed(t *testing.T) {
	report := verify(t, ".a,\n.b { color: red; }", "selector-newline")
	wantMessages(t, report, "selector-newline")
}

func TestUniqueHeadings(t *testing.T) {
	report := verify(t, "h3 { color: red; }\nh3 { color: blue; }", "unique-headings")

	msgs := wantMessages(t, report, "unique-headings",
		"Heading (h3) has already been defined.",
		"You have 2 h3s defined in this stylesheet.")
	wantPosition(t, msgs[0], 2, 1)
	if !msgs[1].Rollup {
		t.Error("expected the summary to be a rollup")
	}
}

func TestUniqueHeadingsPseudoAllowed(t *testing.T) {
	report := verify(t, "h3 { color: red; }\nh3:hover { color: blue; }", "unique-headings")
	wantMessages(t, report, "unique-headings")
}

func TestUniversalSelector(t *testing.T) {
	report := verify(t, "* { color: red; }", "universal-selector")
	wantMessages(t, report, "universal-selector", "The universal selector (*) is known to be slow.")

	report = verify(t, ".list * { color: red; }", "universal-selector")
	wantMessages(t, report, "universal-selector", "The universal selector (*) is known to be slow.")

	report = verify(t, "* .list { color: red; }", "universal-selector")
	wantMessages(t, report, "universal-selector")
}

func TestUnqualifiedAttributes(t *testing.T) {
	report := verify(t, "[type=text] { color: red; }", "unqualified-attributes")
	wantMessages(t, report, "unqualified-attributes", "Unqualified attribute selectors are known to be slow.")

	report = verify(t, ".input[type=text] { color: red; }", "unqualified-attributes")
	wantMessages(t, report, "unqualified-attributes")
}
