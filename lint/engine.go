package lint

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"csslint/css"
)

// Report is the outcome of verifying one stylesheet.
type Report struct {
	Messages []Message      `json:"messages"`
	Stats    map[string]int `json:"stats"`

	Ruleset Ruleset      `json:"-"`
	Allow   AllowTable   `json:"-"`
	Ignore  IgnoreRanges `json:"-"`
}

// Engine verifies stylesheets against the registered rules. It keeps the
// selector cache of the previous run and reuses it while the effective
// overrides stay the same, repeated runs over edited versions of one sheet
// then skip re-parsing unchanged selectors.
type Engine struct {
	log *zap.Logger

	mu    sync.Mutex
	cache *css.SelectorCache
	last  overrides
}

// overrides is the tuple that decides selector cache retention between runs.
type overrides struct {
	ruleset Ruleset
	allow   AllowTable
	ignore  IgnoreRanges
}

func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log.Named("lint")}
}

// Verify runs every enabled rule over the stylesheet and returns the
// collected messages and statistics. A nil ruleset enables all registered
// rules as warnings. Parser errors are always reported as errors regardless
// of the ruleset.
func (e *Engine) Verify(text string, ruleset Ruleset) *Report {
	lines := splitLines(text)

	if ruleset == nil {
		ruleset = DefaultRuleset()
	} else {
		ruleset = ruleset.Clone()
	}

	allow := AllowTable{}
	var ignore IgnoreRanges
	if strings.Contains(strings.ToLower(text), "csslint") {
		allow, ignore = extractDirectives(lines)
		applyEmbeddedRuleset(text, ruleset)
	}

	ruleset["errors"] = SeverityError

	parser := css.NewParser(e.log)
	parser.UseSelectorCache(e.selectorCache(ruleset, allow, ignore))

	reporter := NewReporter(lines, ruleset, allow, ignore)

	ids := make([]string, 0, len(ruleset))
	for id := range ruleset {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if ruleset[id] == SeverityOff {
			continue
		}
		if rule := GetRule(id); rule != nil {
			e.initRule(rule, parser, reporter)
		}
	}

	if err := e.parse(parser, text); err != nil {
		reporter.Error("Fatal error, cannot continue: "+err.Error(), 0, 0, nil)
	}

	report := &Report{
		Messages: reporter.Messages,
		Stats:    reporter.Stats,
		Ruleset:  ruleset,
		Allow:    allow,
		Ignore:   ignore,
	}
	sortMessages(report.Messages)
	for i := range report.Messages {
		report.Messages[i].Message = expandAbbreviations(report.Messages[i].Message)
	}
	return report
}

// initRule isolates rule setup, one faulty rule must not take down the whole
// run.
func (e *Engine) initRule(rule *Rule, parser *css.Parser, reporter *Reporter) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn("rule initialization failed", zap.String("rule", rule.ID), zap.Any("reason", r))
		}
	}()
	rule.Init(rule, parser, reporter)
}

func (e *Engine) parse(parser *css.Parser, text string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	parser.Parse(text)
	return nil
}

// selectorCache returns the shared cache when the override tuple matches the
// previous run, otherwise a fresh one. Cached templates are keyed by selector
// text alone so reuse can never change results, dropping the cache on
// override changes just bounds its lifetime.
func (e *Engine) selectorCache(rs Ruleset, allow AllowTable, ignore IgnoreRanges) *css.SelectorCache {
	cur := overrides{ruleset: rs, allow: allow, ignore: ignore}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cache == nil || !reflect.DeepEqual(e.last, cur) {
		e.cache = css.NewSelectorCache()
	}
	e.last = cur
	return e.cache
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// sortMessages orders positional messages by line then column and moves
// rollups to the end. The sort is stable, ties and rollups keep their
// emission order.
func sortMessages(msgs []Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		a, b := msgs[i], msgs[j]
		if a.Rollup != b.Rollup {
			return !a.Rollup
		}
		if a.Rollup {
			return false
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Col < b.Col
	})
}

var abbrRE = regexp.MustCompile(`([<-])(int|len|num|pct|rel-hsl|rel-hwb|rel-lab|rel-lch|rel-rgb)\b`)

var abbrExpansions = map[string]string{
	"int":     "integer",
	"len":     "length",
	"num":     "number",
	"pct":     "percentage",
	"rel-hsl": "relative-hsl",
	"rel-hwb": "relative-hwb",
	"rel-lab": "relative-lab",
	"rel-lch": "relative-lch",
	"rel-rgb": "relative-rgb",
}

// expandAbbreviations rewrites value-type abbreviations in messages that
// quote grammar productions, "<int>" becomes "<integer>". Messages without a
// "<" pass through untouched.
func expandAbbreviations(msg string) string {
	if !strings.Contains(msg, "<") {
		return msg
	}
	return abbrRE.ReplaceAllStringFunc(msg, func(m string) string {
		return m[:1] + abbrExpansions[m[1:]]
	})
}
