package lint

import (
	"fmt"
	"sort"
	"sync"

	"csslint/css"
)

// Rule is a single check. Init wires the rule's listeners into the parser and
// reports findings through the reporter. A rule holds no state between runs,
// everything it accumulates lives in the closures Init creates.
type Rule struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Desc     string `json:"desc"`
	URL      string `json:"url,omitempty"`
	Browsers string `json:"browsers,omitempty"`

	Init func(rule *Rule, parser *css.Parser, reporter *Reporter) `json:"-"`
}

var (
	rulesMu  sync.RWMutex
	allRules = make(map[string]*Rule)
)

// RegisterRule adds a rule to the process-wide registry. Registering the same
// id twice panics, ids must be unique.
func RegisterRule(rule *Rule) {
	rulesMu.Lock()
	defer rulesMu.Unlock()
	if _, ok := allRules[rule.ID]; ok {
		panic(fmt.Sprintf("lint: rule %q registered twice", rule.ID))
	}
	allRules[rule.ID] = rule
}

// GetRule returns the registered rule with the given id, nil if unknown.
func GetRule(id string) *Rule {
	rulesMu.RLock()
	defer rulesMu.RUnlock()
	return allRules[id]
}

// Rules returns all registered rules sorted by id.
func Rules() []*Rule {
	rulesMu.RLock()
	defer rulesMu.RUnlock()

	ids := make([]string, 0, len(allRules))
	for id := range allRules {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	res := make([]*Rule, 0, len(ids))
	for _, id := range ids {
		res = append(res, allRules[id])
	}
	return res
}
