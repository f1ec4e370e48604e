package lint

// Message is a single finding produced during verification. Rollup messages
// summarize the whole stylesheet and carry no position.
type Message struct {
	Type     string `json:"type"`
	Line     int    `json:"line"`
	Col      int    `json:"col"`
	Message  string `json:"message"`
	Evidence string `json:"evidence"`
	Rollup   bool   `json:"rollup,omitempty"`
	RuleID   string `json:"rule"`
	Rule     *Rule  `json:"-"`
}
