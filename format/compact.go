package format

import (
	"bytes"
	"fmt"
	"strings"

	"csslint/config"
)

// compactFormatter writes one grep friendly line per finding.
type compactFormatter struct {
	opts Options
}

func (f *compactFormatter) Name() string {
	return config.OutputFmtCompact.String()
}

func (f *compactFormatter) MarshalReport(results []Result) ([]byte, error) {
	var buf bytes.Buffer
	for _, res := range results {
		msgs := res.Report.Messages
		if len(msgs) == 0 {
			if !f.opts.Quiet {
				fmt.Fprintf(&buf, "%s: Lint Free!\n", res.Name)
			}
			continue
		}
		for _, m := range msgs {
			if m.Rollup {
				fmt.Fprintf(&buf, "%s: %s - %s (%s)\n", res.Name, capitalize(m.Type), m.Message, m.RuleID)
			} else {
				fmt.Fprintf(&buf, "%s: line %d, col %d, %s - %s (%s)\n", res.Name, m.Line, m.Col, capitalize(m.Type), m.Message, m.RuleID)
			}
		}
	}
	return buf.Bytes(), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
