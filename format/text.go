package format

import (
	"bytes"
	"fmt"
	"strings"

	"csslint/config"
)

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

// textFormatter writes the classic human readable report, a summary line per
// file followed by numbered findings with their evidence lines.
type textFormatter struct {
	opts Options
}

func (f *textFormatter) Name() string {
	return config.OutputFmtText.String()
}

func (f *textFormatter) MarshalReport(results []Result) ([]byte, error) {
	var buf bytes.Buffer
	for _, res := range results {
		f.formatResult(&buf, res)
	}
	return buf.Bytes(), nil
}

func (f *textFormatter) formatResult(buf *bytes.Buffer, res Result) {
	msgs := res.Report.Messages
	if len(msgs) == 0 {
		if !f.opts.Quiet {
			fmt.Fprintf(buf, "\n\ncsslint: No errors in %s.", res.Name)
		}
		return
	}

	problems := fmt.Sprintf("are %d problems", len(msgs))
	if len(msgs) == 1 {
		problems = "is 1 problem"
	}
	fmt.Fprintf(buf, "\n\ncsslint: There %s in %s.", problems, res.Name)

	short := shortName(res.Name)
	for i, m := range msgs {
		fmt.Fprintf(buf, "\n\n%s", short)
		if m.Rollup {
			fmt.Fprintf(buf, "\n%d: %s", i+1, f.severity(m.Type))
			fmt.Fprintf(buf, "\n%s", m.Message)
		} else {
			fmt.Fprintf(buf, "\n%d: %s at line %d, col %d", i+1, f.severity(m.Type), m.Line, m.Col)
			fmt.Fprintf(buf, "\n%s", m.Message)
			fmt.Fprintf(buf, "\n%s", m.Evidence)
		}
	}
}

func (f *textFormatter) severity(typ string) string {
	if !f.opts.Color {
		return typ
	}
	switch typ {
	case "error":
		return ansiRed + typ + ansiReset
	case "warning":
		return ansiYellow + typ + ansiReset
	}
	return typ
}

// shortName trims the directory part, the summary line already carries the
// full path.
func shortName(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		return name[i+1:]
	}
	return name
}
