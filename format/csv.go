package format

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"csslint/config"
)

// csvFormatter writes one record per finding with a fixed header. Rollup
// findings have no position, their line and char fields stay empty.
type csvFormatter struct{}

func (f *csvFormatter) Name() string {
	return config.OutputFmtCsv.String()
}

func (f *csvFormatter) MarshalReport(results []Result) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"file", "line", "char", "severity", "reason", "identifier"}); err != nil {
		return nil, err
	}
	for _, res := range results {
		for _, m := range res.Report.Messages {
			var line, col string
			if !m.Rollup {
				line = strconv.Itoa(m.Line)
				col = strconv.Itoa(m.Col)
			}
			if err := w.Write([]string{res.Name, line, col, m.Type, m.Message, m.RuleID}); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
