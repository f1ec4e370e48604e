package format

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"csslint/config"
	"csslint/lint"
)

// checkstyleFormatter builds the checkstyle XML document most java oriented
// CI systems understand.
type checkstyleFormatter struct{}

func (f *checkstyleFormatter) Name() string {
	return config.OutputFmtCheckstyle.String()
}

func (f *checkstyleFormatter) MarshalReport(results []Result) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)

	root := doc.CreateElement("checkstyle")
	for _, res := range results {
		if len(res.Report.Messages) == 0 {
			continue
		}
		file := root.CreateElement("file")
		file.CreateAttr("name", res.Name)
		for _, m := range res.Report.Messages {
			line, col := m.Line, m.Col
			if m.Rollup {
				line, col = 0, 0
			}
			e := file.CreateElement("error")
			e.CreateAttr("line", strconv.Itoa(line))
			e.CreateAttr("column", strconv.Itoa(col))
			e.CreateAttr("severity", m.Type)
			e.CreateAttr("message", m.Message)
			e.CreateAttr("source", auditSource(m.Rule))
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// auditSource derives the audit source id java tools expect, "net.csslint."
// followed by the rule name with spaces removed.
func auditSource(rule *lint.Rule) string {
	if rule == nil {
		return ""
	}
	return "net.csslint." + strings.ReplaceAll(rule.Name, " ", "")
}
