package format

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"csslint/config"
)

// junitFormatter builds a JUnit XML document with one testsuite per file.
// JUnit has no warning class, warnings become failures and errors become
// errors. Rollup findings carry no position and are not representable as
// test cases, they are left out and the suite counters only cover what was
// emitted.
type junitFormatter struct{}

func (f *junitFormatter) Name() string {
	return config.OutputFmtJunit.String()
}

func (f *junitFormatter) MarshalReport(results []Result) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)

	root := doc.CreateElement("testsuites")
	for _, res := range results {
		if len(res.Report.Messages) == 0 {
			continue
		}

		suite := root.CreateElement("testsuite")
		suite.CreateAttr("time", "0")
		suite.CreateAttr("package", "net.csslint")
		suite.CreateAttr("name", res.Name)

		var tests, failures, errors int
		for _, m := range res.Report.Messages {
			if m.Rollup {
				continue
			}
			tests++

			kind := "failure"
			if m.Type == "error" {
				kind = "error"
				errors++
			} else {
				failures++
			}

			tc := suite.CreateElement("testcase")
			tc.CreateAttr("time", "0")
			tc.CreateAttr("name", auditSource(m.Rule))
			detail := tc.CreateElement(kind)
			detail.CreateAttr("message", m.Message)
			detail.CreateText(fmt.Sprintf("%d:%d:%s", m.Line, m.Col, m.Evidence))
		}
		suite.CreateAttr("tests", strconv.Itoa(tests))
		suite.CreateAttr("skipped", "0")
		suite.CreateAttr("errors", strconv.Itoa(errors))
		suite.CreateAttr("failures", strconv.Itoa(failures))
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
