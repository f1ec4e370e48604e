package format_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/beevik/etree"

	"csslint/config"
	"csslint/format"
	"csslint/lint"
)

var (
	idsRule    = &lint.Rule{ID: "ids", Name: "Disallow IDs in selectors", Desc: "Selectors should not contain IDs."}
	floatsRule = &lint.Rule{ID: "floats", Name: "Disallow too many floats", Desc: "This rule tests if the float property is used too many times"}
)

func sampleResults() []format.Result {
	return []format.Result{
		{
			Name: "styles/site.css",
			Report: &lint.Report{
				Messages: []lint.Message{
					{
						Type:     "warning",
						Line:     1,
						Col:      1,
						Message:  "Don't use IDs in selectors.",
						Evidence: "#header { float: left; }",
						RuleID:   "ids",
						Rule:     idsRule,
					},
					{
						Type:    "warning",
						Message: "Too many floats (12), you're probably using them for layout. Consider using a grid system instead.",
						Rollup:  true,
						RuleID:  "floats",
						Rule:    floatsRule,
					},
				},
				Stats: map[string]int{"floats": 12, "rule-count": 2},
			},
		},
		{
			Name:   "clean.css",
			Report: &lint.Report{Messages: []lint.Message{}, Stats: map[string]int{}},
		},
	}
}

func marshal(t *testing.T, out config.OutputFmt, opts format.Options, results []format.Result) string {
	t.Helper()

	f, err := format.New(out, opts)
	if err != nil {
		t.Fatalf("New(%s) error = %v", out, err)
	}
	data, err := f.MarshalReport(results)
	if err != nil {
		t.Fatalf("MarshalReport() error = %v", err)
	}
	return string(data)
}

func TestTextFormat(t *testing.T) {
	got := marshal(t, config.OutputFmtText, format.Options{}, sampleResults())

	expected := "\n\ncsslint: There are 2 problems in styles/site.css." +
		"\n\nsite.css" +
		"\n1: warning at line 1, col 1" +
		"\nDon't use IDs in selectors." +
		"\n#header { float: left; }" +
		"\n\nsite.css" +
		"\n2: warning" +
		"\nToo many floats (12), you're probably using them for layout. Consider using a grid system instead." +
		"\n\ncsslint: No errors in clean.css."

	if got != expected {
		t.Errorf("text output = %q, want %q", got, expected)
	}
}

func TestTextFormat_SingleProblem(t *testing.T) {
	results := sampleResults()[:1]
	results[0].Report.Messages = results[0].Report.Messages[:1]

	got := marshal(t, config.OutputFmtText, format.Options{}, results)

	if !strings.Contains(got, "There is 1 problem in styles/site.css.") {
		t.Errorf("text output = %q, want singular problem count", got)
	}
}

func TestTextFormat_Quiet(t *testing.T) {
	got := marshal(t, config.OutputFmtText, format.Options{Quiet: true}, sampleResults())

	if strings.Contains(got, "No errors") {
		t.Errorf("quiet text output still mentions clean files: %q", got)
	}
	if !strings.Contains(got, "There are 2 problems") {
		t.Errorf("quiet text output lost findings: %q", got)
	}
}

func TestTextFormat_Color(t *testing.T) {
	results := sampleResults()
	results[0].Report.Messages[0].Type = "error"

	got := marshal(t, config.OutputFmtText, format.Options{Color: true}, results)

	if !strings.Contains(got, "\x1b[31merror\x1b[0m") {
		t.Errorf("colored output missing red error severity: %q", got)
	}
	if !strings.Contains(got, "\x1b[33mwarning\x1b[0m") {
		t.Errorf("colored output missing yellow warning severity: %q", got)
	}
}

func TestCompactFormat(t *testing.T) {
	got := marshal(t, config.OutputFmtCompact, format.Options{}, sampleResults())

	expected := "styles/site.css: line 1, col 1, Warning - Don't use IDs in selectors. (ids)\n" +
		"styles/site.css: Warning - Too many floats (12), you're probably using them for layout. Consider using a grid system instead. (floats)\n" +
		"clean.css: Lint Free!\n"

	if got != expected {
		t.Errorf("compact output = %q, want %q", got, expected)
	}
}

func TestCompactFormat_Quiet(t *testing.T) {
	got := marshal(t, config.OutputFmtCompact, format.Options{Quiet: true}, sampleResults())

	if strings.Contains(got, "Lint Free!") {
		t.Errorf("quiet compact output still mentions clean files: %q", got)
	}
}

func TestJSONFormat(t *testing.T) {
	got := marshal(t, config.OutputFmtJson, format.Options{}, sampleResults())

	var decoded []struct {
		Filename string         `json:"filename"`
		Messages []lint.Message `json:"messages"`
		Stats    map[string]int `json:"stats"`
	}
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("json output does not parse: %v", err)
	}

	if len(decoded) != 2 {
		t.Fatalf("decoded %d file reports, want 2", len(decoded))
	}
	if decoded[0].Filename != "styles/site.css" {
		t.Errorf("filename = %s, want styles/site.css", decoded[0].Filename)
	}
	if len(decoded[0].Messages) != 2 {
		t.Errorf("decoded %d messages, want 2", len(decoded[0].Messages))
	}
	if decoded[0].Messages[0].RuleID != "ids" {
		t.Errorf("rule id = %s, want ids", decoded[0].Messages[0].RuleID)
	}
	if decoded[0].Stats["floats"] != 12 {
		t.Errorf("floats stat = %d, want 12", decoded[0].Stats["floats"])
	}
	if len(decoded[1].Messages) != 0 {
		t.Errorf("clean file decoded %d messages, want 0", len(decoded[1].Messages))
	}
}

func TestCSVFormat(t *testing.T) {
	got := marshal(t, config.OutputFmtCsv, format.Options{}, sampleResults())

	records, err := csv.NewReader(bytes.NewReader([]byte(got))).ReadAll()
	if err != nil {
		t.Fatalf("csv output does not parse: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("decoded %d records, want 3 (header + 2 findings)", len(records))
	}

	header := []string{"file", "line", "char", "severity", "reason", "identifier"}
	for i, want := range header {
		if records[0][i] != want {
			t.Errorf("header[%d] = %s, want %s", i, records[0][i], want)
		}
	}

	want := []string{"styles/site.css", "1", "1", "warning", "Don't use IDs in selectors.", "ids"}
	for i, w := range want {
		if records[1][i] != w {
			t.Errorf("record[1][%d] = %s, want %s", i, records[1][i], w)
		}
	}

	// rollup finding has no position
	if records[2][1] != "" || records[2][2] != "" {
		t.Errorf("rollup record position = %q/%q, want empty", records[2][1], records[2][2])
	}
	if records[2][5] != "floats" {
		t.Errorf("rollup identifier = %s, want floats", records[2][5])
	}
}

func TestCheckstyleFormat(t *testing.T) {
	got := marshal(t, config.OutputFmtCheckstyle, format.Options{}, sampleResults())

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes([]byte(got)); err != nil {
		t.Fatalf("checkstyle output does not parse: %v", err)
	}

	root := doc.SelectElement("checkstyle")
	if root == nil {
		t.Fatal("checkstyle root element not found")
	}

	files := root.SelectElements("file")
	if len(files) != 1 {
		t.Fatalf("found %d file elements, want 1 (clean file omitted)", len(files))
	}
	if name := files[0].SelectAttrValue("name", ""); name != "styles/site.css" {
		t.Errorf("file name = %s, want styles/site.css", name)
	}

	errs := files[0].SelectElements("error")
	if len(errs) != 2 {
		t.Fatalf("found %d error elements, want 2", len(errs))
	}

	first := errs[0]
	if line := first.SelectAttrValue("line", ""); line != "1" {
		t.Errorf("line = %s, want 1", line)
	}
	if col := first.SelectAttrValue("column", ""); col != "1" {
		t.Errorf("column = %s, want 1", col)
	}
	if sev := first.SelectAttrValue("severity", ""); sev != "warning" {
		t.Errorf("severity = %s, want warning", sev)
	}
	if src := first.SelectAttrValue("source", ""); src != "net.csslint.DisallowIDsinselectors" {
		t.Errorf("source = %s, want net.csslint.DisallowIDsinselectors", src)
	}

	rollup := errs[1]
	if line := rollup.SelectAttrValue("line", ""); line != "0" {
		t.Errorf("rollup line = %s, want 0", line)
	}
	if col := rollup.SelectAttrValue("column", ""); col != "0" {
		t.Errorf("rollup column = %s, want 0", col)
	}
}

func TestJunitFormat(t *testing.T) {
	results := sampleResults()
	results[0].Report.Messages = append(results[0].Report.Messages, lint.Message{
		Type:     "error",
		Line:     2,
		Col:      3,
		Message:  "Don't use IDs in selectors.",
		Evidence: "#footer { }",
		RuleID:   "ids",
		Rule:     idsRule,
	})

	got := marshal(t, config.OutputFmtJunit, format.Options{}, results)

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes([]byte(got)); err != nil {
		t.Fatalf("junit output does not parse: %v", err)
	}

	root := doc.SelectElement("testsuites")
	if root == nil {
		t.Fatal("testsuites root element not found")
	}

	suites := root.SelectElements("testsuite")
	if len(suites) != 1 {
		t.Fatalf("found %d testsuite elements, want 1 (clean file omitted)", len(suites))
	}

	suite := suites[0]
	if name := suite.SelectAttrValue("name", ""); name != "styles/site.css" {
		t.Errorf("suite name = %s, want styles/site.css", name)
	}
	// rollup finding is not representable as a test case
	if tests := suite.SelectAttrValue("tests", ""); tests != "2" {
		t.Errorf("tests = %s, want 2", tests)
	}
	if failures := suite.SelectAttrValue("failures", ""); failures != "1" {
		t.Errorf("failures = %s, want 1", failures)
	}
	if errs := suite.SelectAttrValue("errors", ""); errs != "1" {
		t.Errorf("errors = %s, want 1", errs)
	}

	cases := suite.SelectElements("testcase")
	if len(cases) != 2 {
		t.Fatalf("found %d testcase elements, want 2", len(cases))
	}

	failure := cases[0].SelectElement("failure")
	if failure == nil {
		t.Fatal("warning finding should produce a failure element")
	}
	if msg := failure.SelectAttrValue("message", ""); msg != "Don't use IDs in selectors." {
		t.Errorf("failure message = %s, want the finding text", msg)
	}
	if text := failure.Text(); text != "1:1:#header { float: left; }" {
		t.Errorf("failure text = %q, want position and evidence", text)
	}

	if cases[1].SelectElement("error") == nil {
		t.Error("error finding should produce an error element")
	}
}

func TestTemplateFormat(t *testing.T) {
	opts := format.Options{Template: "{{range .}}{{.Name | upper}}:{{len .Report.Messages}};{{end}}"}
	got := marshal(t, config.OutputFmtTemplate, opts, sampleResults())

	expected := "STYLES/SITE.CSS:2;CLEAN.CSS:0;"
	if got != expected {
		t.Errorf("template output = %q, want %q", got, expected)
	}
}

func TestTemplateFormat_MissingTemplate(t *testing.T) {
	if _, err := format.New(config.OutputFmtTemplate, format.Options{}); err == nil {
		t.Error("Expected error for template format without a template")
	}
}

func TestTemplateFormat_ParseError(t *testing.T) {
	if _, err := format.New(config.OutputFmtTemplate, format.Options{Template: "{{range ."}); err == nil {
		t.Error("Expected error for malformed template")
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	if _, err := format.New(config.OutputFmt(99), format.Options{}); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestFormatterNames(t *testing.T) {
	for _, out := range []config.OutputFmt{
		config.OutputFmtText,
		config.OutputFmtCompact,
		config.OutputFmtJson,
		config.OutputFmtCsv,
		config.OutputFmtCheckstyle,
		config.OutputFmtJunit,
	} {
		f, err := format.New(out, format.Options{})
		if err != nil {
			t.Fatalf("New(%s) error = %v", out, err)
		}
		if f.Name() != out.String() {
			t.Errorf("Name() = %s, want %s", f.Name(), out)
		}
	}

	f, err := format.New(config.OutputFmtTemplate, format.Options{Template: "{{len .}}"})
	if err != nil {
		t.Fatalf("New(template) error = %v", err)
	}
	if f.Name() != config.OutputFmtTemplate.String() {
		t.Errorf("Name() = %s, want %s", f.Name(), config.OutputFmtTemplate)
	}
}
