package format

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"csslint/config"
)

// templateFormatter executes a user supplied template over the results. The
// template sees the full []Result slice and the sprig function map.
type templateFormatter struct {
	tmpl *template.Template
}

func newTemplateFormatter(text string) (*templateFormatter, error) {
	if text == "" {
		return nil, errors.New("template format requires a template, set lint.output_template or use --template")
	}

	tmpl, err := template.New(string(config.OutputTemplateFieldName)).Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("unable to parse output template: %w", err)
	}
	return &templateFormatter{tmpl: tmpl}, nil
}

func (f *templateFormatter) Name() string {
	return config.OutputFmtTemplate.String()
}

func (f *templateFormatter) MarshalReport(results []Result) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := f.tmpl.Execute(buf, results); err != nil {
		return nil, fmt.Errorf("unable to execute output template: %w", err)
	}
	return buf.Bytes(), nil
}
