// Package format renders lint reports in the supported output formats.
package format

import (
	"fmt"

	"csslint/config"
	"csslint/lint"
)

// Result pairs one linted input with its verification outcome. Name is the
// input path as the user referred to it, for archive members it includes the
// archive path.
type Result struct {
	Name   string
	Report *lint.Report
}

// Formatter renders the results of one lint run. Formatters receive all
// results at once, document formats wrap them in a single envelope.
type Formatter interface {
	// Name returns the format name as accepted by configuration.
	Name() string
	// MarshalReport renders results in input order.
	MarshalReport(results []Result) ([]byte, error)
}

// Options adjust formatter behavior where the format supports it.
type Options struct {
	// Color enables ANSI severity coloring (text format only).
	Color bool
	// Quiet drops per-file success notes, only findings are printed.
	Quiet bool
	// Template is the template text for the template format.
	Template string
}

// New returns the formatter for the requested output format.
func New(out config.OutputFmt, opts Options) (Formatter, error) {
	switch out {
	case config.OutputFmtText:
		return &textFormatter{opts: opts}, nil
	case config.OutputFmtCompact:
		return &compactFormatter{opts: opts}, nil
	case config.OutputFmtJson:
		return &jsonFormatter{}, nil
	case config.OutputFmtCsv:
		return &csvFormatter{}, nil
	case config.OutputFmtCheckstyle:
		return &checkstyleFormatter{}, nil
	case config.OutputFmtJunit:
		return &junitFormatter{}, nil
	case config.OutputFmtTemplate:
		return newTemplateFormatter(opts.Template)
	default:
		return nil, fmt.Errorf("unsupported output format %s", out)
	}
}
