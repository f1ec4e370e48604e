package config

import (
	yaml "gopkg.in/yaml.v3"
)

// Specification of requested output format.
// ENUM(text, compact, json, csv, checkstyle, junit, template)
type OutputFmt int

// Machine reports whether format is intended for tool consumption rather
// than for reading, such formats are never colorized or summarized.
func (o OutputFmt) Machine() bool {
	switch o {
	case OutputFmtJson, OutputFmtCsv, OutputFmtCheckstyle, OutputFmtJunit:
		return true
	default:
		return false
	}
}

// MarshalYAML makes sure dumped configuration shows the format by name.
func (o OutputFmt) MarshalYAML() (any, error) {
	return o.String(), nil
}

// UnmarshalYAML accepts the format by name, yaml does not consult the text
// unmarshaller on its own.
func (o *OutputFmt) UnmarshalYAML(value *yaml.Node) error {
	return o.UnmarshalText([]byte(value.Value))
}
