package format

import (
	"encoding/json"

	"csslint/config"
	"csslint/lint"
)

// jsonFormatter marshals results as an array of per file reports.
type jsonFormatter struct{}

func (f *jsonFormatter) Name() string {
	return config.OutputFmtJson.String()
}

type fileReport struct {
	Filename string         `json:"filename"`
	Messages []lint.Message `json:"messages"`
	Stats    map[string]int `json:"stats"`
}

func (f *jsonFormatter) MarshalReport(results []Result) ([]byte, error) {
	out := make([]fileReport, 0, len(results))
	for _, res := range results {
		out = append(out, fileReport{
			Filename: res.Name,
			Messages: res.Report.Messages,
			Stats:    res.Report.Stats,
		})
	}
	return json.Marshal(out)
}
