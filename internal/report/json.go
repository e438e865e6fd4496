package report

import (
	"bytes"
	"encoding/json"

	"github.com/five82/audioprobe/internal/batch"
	"github.com/five82/audioprobe/internal/probe"
)

type jsonSummary struct {
	TotalFiles            int     `json:"total_files"`
	Successful            int     `json:"successful"`
	Failed                int     `json:"failed"`
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
}

type jsonReport struct {
	Summary         jsonSummary       `json:"summary"`
	SuccessfulFiles []probe.AudioInfo `json:"successful_files"`
	Errors          []string          `json:"errors"`
}

func renderJSON(result *batch.BatchResult) ([]byte, error) {
	doc := jsonReport{
		Summary: jsonSummary{
			TotalFiles:            result.TotalFiles,
			Successful:            result.Successful(),
			Failed:                result.Failed(),
			ProcessingTimeSeconds: result.ProcessingTime.Seconds(),
		},
		SuccessfulFiles: result.SuccessfulFiles,
		Errors:          result.ErrorMessages(),
	}
	// Empty sequences render as [] rather than null.
	if doc.SuccessfulFiles == nil {
		doc.SuccessfulFiles = []probe.AudioInfo{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
