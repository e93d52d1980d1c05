package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/teranos/archon/analysis"
)

// PluginRef identifies a plugin in the JSON report
type PluginRef struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
}

// ResultRecord is one flat result entry in the JSON report
type ResultRecord struct {
	Group string `json:"group"`
	// Provider is null for results produced without a provider
	Provider *PluginRef `json:"provider"`
	Checker  PluginRef  `json:"checker"`
	Code     string     `json:"code"`
	Messages string     `json:"messages"`
}

// Report is the JSON document for one analysis run. RunID lets external
// collectors deduplicate reports.
type Report struct {
	RunID       string         `json:"run_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Successful  bool           `json:"successful"`
	Results     []ResultRecord `json:"results"`
}

// NewReport builds a report from the analysis's flat result list
func NewReport(a *analysis.Analysis) Report {
	records := make([]ResultRecord, 0, len(a.Results))
	for _, r := range a.Results {
		record := ResultRecord{
			Group:    r.Group.Name,
			Checker:  PluginRef{Identifier: r.Checker.Identifier(), Name: r.Checker.Name()},
			Code:     r.Code.String(),
			Messages: r.Messages,
		}
		if r.Provider != nil {
			record.Provider = &PluginRef{Identifier: r.Provider.Identifier(), Name: r.Provider.Name()}
		}
		records = append(records, record)
	}
	return Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Successful:  a.Successful(),
		Results:     records,
	}
}

// WriteJSON writes the report for a run as indented JSON
func WriteJSON(w io.Writer, a *analysis.Analysis) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewReport(a))
}
