package output

import (
	"encoding/json"
	"io"

	"oxsup/internal/oxlint"
)

// SARIFFormatter renders oxlint diagnostics as a SARIF document, the
// interchange format GitHub Code Scanning consumes.
type SARIFFormatter struct {
	Version string // oxsup version
}

// SARIF represents the root SARIF document
type SARIF struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single run of the tool
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool represents the tool information
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver represents the tool driver
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []SARIFRule `json:"rules,omitempty"`
}

// SARIFRule represents a rule definition
type SARIFRule struct {
	ID               string       `json:"id"`
	ShortDescription SARIFMessage `json:"shortDescription"`
	HelpURI          string       `json:"helpUri,omitempty"`
}

// SARIFMessage represents a message
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFResult represents a single result
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFLocation represents a location in the source
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation represents a physical location
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation represents an artifact location
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion represents a region in the source
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
}

// FormatDiagnostics writes the diagnostics as a SARIF document.
func (f *SARIFFormatter) FormatDiagnostics(diags []oxlint.Diagnostic, w io.Writer) error {
	doc := SARIF{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []SARIFRun{
			{
				Tool: SARIFTool{
					Driver: SARIFDriver{
						Name:    "oxsup",
						Version: f.Version,
						Rules:   buildSARIFRules(diags),
					},
				},
				Results: buildSARIFResults(diags),
			},
		},
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

func buildSARIFRules(diags []oxlint.Diagnostic) []SARIFRule {
	seen := make(map[string]bool)
	var rules []SARIFRule
	for _, d := range diags {
		if seen[d.Code] {
			continue
		}
		seen[d.Code] = true
		rules = append(rules, SARIFRule{
			ID:               d.Code,
			ShortDescription: SARIFMessage{Text: d.Code},
			HelpURI:          d.URL,
		})
	}
	return rules
}

func buildSARIFResults(diags []oxlint.Diagnostic) []SARIFResult {
	results := make([]SARIFResult, 0, len(diags))
	for _, d := range diags {
		region := SARIFRegion{StartLine: 1}
		if len(d.Labels) > 0 {
			region.StartLine = d.Labels[0].Span.Line
			region.StartColumn = d.Labels[0].Span.Column
		}

		results = append(results, SARIFResult{
			RuleID:  d.Code,
			Level:   sarifLevel(d.Severity),
			Message: SARIFMessage{Text: d.Message},
			Locations: []SARIFLocation{
				{
					PhysicalLocation: SARIFPhysicalLocation{
						ArtifactLocation: SARIFArtifactLocation{URI: d.Filename},
						Region:           region,
					},
				},
			},
		})
	}
	return results
}

func sarifLevel(severity string) string {
	switch severity {
	case "error":
		return "error"
	case "warning":
		return "warning"
	default:
		return "note"
	}
}
