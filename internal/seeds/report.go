package seeds

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Output formats understood by Render.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const (
	bannerPassed = "ALL CHECKS PASSED"
	bannerFailed = "SOME CHECKS FAILED"
)

type resultDoc struct {
	Name     string   `json:"name" yaml:"name"`
	Severity Severity `json:"severity" yaml:"severity"`
	Status   string   `json:"status" yaml:"status"`
	Detail   string   `json:"detail" yaml:"detail"`
}

type reportDoc struct {
	Tier    Tier        `json:"tier" yaml:"tier"`
	Passed  bool        `json:"passed" yaml:"passed"`
	Aborted bool        `json:"aborted,omitempty" yaml:"aborted,omitempty"`
	Summary string      `json:"summary" yaml:"summary"`
	Results []resultDoc `json:"results" yaml:"results"`
}

// Banner is the final summary line.
func (r *Report) Banner() string {
	if r.Passed() {
		return bannerPassed
	}
	return bannerFailed
}

// Line formats a single result for text output.
func Line(r CheckResult) string {
	return fmt.Sprintf("%s %s: %s", r.Marker(), r.Name, r.Detail)
}

// Render writes report to w in the given format.
func Render(w io.Writer, report *Report, format string) error {
	switch format {
	case "", FormatText:
		return renderText(w, report)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report.doc())
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report.doc()); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported output format %q", format)
}

func renderText(w io.Writer, report *Report) error {
	for _, r := range report.Results {
		if _, err := fmt.Fprintln(w, Line(r)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%s\n%s\n", report.summary(), report.Banner())
	return err
}

func (r *Report) summary() string {
	passed, warned, failed := r.Tally()
	return fmt.Sprintf("%d passed, %d warnings, %d failed", passed, warned, failed)
}

func (r *Report) doc() reportDoc {
	doc := reportDoc{
		Tier:    r.Tier,
		Passed:  r.Passed(),
		Aborted: r.Aborted,
		Summary: r.Banner(),
		Results: make([]resultDoc, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		doc.Results = append(doc.Results, resultDoc{
			Name:     res.Name,
			Severity: res.Severity,
			Status:   res.Status(),
			Detail:   res.Detail,
		})
	}
	return doc
}
