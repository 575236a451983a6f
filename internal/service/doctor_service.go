package service

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/amterp/swatch/internal/colour"
	"github.com/amterp/swatch/internal/store"
	"github.com/amterp/swatch/internal/wheel"
)

// IssueSeverity indicates how critical an issue is.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// Issue codes for diagnostic results.
const (
	// Config issues
	CodeMalformedConfig      = "MALFORMED_CONFIG"
	CodeInvalidDefaultColour = "INVALID_DEFAULT_COLOUR"
	CodeWheelSizeClamped     = "WHEEL_SIZE_CLAMPED"

	// Reference table issues
	CodeMissingReference   = "MISSING_REFERENCE"
	CodeMalformedReference = "MALFORMED_REFERENCE"
	CodeInvalidEntry       = "INVALID_ENTRY"
	CodeNonCanonicalHex    = "NON_CANONICAL_HEX"
	CodeDuplicateColour    = "DUPLICATE_COLOUR"
)

// Issue represents a single diagnostic finding.
type Issue struct {
	Severity  IssueSeverity `json:"severity"`
	Code      string        `json:"code"`
	Entry     string        `json:"entry,omitempty"`
	Message   string        `json:"message"`
	Fixable   bool          `json:"fixable"`
	FixAction string        `json:"fix_action,omitempty"`
	FixError  string        `json:"fix_error,omitempty"` // Populated if fix was attempted but failed
}

// ReferenceDiagnostic contains stats for the reference table.
type ReferenceDiagnostic struct {
	Path    string `json:"path"`
	Exists  bool   `json:"exists"`
	Entries int    `json:"entries"`
	Valid   int    `json:"valid"`
}

// ReportSummary summarizes the diagnostic results.
type ReportSummary struct {
	Errors    int `json:"errors"`
	Warnings  int `json:"warnings"`
	Fixed     int `json:"fixed"`
	FixFailed int `json:"fix_failed,omitempty"`
}

// DiagnosticReport contains all diagnostic results.
type DiagnosticReport struct {
	Reference ReferenceDiagnostic `json:"reference"`
	Issues    []Issue             `json:"issues"`
	Summary   ReportSummary       `json:"summary"`
}

// HasErrors returns true if there are any error-level issues.
func (r *DiagnosticReport) HasErrors() bool {
	return r.Summary.Errors > 0
}

func (r *DiagnosticReport) summarize() {
	r.Summary.Errors, r.Summary.Warnings = 0, 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			r.Summary.Errors++
		} else {
			r.Summary.Warnings++
		}
	}
}

// DoctorService checks the config and reference table for problems.
type DoctorService struct {
	configStore store.ConfigStore
	refStore    store.ReferenceStore
}

// NewDoctorService creates a new diagnostic service.
func NewDoctorService(configStore store.ConfigStore, refStore store.ReferenceStore) *DoctorService {
	return &DoctorService{configStore: configStore, refStore: refStore}
}

// Diagnose checks the config file and the raw reference table. Entries are
// checked one by one so a single bad value doesn't hide the rest.
func (s *DoctorService) Diagnose() (*DiagnosticReport, error) {
	report := &DiagnosticReport{
		Reference: ReferenceDiagnostic{Path: s.refStore.Path()},
		Issues:    []Issue{},
	}

	s.checkConfig(report)
	s.checkReference(report)

	report.summarize()
	return report, nil
}

// Fix rewrites the reference table with invalid entries dropped and every
// value in canonical #rrggbb form. Returns a new report showing remaining
// issues and what was fixed.
func (s *DoctorService) Fix(report *DiagnosticReport) (*DiagnosticReport, error) {
	fixable := 0
	for _, issue := range report.Issues {
		if issue.Fixable {
			fixable++
		}
	}
	if fixable == 0 {
		return report, nil
	}

	raw, err := s.readRaw()
	if err != nil {
		return nil, err
	}

	clean := make(map[string]string, len(raw))
	for id, value := range raw {
		if c, ok := colour.ParseHex(value); ok && id != "" {
			clean[id] = c.Hex()
		}
	}

	if err := s.refStore.Save(clean); err != nil {
		failed := *report
		failed.Issues = make([]Issue, len(report.Issues))
		for i, issue := range report.Issues {
			if issue.Fixable {
				issue.FixError = err.Error()
			}
			failed.Issues[i] = issue
		}
		failed.Summary.FixFailed = fixable
		return &failed, nil
	}

	newReport, err := s.Diagnose()
	if err != nil {
		return nil, err
	}
	newReport.Summary.Fixed = fixable
	return newReport, nil
}

func (s *DoctorService) checkConfig(report *DiagnosticReport) {
	cfg, err := s.configStore.Load()
	if err != nil {
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityError,
			Code:     CodeMalformedConfig,
			Message:  err.Error(),
		})
		return
	}

	if _, ok := colour.ParseHex(cfg.DefaultColour); !ok {
		report.Issues = append(report.Issues, Issue{
			Severity:  SeverityWarning,
			Code:      CodeInvalidDefaultColour,
			Message:   fmt.Sprintf("Default colour %q is not a 6-digit hex colour", cfg.DefaultColour),
			FixAction: "Set default_colour to #rrggbb",
		})
	}

	if g := wheel.NewGeometry(cfg.WheelSize); g.Size != cfg.WheelSize {
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityWarning,
			Code:     CodeWheelSizeClamped,
			Message:  fmt.Sprintf("Wheel size %d will be drawn at %d", cfg.WheelSize, g.Size),
		})
	}
}

func (s *DoctorService) checkReference(report *DiagnosticReport) {
	if !s.refStore.Exists() {
		report.Issues = append(report.Issues, Issue{
			Severity:  SeverityWarning,
			Code:      CodeMissingReference,
			Message:   fmt.Sprintf("No reference table at %s; palettes won't be matched", s.refStore.Path()),
			FixAction: "Run 'swatch build <dir>' to create one",
		})
		return
	}
	report.Reference.Exists = true

	raw, err := s.readRaw()
	if err != nil {
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityError,
			Code:     CodeMalformedReference,
			Message:  err.Error(),
		})
		return
	}
	report.Reference.Entries = len(raw)

	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	byHex := make(map[string][]string)
	for _, id := range ids {
		value := raw[id]
		c, ok := colour.ParseHex(value)
		if !ok || id == "" {
			report.Issues = append(report.Issues, Issue{
				Severity:  SeverityError,
				Code:      CodeInvalidEntry,
				Entry:     id,
				Message:   fmt.Sprintf("Value %q is not a 6-digit hex colour", value),
				Fixable:   true,
				FixAction: "Remove the entry",
			})
			continue
		}
		report.Reference.Valid++

		if value != c.Hex() {
			report.Issues = append(report.Issues, Issue{
				Severity:  SeverityWarning,
				Code:      CodeNonCanonicalHex,
				Entry:     id,
				Message:   fmt.Sprintf("Value %q is not in #rrggbb form", value),
				Fixable:   true,
				FixAction: fmt.Sprintf("Rewrite as %s", c.Hex()),
			})
		}
		byHex[c.Hex()] = append(byHex[c.Hex()], id)
	}

	hexes := make([]string, 0, len(byHex))
	for hex := range byHex {
		hexes = append(hexes, hex)
	}
	sort.Strings(hexes)
	for _, hex := range hexes {
		shared := byHex[hex]
		if len(shared) < 2 {
			continue
		}
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityWarning,
			Code:     CodeDuplicateColour,
			Entry:    shared[0],
			Message:  fmt.Sprintf("%s share %s; matches always go to %s", strings.Join(shared, ", "), hex, shared[0]),
		})
	}
}

// readRaw reads the reference file without validating values.
func (s *DoctorService) readRaw() (map[string]string, error) {
	data, err := os.ReadFile(s.refStore.Path())
	if err != nil {
		return nil, err
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", s.refStore.Path(), err)
	}
	return raw, nil
}
