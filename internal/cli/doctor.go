package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/amterp/ra"
	"github.com/amterp/swatch/internal/service"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

func registerDoctor(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("doctor")
	cmd.SetDescription("Check config and reference table for problems. Exit 0 if healthy, 1 if errors found.")

	ctx.DoctorFix, _ = ra.NewBool("fix").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Rewrite the reference table without invalid entries, in canonical form").
		Register(cmd)

	ctx.DoctorDryRun, _ = ra.NewBool("dry-run").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Show what fixes would be applied without making changes").
		Register(cmd)

	ctx.DoctorJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output as JSON").
		Register(cmd)

	ctx.DoctorUsed, _ = parent.RegisterCmd(cmd)
}

func runDoctor(reference string, fix, dryRun, jsonOutput bool) {
	if fix && dryRun {
		Fatal(fmt.Errorf("--fix and --dry-run cannot be used together"))
	}

	app, err := NewApp(false, reference)
	if err != nil {
		// A broken config is itself something to diagnose
		if app, err = newDoctorApp(reference); err != nil {
			Fatal(err)
		}
	}

	doctorService := service.NewDoctorService(app.ConfigStore, app.ReferenceStore)

	report, err := doctorService.Diagnose()
	if err != nil {
		Fatal(err)
	}

	if fix && len(report.Issues) > 0 {
		report, err = doctorService.Fix(report)
		if err != nil {
			Fatal(err)
		}
	}

	if jsonOutput {
		if err := printJson(report); err != nil {
			Fatal(err)
		}
	} else {
		printDoctorReport(report, fix, dryRun)
	}

	if report.HasErrors() {
		os.Exit(1)
	}
}

func printDoctorReport(report *service.DiagnosticReport, didFix, dryRun bool) {
	ref := report.Reference
	fmt.Printf("Checking reference %s...\n", RenderBold(ref.Path))
	if ref.Exists {
		fmt.Printf("  %s, %s valid\n",
			english.Plural(ref.Entries, "entry", "entries"), humanize.Comma(int64(ref.Valid)))
	}
	fmt.Println()

	fixed := 0
	if didFix {
		fixed = report.Summary.Fixed
	}
	if fixed > 0 {
		PrintSuccess("Fixed %s", english.Plural(fixed, "issue", ""))
		fmt.Println()
	}

	if len(report.Issues) == 0 {
		if fixed > 0 {
			PrintSuccess("All issues resolved")
		} else {
			PrintSuccess("No issues found")
		}
		return
	}

	fixable := 0
	for _, issue := range report.Issues {
		if issue.Fixable {
			fixable++
		}
	}
	if dryRun && fixable > 0 {
		PrintInfo("Dry run: %s would be fixed", english.Plural(fixable, "issue", ""))
		fmt.Println()
	}

	issues := slices.Clone(report.Issues)
	slices.SortStableFunc(issues, func(a, b service.Issue) int {
		return severityRank(a.Severity) - severityRank(b.Severity)
	})
	for _, issue := range issues {
		printIssue(issue)
	}

	fmt.Println()
	fmt.Printf("Summary: %s\n", summaryLine(report.Summary, fixed))

	if !didFix && fixable > 0 {
		fmt.Println()
		PrintInfo("Run 'swatch doctor --fix' to rewrite the reference table")
	}
}

func summaryLine(sum service.ReportSummary, fixed int) string {
	var parts []string
	add := func(n int, style lipgloss.Style, singular, plural string) {
		if n > 0 {
			parts = append(parts, style.Render(english.Plural(n, singular, plural)))
		}
	}
	add(sum.Errors, StyleError, "error", "")
	add(sum.Warnings, StyleWarning, "warning", "")
	add(fixed, StyleSuccess, "fix", "fixes")
	add(sum.FixFailed, StyleError, "failed fix", "")
	return strings.Join(parts, ", ")
}

// Errors sort before warnings.
func severityRank(s service.IssueSeverity) int {
	if s == service.SeverityError {
		return 0
	}
	return 1
}

func printIssue(issue service.Issue) {
	style, icon := StyleWarning, IconWarning
	if issue.Severity == service.SeverityError {
		style, icon = StyleError, IconError
	}

	line := style.Render(icon) + " " + style.Render("["+issue.Code+"]")
	if issue.Entry != "" {
		line += " " + RenderID(issue.Entry)
	}
	fmt.Println(line + " " + issue.Message)

	switch {
	case issue.FixError != "":
		fmt.Printf("  %s fix failed: %s\n", StyleError.Render(IconInfo), issue.FixError)
	case issue.FixAction != "" && issue.Fixable:
		fmt.Printf("  %s fix: %s\n", RenderMuted(IconInfo), issue.FixAction)
	case issue.FixAction != "":
		fmt.Printf("  %s %s\n", RenderMuted(IconInfo), issue.FixAction)
	}
}
