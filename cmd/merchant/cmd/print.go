package cmd

import (
	"fmt"
	"io"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/treeforge/merchant/pkg/catalog"
	"github.com/treeforge/merchant/pkg/sync"
)

var headingCaser = cases.Title(language.English)

// printHeading writes a section heading like "Created (2)".
func printHeading(w io.Writer, name string, count int) {
	fmt.Fprintf(w, "%s (%d)\n", headingCaser.String(name), count)
}

func printEntries(w io.Writer, name string, entries []*catalog.Entry) {
	if len(entries) == 0 {
		return
	}
	printHeading(w, name, len(entries))
	for _, e := range entries {
		fmt.Fprintf(w, "  %s %s\n", e.Kind(), e.Name)
	}
}

func printFailures(w io.Writer, name string, failures []sync.Failure) {
	if len(failures) == 0 {
		return
	}
	printHeading(w, name, len(failures))
	for _, f := range failures {
		fmt.Fprintf(w, "  %s %s: %v\n", f.Entry.Kind(), f.Entry.Name, f.Err)
	}
}

// printPlan renders a dry-run classification.
func printPlan(w io.Writer, plan *sync.Plan) {
	printEntries(w, "would create", plan.ToCreate)
	printEntries(w, "would update", plan.ToUpdate)
	printEntries(w, "outdated but skipped", diffEntries(plan.Outdated, plan.ToUpdate))
	printEntries(w, "not created", plan.SkipCreate)
	if !plan.HasWork() {
		fmt.Fprintln(w, "Nothing to do.")
	}
}

// printReport renders the outcome of a reconciliation pass.
func printReport(w io.Writer, report *sync.Report) {
	printEntries(w, "created", report.Created)
	printEntries(w, "updated", report.Updated)
	printFailures(w, "failed", report.Failed)
	printEntries(w, "outdated but skipped", diffEntries(report.Outdated, report.Updated))
	printEntries(w, "not created", report.SkippedCreate)
	if len(report.Mismatches) > 0 {
		printHeading(w, "verification warnings", len(report.Mismatches))
		for _, m := range report.Mismatches {
			fmt.Fprintf(w, "  %s\n", m)
		}
	}
	printFailures(w, "verification fetch failures", report.VerifyFailures)
	if report.Attempted() == 0 {
		fmt.Fprintln(w, "Nothing to do.")
	}
}

// diffEntries returns the entries of a that are not in b, preserving order.
func diffEntries(a, b []*catalog.Entry) []*catalog.Entry {
	in := make(map[*catalog.Entry]bool, len(b))
	for _, e := range b {
		in[e] = true
	}
	var out []*catalog.Entry
	for _, e := range a {
		if !in[e] {
			out = append(out, e)
		}
	}
	return out
}
