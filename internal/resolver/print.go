package resolver

import (
	"fmt"
	"io"
	"strings"
)

// PrintReport prints a validation report for humans.
func PrintReport(w io.Writer, report *Report) {
	if report == nil {
		return
	}

	if report.Valid {
		fmt.Fprintln(w, "  ✓ plugin set is valid")
		if len(report.Order) > 0 {
			fmt.Fprintf(w, "  Activation order: %s\n", strings.Join(report.Order, " -> "))
		}
	} else {
		fmt.Fprintf(w, "  ✗ plugin set is invalid (%d %s)\n", len(report.Errors), plural(len(report.Errors), "error"))
	}

	if len(report.Errors) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  Errors:")
		for _, d := range report.Errors {
			fmt.Fprintf(w, "    [%s] %s\n", d.Kind, d.Message)
		}
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  Warnings:")
		for _, d := range report.Warnings {
			fmt.Fprintf(w, "    [%s] %s\n", d.Kind, d.Message)
		}
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
