package diagfmt

import (
	"fmt"
	"io"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"zplforge/internal/diag"
)

// summaryTag is the locale summary lines render in. A future per-profile or
// per-session locale (spec.md's DOMAIN STACK note on locale-aware profile
// field names) would thread a language.Tag through here instead.
var summaryTag = language.English

func init() {
	message.Set(summaryTag, "%d error(s)",
		plural.Selectf(1, "%d",
			"=0", "no errors",
			"=1", "1 error",
			"other", "%[1]d errors",
		),
	)
	message.Set(summaryTag, "%d warning(s)",
		plural.Selectf(1, "%d",
			"=0", "no warnings",
			"=1", "1 warning",
			"other", "%[1]d warnings",
		),
	)
	message.Set(summaryTag, "%d note(s)",
		plural.Selectf(1, "%d",
			"=0", "no notes",
			"=1", "1 note",
			"other", "%[1]d notes",
		),
	)
}

// Counts tallies a Bag's diagnostics by severity.
type Counts struct {
	Errors   int
	Warnings int
	Notes    int
}

// CountBySeverity walks bag.Items() and tallies each severity.
func CountBySeverity(bag *diag.Bag) Counts {
	var c Counts
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			c.Errors++
		case diag.SevWarning:
			c.Warnings++
		case diag.SevInfo:
			c.Notes++
		}
	}
	return c
}

// Summary writes one pluralized, locale-aware line totalling a Bag's
// diagnostics by severity, e.g. "2 errors, 1 warning, no notes".
func Summary(w io.Writer, bag *diag.Bag) {
	c := CountBySeverity(bag)
	WriteSummary(w, c)
}

// WriteSummary renders pre-tallied counts, letting a caller combine counts
// across multiple files before printing one aggregate line.
func WriteSummary(w io.Writer, c Counts) {
	p := message.NewPrinter(summaryTag)
	fmt.Fprintf(w, "%s, %s, %s\n", //nolint:errcheck
		p.Sprintf("%d error(s)", c.Errors),
		p.Sprintf("%d warning(s)", c.Warnings),
		p.Sprintf("%d note(s)", c.Notes),
	)
}
