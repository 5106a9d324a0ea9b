package collect

import (
	"strings"

	"github.com/cdtdelta/lastseen/internal/model"
)

// noEntries is printed under a section header that has nothing to show.
const noEntries = "No entries."

// Render turns a report into its text form: one header per section in
// report order, followed by the section's lines. Rendering is pure;
// the same report always yields the same text.
func Render(report *Report) string {
	var b strings.Builder
	for i, s := range report.Sections {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("=== " + s.Title + " ===\n")
		writeResult(&b, s.Result)
	}
	return b.String()
}

func writeResult(b *strings.Builder, res *model.Result) {
	if res.Diagnostic != "" {
		b.WriteString("! " + res.Diagnostic + "\n")
		return
	}
	if res.Empty() {
		b.WriteString(noEntries + "\n")
		return
	}
	for _, rec := range res.Records {
		b.WriteString(Line(rec) + "\n")
	}
}

// Line renders one record the way reports print it.
func Line(rec model.Record) string {
	if rec.Secondary != "" {
		return rec.Primary + " — " + rec.Secondary
	}
	return "- " + rec.Primary
}
