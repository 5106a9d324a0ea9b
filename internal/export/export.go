// Package export serializes reports for files and tooling hand-off.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cdtdelta/lastseen/internal/collect"
)

// Format names accepted by Write.
const (
	FormatText  = "text"
	FormatCSV   = "csv"
	FormatJSONL = "jsonl"
	FormatTLN   = "tln"
)

// KnownFormat reports whether name is a format Write accepts.
func KnownFormat(name string) bool {
	switch name {
	case FormatText, FormatCSV, FormatJSONL, FormatTLN, "":
		return true
	}
	return false
}

// Write serializes the report in the named format. An empty format
// means text.
func Write(w io.Writer, report *collect.Report, format string) error {
	switch format {
	case FormatText, "":
		return WriteText(w, report)
	case FormatCSV:
		return WriteCSV(w, report)
	case FormatJSONL:
		return WriteJSONL(w, report)
	case FormatTLN:
		return WriteTLN(w, report)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteFile serializes the report into a file at path.
func WriteFile(path string, report *collect.Report, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	return Write(f, report, format)
}

// WriteText writes the report's canonical text rendering.
func WriteText(w io.Writer, report *collect.Report) error {
	_, err := io.WriteString(w, collect.Render(report))
	return err
}

var csvHeader = []string{"category", "occurred_at", "label", "detail", "origin"}

// WriteCSV writes one row per record with a header row. Timestamps are
// RFC 3339, left empty when a record carries none.
func WriteCSV(w io.Writer, report *collect.Report) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, rec := range report.Records() {
		row := []string{
			string(rec.Category),
			timeField(rec.Timestamp),
			rec.Primary,
			rec.Secondary,
			rec.Origin,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// line is the JSONL shape of one exported record.
type line struct {
	Section    string `json:"section"`
	Category   string `json:"category"`
	OccurredAt string `json:"occurred_at,omitempty"`
	Label      string `json:"label"`
	Detail     string `json:"detail,omitempty"`
	Origin     string `json:"origin"`
}

// WriteJSONL writes one JSON object per record, tagged with its
// section title.
func WriteJSONL(w io.Writer, report *collect.Report) error {
	enc := json.NewEncoder(w)
	for _, s := range report.Sections {
		for _, rec := range s.Result.Records {
			l := line{
				Section:    s.Title,
				Category:   string(rec.Category),
				OccurredAt: timeField(rec.Timestamp),
				Label:      rec.Primary,
				Detail:     rec.Secondary,
				Origin:     rec.Origin,
			}
			if err := enc.Encode(l); err != nil {
				return fmt.Errorf("encoding record: %w", err)
			}
		}
	}
	return nil
}

// WriteTLN writes the 5-field pipe-delimited timeline format
// (Time|Source|Host|User|Description). Time is Unix seconds, 0 when a
// record carries no timestamp.
func WriteTLN(w io.Writer, report *collect.Report) error {
	if _, err := fmt.Fprintln(w, "Time|Source|Host|User|Description"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	host, _ := os.Hostname()
	for _, rec := range report.Records() {
		var secs int64
		if !rec.Timestamp.IsZero() {
			secs = rec.Timestamp.Unix()
		}
		desc := rec.Primary
		if rec.Secondary != "" {
			desc = rec.Primary + " — " + rec.Secondary
		}
		_, err := fmt.Fprintf(w, "%d|%s|%s|%s|%s\n",
			secs, tlnField(string(rec.Category)), tlnField(host), "", tlnField(desc))
		if err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	return nil
}

// timeField renders a timestamp for export, empty when absent.
func timeField(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// tlnField keeps the pipe delimiter unambiguous.
func tlnField(s string) string {
	return strings.ReplaceAll(s, "|", "/")
}
