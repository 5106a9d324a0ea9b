// Package browser extracts visit history from browser SQLite stores.
// Each supported browser family is described by a Schema. Extraction
// always runs against a disposable snapshot of the store, so a browser
// that is currently running never blocks collection.
package browser

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cdtdelta/lastseen/internal/model"
	"github.com/cdtdelta/lastseen/internal/snapshot"
)

// Schema describes one browser family's history table.
type Schema struct {
	// Name tags the records, e.g. "chromium".
	Name string

	// Query selects url, title and a raw integer timestamp, newest
	// first, with a single limit parameter.
	Query string

	// Timestamp converts the raw column value to wall-clock time.
	// Non-positive raw values never reach it.
	Timestamp func(int64) time.Time
}

// webkitEpochOffset is the microsecond distance between the WebKit
// epoch (1601-01-01) and the Unix epoch.
const webkitEpochOffset = 11644473600000000

var (
	chromiumSchema = Schema{
		Name:  "chromium",
		Query: "SELECT url, title, last_visit_time FROM urls ORDER BY last_visit_time DESC LIMIT ?",
		Timestamp: func(v int64) time.Time {
			return time.UnixMicro(v - webkitEpochOffset)
		},
	}

	firefoxSchema = Schema{
		Name:      "firefox",
		Query:     "SELECT url, title, last_visit_date FROM moz_places ORDER BY last_visit_date DESC LIMIT ?",
		Timestamp: time.UnixMicro,
	}

	falkonSchema = Schema{
		Name:      "falkon",
		Query:     "SELECT url, title, date FROM history ORDER BY date DESC LIMIT ?",
		Timestamp: time.UnixMilli,
	}
)

// Chromium extracts up to limit visits from a Chrome or Chromium
// History store.
func Chromium(path string, limit int) *model.Result {
	return Extract(path, chromiumSchema, limit)
}

// Firefox extracts up to limit visits from a places.sqlite store.
func Firefox(path string, limit int) *model.Result {
	return Extract(path, firefoxSchema, limit)
}

// Falkon extracts up to limit visits from a browsedata.db store.
func Falkon(path string, limit int) *model.Result {
	return Extract(path, falkonSchema, limit)
}

// Extract runs schema's query against a snapshot of the store at path
// and maps the rows to visit records, newest first. A store that
// cannot be snapshotted, opened or queried yields an empty result, and
// rows read before a mid-scan failure are kept. The snapshot is
// released before Extract returns, whatever happens.
func Extract(path string, schema Schema, limit int) *model.Result {
	res := &model.Result{}
	if limit <= 0 {
		return res
	}

	snap, err := snapshot.Acquire(path)
	if err != nil {
		return res
	}
	defer snap.Release()

	db, err := sql.Open("sqlite", snap.Path)
	if err != nil {
		return res
	}
	defer db.Close()

	rows, err := db.Query(schema.Query, limit)
	if err != nil {
		return res
	}
	defer rows.Close()

	category := model.BrowserVisit(schema.Name)
	for rows.Next() {
		var (
			url   sql.NullString
			title sql.NullString
			raw   sql.NullInt64
		)
		if err := rows.Scan(&url, &title, &raw); err != nil {
			res.Excluded++
			continue
		}

		rec := model.Record{
			Category:  category,
			Primary:   title.String,
			Secondary: url.String,
			Origin:    path,
		}
		if rec.Primary == "" {
			rec.Primary = "—"
		}
		if raw.Valid && raw.Int64 > 0 {
			rec.Timestamp = schema.Timestamp(raw.Int64)
		}
		res.Records = append(res.Records, rec)
	}

	res.Count = len(res.Records)
	return res
}
