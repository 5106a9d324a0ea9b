// Package recent lists the entries of a recent-documents directory.
package recent

import (
	"os"
	"time"

	"github.com/cdtdelta/lastseen/internal/model"
)

// List returns up to limit entries of the directory at dir in reverse
// lexicographic name order. Only regular files are listed; directories
// and special entries count as excluded. A missing or unreadable
// directory yields an empty result, never a diagnostic.
func List(dir string, limit int) *model.Result {
	res := &model.Result{}
	if limit <= 0 {
		return res
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return res
	}

	// ReadDir sorts ascending by name, so the walk runs backwards and
	// stops once the limit is reached.
	for i := len(entries) - 1; i >= 0 && len(res.Records) < limit; i-- {
		e := entries[i]
		if !e.Type().IsRegular() {
			res.Excluded++
			continue
		}

		var ts time.Time
		if info, err := e.Info(); err == nil {
			ts = info.ModTime()
		}

		res.Records = append(res.Records, model.Record{
			Timestamp: ts,
			Category:  model.RecentFile,
			Primary:   e.Name(),
			Origin:    dir,
		})
	}

	res.Count = len(res.Records)
	return res
}
