package model

import "time"

// Category identifies the kind of activity a record witnesses.
type Category string

// Fixed categories. Browser visits carry the browser name as a suffix
// and are built with BrowserVisit.
const (
	RecentFile     Category = "recent-file"
	Login          Category = "login"
	Logout         Category = "logout"
	SystemStart    Category = "system-start"
	SystemShutdown Category = "system-shutdown"
	FailedLogin    Category = "failed-login"
)

// BrowserVisit returns the category for a visit recorded by the named
// browser, e.g. "browser-visit:chromium".
func BrowserVisit(browser string) Category {
	return Category("browser-visit:" + browser)
}

// Record represents a single piece of observed user or system activity.
// A zero Timestamp means the source carried no usable time; timestamps
// are never invented.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	Category  Category  `json:"category"`
	Primary   string    `json:"primary"`
	Secondary string    `json:"secondary,omitempty"`
	Origin    string    `json:"origin"`
}

// Result is the outcome of one extraction. A result with records is ok.
// A result without records is empty, unless Diagnostic is set, in which
// case the source could not be opened and Diagnostic holds the single
// human-readable line describing why. Records and Diagnostic are never
// both populated.
type Result struct {
	Records    []Record `json:"records"`
	Count      int      `json:"count"`
	Excluded   int      `json:"excluded"`
	Diagnostic string   `json:"diagnostic,omitempty"`
}

// Empty reports whether the extraction produced no records.
func (r *Result) Empty() bool {
	return len(r.Records) == 0
}
