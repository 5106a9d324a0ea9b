// Package collect runs the individual extractors over a located
// profile and aggregates their results into reports.
package collect

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cdtdelta/lastseen/internal/browser"
	"github.com/cdtdelta/lastseen/internal/model"
	"github.com/cdtdelta/lastseen/internal/recent"
	"github.com/cdtdelta/lastseen/internal/sources"
	"github.com/cdtdelta/lastseen/internal/utmp"
)

// View selects the section set and depth of a collection pass.
type View int

const (
	// Summary is the shallow quick view.
	Summary View = iota
	// Full is the export depth.
	Full
)

func (v View) String() string {
	if v == Full {
		return "full"
	}
	return "summary"
}

// ParseView maps a view name to its View.
func ParseView(s string) (View, error) {
	switch strings.ToLower(s) {
	case "summary":
		return Summary, nil
	case "full":
		return Full, nil
	}
	return Summary, fmt.Errorf("unknown view: %s", s)
}

// section is one entry of a view table.
type section struct {
	title string
	run   func(c *Collector) *model.Result
}

var summarySections = []section{
	{"Recent Files", func(c *Collector) *model.Result { return c.RecentFiles(8) }},
	{"Logins", func(c *Collector) *model.Result {
		return c.Logins(6, []int16{utmp.UserProcess})
	}},
	{"System Starts", func(c *Collector) *model.Result {
		return c.StartStop(6, []int16{utmp.BootTime})
	}},
	{"Browser History", func(c *Collector) *model.Result { return c.chromium(6) }},
}

var fullSections = []section{
	{"Recent Files", func(c *Collector) *model.Result { return c.RecentFiles(50) }},
	{"Logins/Logouts", func(c *Collector) *model.Result {
		return c.Logins(200, []int16{utmp.UserProcess, utmp.DeadProcess})
	}},
	{"System Start/Shutdown", func(c *Collector) *model.Result {
		return c.StartStop(200, []int16{utmp.BootTime, utmp.RunLvl})
	}},
	{"Failed Logins", func(c *Collector) *model.Result { return c.FailedLogins(200) }},
	{"Chromium History", func(c *Collector) *model.Result { return c.chromium(50) }},
	{"Firefox History", func(c *Collector) *model.Result { return c.firefox(50) }},
	{"Falkon History", func(c *Collector) *model.Result { return c.falkon(50) }},
}

func viewSections(v View) []section {
	if v == Full {
		return fullSections
	}
	return summarySections
}

// Collector ties the extractors to one located profile.
type Collector struct {
	loc *sources.Locator
	log *logrus.Logger
}

// New builds a Collector over the given locator.
func New(loc *sources.Locator, log *logrus.Logger) *Collector {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Collector{loc: loc, log: log}
}

// RecentFiles lists the most recently used documents.
func (c *Collector) RecentFiles(limit int) *model.Result {
	dir, ok := c.loc.RecentDocuments()
	if !ok {
		return &model.Result{}
	}
	res := recent.List(dir, limit)
	c.log.WithFields(logrus.Fields{"section": "recent-files", "count": res.Count}).
		Debug("collected recent files")
	return res
}

// Logins reads login activity of the given record types from the
// accounting channel.
func (c *Collector) Logins(limit int, types []int16) *model.Result {
	return c.channel("logins", c.loc.WtmpPath(), utmp.Request{Limit: limit, Types: types})
}

// StartStop reads boot and shutdown records of the given types.
func (c *Collector) StartStop(limit int, types []int16) *model.Result {
	return c.channel("start-stop", c.loc.WtmpPath(), utmp.Request{Limit: limit, Types: types})
}

// FailedLogins reads failed attempts from the btmp channel. The
// channel is usually root-only, so unprivileged runs see a diagnostic
// rather than records.
func (c *Collector) FailedLogins(limit int) *model.Result {
	return c.channel("failed-logins", c.loc.BtmpPath(), utmp.Request{
		Limit:    limit,
		Types:    []int16{utmp.UserProcess},
		Category: func(int16) model.Category { return model.FailedLogin },
	})
}

func (c *Collector) channel(name, path string, req utmp.Request) *model.Result {
	res := utmp.Read(path, req)
	if res.Diagnostic != "" {
		c.log.WithFields(logrus.Fields{"section": name, "path": path}).Warn(res.Diagnostic)
		return res
	}
	c.log.WithFields(logrus.Fields{"section": name, "count": res.Count}).
		Debug("collected log channel")
	return res
}

// BrowserHistory extracts visits for the named browser family.
func (c *Collector) BrowserHistory(name string, limit int) (*model.Result, error) {
	switch strings.ToLower(name) {
	case "chromium", "chrome":
		return c.chromium(limit), nil
	case "firefox":
		return c.firefox(limit), nil
	case "falkon":
		return c.falkon(limit), nil
	}
	return nil, fmt.Errorf("unknown browser: %s", name)
}

func (c *Collector) chromium(limit int) *model.Result {
	path, ok := c.loc.ChromiumHistory()
	if !ok {
		return &model.Result{}
	}
	return browser.Chromium(path, limit)
}

func (c *Collector) firefox(limit int) *model.Result {
	path, ok := c.loc.FirefoxPlaces()
	if !ok {
		return &model.Result{}
	}
	return browser.Firefox(path, limit)
}

func (c *Collector) falkon(limit int) *model.Result {
	path, ok := c.loc.FalkonHistory()
	if !ok {
		return &model.Result{}
	}
	return browser.Falkon(path, limit)
}

// Section is one collected section of a report.
type Section struct {
	Title  string        `json:"title"`
	Result *model.Result `json:"result"`
}

// Report is one collection pass over a view.
type Report struct {
	View        View      `json:"-"`
	CollectedAt time.Time `json:"collected_at"`
	Sections    []Section `json:"sections"`
}

// Section returns the named section of the report, or nil.
func (r *Report) Section(title string) *Section {
	for i := range r.Sections {
		if r.Sections[i].Title == title {
			return &r.Sections[i]
		}
	}
	return nil
}

// Records returns the report's records flattened in section order.
func (r *Report) Records() []model.Record {
	var out []model.Record
	for _, s := range r.Sections {
		out = append(out, s.Result.Records...)
	}
	return out
}

// Collect runs every section of the view, one goroutine per section,
// and waits for all of them before assembling the report. Section
// order is fixed per view. A section that comes back empty or with a
// diagnostic never stops the others.
func (c *Collector) Collect(view View) *Report {
	sections := viewSections(view)
	report := &Report{
		View:        view,
		CollectedAt: time.Now(),
		Sections:    make([]Section, len(sections)),
	}

	var wg sync.WaitGroup
	for i, s := range sections {
		i, s := i, s
		wg.Add(1)
		go func() {
			defer wg.Done()
			report.Sections[i] = Section{Title: s.title, Result: s.run(c)}
		}()
	}
	wg.Wait()

	c.log.WithFields(logrus.Fields{"view": view.String(), "sections": len(report.Sections)}).
		Info("collection finished")
	return report
}
