package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/cdtdelta/lastseen/internal/archive"
	"github.com/cdtdelta/lastseen/internal/collect"
	"github.com/cdtdelta/lastseen/internal/config"
	"github.com/cdtdelta/lastseen/internal/export"
	"github.com/cdtdelta/lastseen/internal/logging"
	"github.com/cdtdelta/lastseen/internal/model"
	"github.com/cdtdelta/lastseen/internal/sources"
	"github.com/cdtdelta/lastseen/internal/utmp"
)

// Depths of the per-category views and the browser panel.
const (
	categoryLimit = 80
	browserLimit  = 12
)

// App is the main application struct that Wails binds to the frontend.
// All exported methods become callable from JavaScript.
type App struct {
	ctx       context.Context
	cfg       *config.Config
	log       *logrus.Logger
	loc       *sources.Locator
	collector *collect.Collector
}

// NewApp creates a new App instance.
func NewApp() *App {
	cfg := config.Load()
	log := logging.Init(cfg.LogLevel)
	loc := sources.New(cfg.Home, cfg.LocatorOptions()...)

	return &App{
		cfg:       cfg,
		log:       log,
		loc:       loc,
		collector: collect.New(loc, log),
	}
}

// startup is called when the app starts. The context is saved
// so we can call runtime methods (dialogs, events, etc.)
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.log.WithField("version", Version).Info("lastseen started")
}

// shutdown is called when the app is closing.
func (a *App) shutdown(ctx context.Context) {
	a.log.Debug("lastseen shutting down")
}

// -- Collection Operations --

// CollectRecentFiles returns the most recently used documents.
func (a *App) CollectRecentFiles() *model.Result {
	return a.collector.RecentFiles(categoryLimit)
}

// CollectLogins returns recent logins and logouts.
func (a *App) CollectLogins() *model.Result {
	return a.collector.Logins(categoryLimit, []int16{utmp.UserProcess, utmp.DeadProcess})
}

// CollectStartStop returns recent system starts and shutdowns.
func (a *App) CollectStartStop() *model.Result {
	return a.collector.StartStop(categoryLimit, []int16{utmp.BootTime, utmp.RunLvl})
}

// CollectFailedLogins returns recent failed login attempts.
func (a *App) CollectFailedLogins() *model.Result {
	return a.collector.FailedLogins(categoryLimit)
}

// CollectBrowserHistory returns recent visits for one browser family
// ("chromium", "firefox" or "falkon").
func (a *App) CollectBrowserHistory(browser string) (*model.Result, error) {
	return a.collector.BrowserHistory(browser, browserLimit)
}

// CollectSummary runs the summary view and returns its rendered text.
func (a *App) CollectSummary() string {
	return collect.Render(a.collector.Collect(collect.Summary))
}

// -- Export and Archive --

// ExportReport collects the full view and writes its text rendering to
// a file chosen by the user. Returns a short status line, or "" when
// the user cancels the dialog.
func (a *App) ExportReport() (string, error) {
	savePath, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		Title:           "Export Activity Report",
		DefaultFilename: "activity-report.txt",
		Filters: []runtime.FileFilter{
			{DisplayName: "Text Files (*.txt)", Pattern: "*.txt"},
			{DisplayName: "All Files (*.*)", Pattern: "*.*"},
		},
	})
	if err != nil {
		return "", err
	}
	if savePath == "" {
		return "", nil // user cancelled
	}

	runtime.EventsEmit(a.ctx, "export:status", "Collecting evidence...")
	report := a.collector.Collect(collect.Full)

	runtime.EventsEmit(a.ctx, "export:status", "Writing report...")
	if err := export.WriteFile(savePath, report, export.FormatText); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	runtime.EventsEmit(a.ctx, "export:status", "Done")

	return fmt.Sprintf("Exported %d records to %s", len(report.Records()), savePath), nil
}

// ArchiveReport collects the named view and persists it as a run in
// the configured archive. Returns the new run's id.
func (a *App) ArchiveReport(view string) (string, error) {
	v, err := collect.ParseView(view)
	if err != nil {
		return "", err
	}

	store, err := archive.CreateStore(a.cfg.ArchiveDriver, a.cfg.ArchiveDSN)
	if err != nil {
		return "", fmt.Errorf("opening archive: %w", err)
	}
	defer store.Close()

	report := a.collector.Collect(v)
	run := archive.NewRun(v.String())
	if err := store.SaveRun(run, report.Records()); err != nil {
		return "", fmt.Errorf("archiving report: %w", err)
	}

	a.log.WithFields(logrus.Fields{"run": run.ID, "records": run.RecordCount}).
		Info("report archived")
	runtime.EventsEmit(a.ctx, "archive:done", map[string]interface{}{
		"run": run.ID, "records": run.RecordCount,
	})

	return run.ID, nil
}

// ListArchivedRuns returns the archived runs, newest first.
func (a *App) ListArchivedRuns() ([]archive.Run, error) {
	store, err := archive.CreateStore(a.cfg.ArchiveDriver, a.cfg.ArchiveDSN)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer store.Close()

	return store.ListRuns()
}

// ArchivedRecords returns one archived run's records.
func (a *App) ArchivedRecords(runID string) ([]model.Record, error) {
	store, err := archive.CreateStore(a.cfg.ArchiveDriver, a.cfg.ArchiveDSN)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer store.Close()

	return store.Records(runID)
}

// DeleteArchivedRun removes a run and its records from the archive.
func (a *App) DeleteArchivedRun(runID string) error {
	store, err := archive.CreateStore(a.cfg.ArchiveDriver, a.cfg.ArchiveDSN)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer store.Close()

	return store.DeleteRun(runID)
}

// -- Internal Helpers --

// SourceInfo describes one resolvable artifact for the UI.
type SourceInfo struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Available bool   `json:"available"`
}

// DescribeSources reports which artifacts resolve for the profile.
func (a *App) DescribeSources() []SourceInfo {
	recentDir, recentOK := a.loc.RecentDocuments()
	chromium, chromiumOK := a.loc.ChromiumHistory()
	firefox, firefoxOK := a.loc.FirefoxPlaces()
	falkon, falkonOK := a.loc.FalkonHistory()

	wtmp := a.loc.WtmpPath()
	btmp := a.loc.BtmpPath()

	return []SourceInfo{
		{Name: "Recent documents", Path: recentDir, Available: recentOK},
		{Name: "Login accounting", Path: wtmp, Available: fileExists(wtmp)},
		{Name: "Failed logins", Path: btmp, Available: fileExists(btmp)},
		{Name: "Chromium history", Path: chromium, Available: chromiumOK},
		{Name: "Firefox history", Path: firefox, Available: firefoxOK},
		{Name: "Falkon history", Path: falkon, Available: falkonOK},
	}
}

// GetVersion returns the application version string.
func (a *App) GetVersion() string {
	return Version
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
