// Package sources resolves the on-disk locations of activity artifacts
// for one user profile. Locating never reads file contents; a source
// that is not present reports false instead of an error.
package sources

import (
	"os"
	"path/filepath"
)

// Locator holds the resolved artifact paths. Zero values are filled
// from the conventional Linux locations under the profile's home
// directory; options override individual paths.
type Locator struct {
	recentDir  string
	wtmp       string
	btmp       string
	configRoot string
	mozillaDir string
}

// Option adjusts a single path of a Locator.
type Option func(*Locator)

// WithRecentDir overrides the recent-documents directory.
func WithRecentDir(dir string) Option {
	return func(l *Locator) { l.recentDir = dir }
}

// WithWtmp overrides the login accounting channel.
func WithWtmp(path string) Option {
	return func(l *Locator) { l.wtmp = path }
}

// WithBtmp overrides the failed-login channel.
func WithBtmp(path string) Option {
	return func(l *Locator) { l.btmp = path }
}

// WithConfigRoot overrides the XDG config root that browser profiles
// live under.
func WithConfigRoot(dir string) Option {
	return func(l *Locator) { l.configRoot = dir }
}

// WithMozillaDir overrides the Mozilla profile root.
func WithMozillaDir(dir string) Option {
	return func(l *Locator) { l.mozillaDir = dir }
}

// New builds a Locator for the profile rooted at home.
func New(home string, opts ...Option) *Locator {
	l := &Locator{
		recentDir:  filepath.Join(home, ".local", "share", "RecentDocuments"),
		wtmp:       "/var/log/wtmp",
		btmp:       "/var/log/btmp",
		configRoot: filepath.Join(home, ".config"),
		mozillaDir: filepath.Join(home, ".mozilla"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// RecentDocuments returns the recent-documents directory, or false
// when it does not exist.
func (l *Locator) RecentDocuments() (string, bool) {
	info, err := os.Stat(l.recentDir)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return l.recentDir, true
}

// WtmpPath returns the login accounting channel. Existence is the
// extractor's concern, so the path is always returned.
func (l *Locator) WtmpPath() string { return l.wtmp }

// BtmpPath returns the failed-login channel.
func (l *Locator) BtmpPath() string { return l.btmp }

// ChromiumHistory returns the history store of the default Chrome
// profile, falling back to Chromium, or false when neither exists.
func (l *Locator) ChromiumHistory() (string, bool) {
	for _, vendor := range []string{"google-chrome", "chromium"} {
		path := filepath.Join(l.configRoot, vendor, "Default", "History")
		if isFile(path) {
			return path, true
		}
	}
	return "", false
}

// FirefoxPlaces returns the places database of the first profile in
// name order that has one. Additional profiles are not consulted.
func (l *Locator) FirefoxPlaces() (string, bool) {
	return firstProfileFile(filepath.Join(l.mozillaDir, "firefox"), "places.sqlite")
}

// FalkonHistory returns the browse database of the first Falkon
// profile in name order that has one.
func (l *Locator) FalkonHistory() (string, bool) {
	return firstProfileFile(filepath.Join(l.configRoot, "falkon", "profiles"), "browsedata.db")
}

func firstProfileFile(root, name string) (string, bool) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(root, e.Name(), name)
		if isFile(path) {
			return path, true
		}
	}
	return "", false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
