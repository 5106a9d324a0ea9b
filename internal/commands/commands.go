// Package commands implements the lastseenctl subcommands.
package commands

import (
	"github.com/sirupsen/logrus"

	"github.com/cdtdelta/lastseen/internal/config"
	"github.com/cdtdelta/lastseen/internal/logging"
)

// Overrides shared with the root command's persistent flags.
var (
	// AppVersion is set by the root command at startup.
	AppVersion = "dev"
	// Home overrides the profile home directory.
	Home string
	// LogLevel overrides the configured log verbosity.
	LogLevel string
)

// bootstrap loads the configuration, applies the flag overrides and
// builds the command's logger.
func bootstrap() (*config.Config, *logrus.Logger) {
	cfg := config.Load()
	if Home != "" {
		cfg.Home = Home
	}
	if LogLevel != "" {
		cfg.LogLevel = LogLevel
	}

	log := logging.Init(cfg.LogLevel)
	log.WithField("version", AppVersion).Debug("lastseenctl")
	return cfg, log
}
