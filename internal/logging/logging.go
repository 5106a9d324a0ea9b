// Package logging builds the application logger.
package logging

import "github.com/sirupsen/logrus"

// Init returns a logger at the given level. Unknown level names fall
// back to info.
func Init(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	return log
}
