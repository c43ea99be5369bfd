package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

// newLogger builds the CLI's operational logger: text output on stderr
// so it never mixes with a command's own stdout (ciphertext, key
// material, demo output), debug-level when debugging is set the way
// lazydocker's own logger toggles on its debug flag.
func newLogger(debugging bool) *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stderr
	log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	if debugging {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}
