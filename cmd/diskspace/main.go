// Command diskspace reports filesystem capacity for configured paths.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	if err := newRootCmd(logger).Execute(); err != nil {
		os.Exit(1)
	}
}
