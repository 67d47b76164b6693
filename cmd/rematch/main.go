// Command rematch is a small CLI harness around the rematch engine: it
// assembles a bytecode program from a text listing and runs it against an
// input string, printing the resulting match and capture-group boundaries.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := root.Execute(); err != nil {
		logrus.WithError(err).Error("rematch: command failed")
		os.Exit(1)
	}
}
