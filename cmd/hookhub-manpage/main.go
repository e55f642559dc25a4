package main

import (
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/hookhub/cmd/hookhub"
	"github.com/arthur-debert/hookhub/internal/version"
	"github.com/arthur-debert/hookhub/pkg/logging"
)

func main() {
	rootCmd := hookhub.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "HOOKHUB",
		Section: "1",
		Source:  "hookhub " + version.Version,
		Manual:  "hookhub manual",
	}

	logging.SetupLoggerWithOptions(logging.Options{NoFile: true})
	logging.Must(doc.GenMan(rootCmd, header, os.Stdout), "Failed to generate man page")
}
