package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/handiism/art-gallery/internal/config"
	"github.com/handiism/art-gallery/internal/log"
	"github.com/handiism/art-gallery/internal/tui"
)

const debugLogFile = "gallery-tui.log"

func main() {
	configPath := flag.String("config", "", "path to config file (JSON or YAML)")
	source := flag.String("source", "", "catalog source: path, file:// or http(s):// URL")
	debug := flag.Bool("debug", false, "write debug logs to "+debugLogFile)
	flag.Parse()

	settings := config.DefaultSettings()
	if *configPath != "" {
		var err error
		settings, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if *source != "" {
		settings.CatalogSource = *source
	}

	// Logs must stay off the screen while the TUI owns it.
	logPath := settings.LogPath
	if logPath == "" && *debug {
		logPath = debugLogFile
	}
	var logger *zap.Logger
	if logPath != "" {
		var err error
		logger, err = log.New(log.Options{Path: logPath, Level: settings.LogLevel, Debug: *debug})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
			os.Exit(1)
		}
	}

	os.Exit(exitCode(tui.Run(settings, logger), logger, os.Stderr))
}

// exitCode flushes the logger and reports err, returning the process exit
// status.
func exitCode(err error, logger *zap.Logger, stderr io.Writer) int {
	if logger != nil {
		if err != nil {
			logger.Error("gallery-tui failed", zap.Error(err))
		}
		_ = logger.Sync()
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
