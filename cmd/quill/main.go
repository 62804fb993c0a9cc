// cmd/quill/main.go
package main

import (
	"fmt"
	"io"
	stlog "log" // Standard log for errors before the logger is ready
	"os"
	"path/filepath"

	"github.com/bethropolis/quill/internal/app"
	"github.com/bethropolis/quill/internal/config"
	"github.com/bethropolis/quill/internal/logger"
)

const version = "0.1.0"

func main() {
	// --- Argument & Flag Parsing ---
	flags := config.NewFlags(nil)
	args, err := flags.Parse(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return
	}

	var filePath string
	if len(args) > 0 {
		filePath = args[0]
	}

	// --- Configuration ---
	cfg, cfgErr := config.LoadConfig(*flags.ConfigFilePath, flags)

	// --- Logger Initialization ---
	output, closeLog := openLog(cfg.Logger.LogFilePath)
	defer closeLog()
	logger.SetDebugFilter(*flags.DebugLog)
	logger.Init(cfg.Logger, output)

	if cfgErr != nil {
		logger.Warnf("Config: %v", cfgErr)
	}
	logger.Infof("Starting %s %s", config.AppName, version)
	if filePath != "" {
		logger.Debugf("File path specified: %s", filePath)
	} else {
		logger.Debugf("No file specified, starting empty.")
	}

	// --- Create and Run App ---
	quillApp, err := app.NewApp(cfg, filePath)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		closeLog()
		os.Exit(1)
	}

	if err := quillApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		closeLog()
		os.Exit(1)
	}

	logger.Infof("%s finished.", config.AppName)
}

// openLog opens the log destination. "-" means stderr and "" the default
// file in the user cache dir.
func openLog(path string) (io.Writer, func()) {
	if path == "-" {
		return os.Stderr, func() {}
	}
	if path == "" {
		path = config.DefaultLogPath()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			stlog.Printf("Warning: cannot create log directory '%s': %v", dir, err)
		}
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		stlog.Printf("Warning: failed to open log file '%s': %v, logging disabled", path, err)
		return io.Discard, func() {}
	}
	return logFile, func() { logFile.Close() }
}
