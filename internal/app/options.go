package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nir0k/igc2strava/internal/score"
)

const defaultTimeout = 60 * time.Second

// Options represents user-provided CLI parameters.
type Options struct {
	ConfigPath    string
	IGCPath       string
	LogLevel      string
	LogFile       string
	ScorerCommand string
	APIURL        string
	TokenURL      string
	Timeout       time.Duration
	GPXOut        string
	DryRun        bool
}

// Validate performs basic validation and assigns defaults where needed.
func (o *Options) Validate() error {
	o.ConfigPath = strings.TrimSpace(o.ConfigPath)
	o.IGCPath = strings.TrimSpace(o.IGCPath)
	o.LogLevel = strings.TrimSpace(o.LogLevel)
	o.LogFile = strings.TrimSpace(o.LogFile)
	o.ScorerCommand = strings.TrimSpace(o.ScorerCommand)
	o.GPXOut = strings.TrimSpace(o.GPXOut)

	if o.ConfigPath == "" {
		return fmt.Errorf("config file is required")
	}
	if o.IGCPath == "" {
		return fmt.Errorf("IGC file is required")
	}
	if o.LogLevel == "" {
		o.LogLevel = "info"
	}
	if o.LogFile == "" {
		defaultPath, err := defaultLogPath()
		if err != nil {
			return err
		}
		o.LogFile = defaultPath
	}
	if o.ScorerCommand == "" {
		o.ScorerCommand = score.DefaultCommand
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return nil
}

func defaultLogPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	dir := filepath.Dir(exe)
	// When running via `go run`, executable resides in temp; prefer current working dir then.
	if strings.HasPrefix(dir, os.TempDir()) {
		cwd, err := os.Getwd()
		if err == nil {
			dir = cwd
		}
	}
	return filepath.Join(dir, "igc2strava.log"), nil
}
