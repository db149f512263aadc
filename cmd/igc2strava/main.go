package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/nir0k/igc2strava/internal/app"
	"github.com/nir0k/igc2strava/internal/score"
	"github.com/spf13/pflag"
)

const exitUsage = 2

func main() {
	var opts app.Options

	pflag.StringVarP(&opts.LogLevel, "log-level", "l", "info", "Logging level for the log file")
	pflag.StringVar(&opts.LogFile, "log-file", "", "Optional log file path (defaults to a file next to the binary)")
	pflag.StringVar(&opts.ScorerCommand, "scorer", score.DefaultCommand, "External XC scoring command (reads JSON on stdin, writes JSON on stdout)")
	pflag.StringVar(&opts.APIURL, "api-url", "", "Override Strava API base URL")
	pflag.StringVar(&opts.TokenURL, "token-url", "", "Override Strava OAuth token URL")
	pflag.DurationVar(&opts.Timeout, "timeout", 0, "HTTP timeout for Strava requests (default 60s)")
	pflag.StringVarP(&opts.GPXOut, "gpx-out", "o", "", "Also write the generated GPX to this path")
	pflag.BoolVarP(&opts.DryRun, "dry-run", "n", false, "Build the activity and print it without uploading")

	pflag.Usage = func() {
		usage(os.Stderr, os.Args[0])
	}
	pflag.Parse()

	args := pflag.Args()
	if len(args) != 2 {
		pflag.Usage()
		os.Exit(exitUsage)
	}
	opts.ConfigPath = args[0]
	opts.IGCPath = args[1]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "igc2strava failed: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func usage(w io.Writer, prog string) {
	fmt.Fprintf(w, "Create an activity on Strava from a paragliding flight\n\n")
	fmt.Fprintf(w, "Usage: %s [flags] config_file igc_file\n\n", prog)
	fmt.Fprintf(w, "Both config_file and igc_file are required. Without them this help is\n")
	fmt.Fprintf(w, "printed to stderr and the exit status is %d.\n\nFlags:\n", exitUsage)
	pflag.CommandLine.SetOutput(w)
	pflag.PrintDefaults()
}
