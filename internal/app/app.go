package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nir0k/igc2strava/internal/config"
	"github.com/nir0k/igc2strava/internal/gpx"
	"github.com/nir0k/igc2strava/internal/igc"
	"github.com/nir0k/igc2strava/internal/score"
	"github.com/nir0k/igc2strava/internal/strava"
	"github.com/nir0k/igc2strava/internal/summary"
	"github.com/nir0k/logger"
)

// Scorer computes XC metrics for a tracklog.
type Scorer interface {
	Score(ctx context.Context, track igc.Tracklog) (score.Result, error)
}

// Uploader exchanges credentials for a token and creates the activity.
type Uploader interface {
	AccessToken(ctx context.Context, cfg *config.Config) (string, error)
	Upload(ctx context.Context, token string, up strava.Upload) (*strava.Response, error)
}

// Deps overrides the collaborators built from Options. Nil fields use defaults.
type Deps struct {
	Scorer   Scorer
	Uploader Uploader
	Stdout   io.Writer
}

// Run is the main entry point for the CLI workflow.
func Run(ctx context.Context, opts Options) error {
	return RunWith(ctx, opts, Deps{})
}

// RunWith executes the pipeline with the provided collaborators.
func RunWith(ctx context.Context, opts Options, deps Deps) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	cfg := logger.LogConfig{
		FilePath:       opts.LogFile,
		Format:         "standard",
		FileLevel:      opts.LogLevel,
		ConsoleLevel:   "fatal",
		ConsoleOutput:  false,
		EnableRotation: true,
		RotationConfig: logger.RotationConfig{
			MaxSize:    25,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		},
	}
	logInstance, err := logger.NewLogger(cfg)
	if err != nil {
		return err
	}

	infof := logInstance.Infof
	warnf := logInstance.Warningf
	errorf := logInstance.Errorf

	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Scorer == nil {
		engine, err := score.NewExecEngine(opts.ScorerCommand)
		if err != nil {
			return fail(StageScore, err)
		}
		deps.Scorer = score.New(engine)
	}
	if deps.Uploader == nil {
		deps.Uploader = strava.NewClient(opts.APIURL, opts.TokenURL, opts.Timeout)
	}

	infof("Starting igc2strava with config=%s igc=%s scorer=%q dryRun=%t", opts.ConfigPath, opts.IGCPath, opts.ScorerCommand, opts.DryRun)

	creds, err := config.Load(opts.ConfigPath)
	if err != nil {
		errorf("Failed to load config: %v", err)
		return fail(StageConfig, err)
	}
	if !opts.DryRun {
		if err := creds.Validate(); err != nil {
			errorf("Invalid config %s: %v", opts.ConfigPath, err)
			return fail(StageConfig, err)
		}
	}

	flight, err := igc.ParseFile(opts.IGCPath)
	if err != nil {
		errorf("Failed to parse %s: %v", opts.IGCPath, err)
		return fail(StageParse, err)
	}
	start, end := flight.Tracklog.Bounds(flight.Date)
	infof("IGC flight loaded with %d points (%s .. %s) glider=%q", flight.Tracklog.PointCount(), start.Format(time.RFC3339), end.Format(time.RFC3339), flight.GliderType)

	result, err := deps.Scorer.Score(ctx, flight.Tracklog)
	if err != nil {
		errorf("Scoring failed for %s: %v", opts.IGCPath, err)
		return fail(StageScore, err)
	}
	infof("Scored %s: shape=%s distance=%.2fkm score=%.2fpts", opts.IGCPath, result.Shape, result.Distance, result.Score)

	title, err := summary.Title(result.Shape)
	if err != nil {
		errorf("No title for %s: %v", opts.IGCPath, err)
		return fail(StagePresent, err)
	}
	description, err := summary.Description(flight, result)
	if err != nil {
		errorf("Failed to build description for %s: %v", opts.IGCPath, err)
		return fail(StagePresent, err)
	}

	doc, err := gpx.Build(gpx.Activity{
		Name:        title,
		Description: description,
		Type:        gpx.ActivityType,
		Date:        flight.Date,
		Points:      flight.Tracklog,
	})
	if err != nil {
		return fail(StageGPX, err)
	}
	payload, err := gpx.Encode(doc)
	if err != nil {
		return fail(StageGPX, err)
	}
	if opts.GPXOut != "" {
		if err := gpx.WriteFile(opts.GPXOut, payload); err != nil {
			return fail(StageGPX, err)
		}
		infof("GPX payload written to %s (%d bytes)", opts.GPXOut, len(payload))
	}

	if opts.DryRun {
		fmt.Fprintf(deps.Stdout, "%s\n\n%s\n", title, description)
		infof("Dry run finished for %s, upload skipped", opts.IGCPath)
		return nil
	}

	token, err := deps.Uploader.AccessToken(ctx, creds)
	if err != nil {
		errorf("Failed to obtain access token: %v", err)
		return fail(StageUpload, err)
	}

	resp, uploadErr := deps.Uploader.Upload(ctx, token, strava.Upload{
		Name:        title,
		Description: description,
		GPX:         payload,
	})
	if resp != nil {
		fmt.Fprintf(deps.Stdout, "%s : %d : %s\n", opts.IGCPath, resp.StatusCode, resp.Text)
		infof("Upload of %s answered %d: %s", opts.IGCPath, resp.StatusCode, resp.Text)
	}
	if uploadErr != nil {
		warnf("Upload of %s failed: %v", opts.IGCPath, uploadErr)
	}

	if err := config.Save(opts.ConfigPath, creds); err != nil {
		errorf("Failed to save config: %v", err)
		return fail(StageSave, err)
	}

	if uploadErr != nil {
		return fail(StageUpload, uploadErr)
	}
	return nil
}
