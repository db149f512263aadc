package igc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	goigc "github.com/ezgliding/goigc"
)

// ErrMissingDate is returned when the IGC header carries no flight date.
var ErrMissingDate = errors.New("igc header has no flight date")

// Metadata holds the flight header details used for presentation.
type Metadata struct {
	Date       time.Time
	GliderType string
	Pilot      string
	Comments   []string
}

// Flight is a parsed IGC recording.
type Flight struct {
	Metadata
	Tracklog Tracklog
}

// ParseFile reads and parses an IGC file from disk.
func ParseFile(path string) (*Flight, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse decodes IGC content. Comments are the L record texts in file order.
func Parse(r io.Reader) (*Flight, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read igc: %w", err)
	}

	parsed, err := goigc.Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse igc: %w", err)
	}
	if parsed.Date.IsZero() {
		return nil, ErrMissingDate
	}

	points := collectPoints(parsed.Points)
	if len(points) == 0 {
		return nil, ErrEmptyTrack
	}

	y, m, d := parsed.Date.Date()
	return &Flight{
		Metadata: Metadata{
			Date:       time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
			GliderType: strings.TrimSpace(parsed.GliderType),
			Pilot:      strings.TrimSpace(parsed.Pilot),
			Comments:   collectComments(parsed.Logbook),
		},
		Tracklog: points,
	}, nil
}

func collectPoints(fixes []goigc.Point) Tracklog {
	points := make(Tracklog, 0, len(fixes))
	for _, fix := range fixes {
		alt := fix.GNSSAltitude
		if alt == 0 {
			alt = fix.PressureAltitude
		}
		points = append(points, Point{
			Latitude:  fix.Lat.Degrees(),
			Longitude: fix.Lng.Degrees(),
			Altitude:  float64(alt),
			Time:      timeOfDay(fix.Time),
		})
	}
	return points
}

func timeOfDay(ts time.Time) time.Duration {
	h, m, s := ts.UTC().Clock()
	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ts.Nanosecond())
}

func collectComments(logbook []goigc.LogEntry) []string {
	comments := make([]string, 0, len(logbook))
	for _, entry := range logbook {
		comments = append(comments, strings.TrimSpace(entry.Text))
	}
	return comments
}
