package gpx

import (
	"fmt"
	"os"
	"time"

	"github.com/nir0k/igc2strava/internal/igc"
	gogpx "github.com/tkrajina/gpxgo/gpx"
)

// ActivityType is the track type label Strava expects for free-form activities.
const ActivityType = "Workout"

const creator = "igc2strava"

// Activity describes the GPX document to build.
type Activity struct {
	Name        string
	Description string
	Type        string
	Date        time.Time
	Points      igc.Tracklog
}

// Build maps an activity onto a single-track, single-segment GPX document.
// Point timestamps combine the activity date with each fix time-of-day in UTC.
func Build(act Activity) (*gogpx.GPX, error) {
	if len(act.Points) == 0 {
		return nil, igc.ErrEmptyTrack
	}

	segment := gogpx.GPXTrackSegment{
		Points: make([]gogpx.GPXPoint, 0, len(act.Points)),
	}
	for _, p := range act.Points {
		segment.Points = append(segment.Points, gogpx.GPXPoint{
			Point: gogpx.Point{
				Latitude:  p.Latitude,
				Longitude: p.Longitude,
				Elevation: *gogpx.NewNullableFloat64(p.Altitude),
			},
			Timestamp: p.At(act.Date),
		})
	}

	start, _ := act.Points.Bounds(act.Date)
	doc := &gogpx.GPX{
		Creator:     creator,
		Version:     "1.1",
		Name:        act.Name,
		Description: act.Description,
		Time:        &start,
		Tracks: []gogpx.GPXTrack{{
			Name:        act.Name,
			Description: act.Description,
			Type:        act.Type,
			Segments:    []gogpx.GPXTrackSegment{segment},
		}},
	}
	return doc, nil
}

// Encode serializes the document as GPX 1.1.
func Encode(doc *gogpx.GPX) ([]byte, error) {
	payload, err := doc.ToXml(gogpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return nil, fmt.Errorf("encode gpx: %w", err)
	}
	return payload, nil
}

// WriteFile stores an encoded payload on disk.
func WriteFile(path string, payload []byte) error {
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write gpx %s: %w", path, err)
	}
	return nil
}
