package summary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nir0k/igc2strava/internal/igc"
	"github.com/nir0k/igc2strava/internal/score"
)

// ErrUnsupportedShape is returned for flight shapes without a display label.
var ErrUnsupportedShape = errors.New("unsupported flight shape")

const titlePrefix = "🪂 Paragliding / "

var shapeLabels = map[score.Shape]string{
	score.ShapeFlat:         "Flat triangle",
	score.ShapeFAI:          "FAI triangle",
	score.ShapeClosedFAI:    "Closed FAI triangle",
	score.ShapeClosedFlat:   "Closed flat triangle",
	score.ShapeFreeDistance: "Free flight",
}

// Title returns the activity title for a flight shape.
func Title(shape score.Shape) (string, error) {
	label, ok := shapeLabels[shape]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedShape, shape)
	}
	return titlePrefix + label, nil
}

// Description renders the multi-line activity description.
func Description(flight *igc.Flight, res score.Result) (string, error) {
	track := flight.Tracklog
	takeoff, err := track.Takeoff()
	if err != nil {
		return "", err
	}
	landing, err := track.Landing()
	if err != nil {
		return "", err
	}
	highest, err := track.Highest()
	if err != nil {
		return "", err
	}
	lowest, err := track.Lowest()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "XC distance: %.2f km\n", res.Distance)
	fmt.Fprintf(&b, "XC score: %.2f pts\n", res.Score)
	if flight.GliderType != "" {
		fmt.Fprintf(&b, "Glider: %s\n", flight.GliderType)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Takeoff: %.0f m\n", takeoff.Altitude)
	fmt.Fprintf(&b, "Max alt.: %.0f m\n", highest.Altitude)
	fmt.Fprintf(&b, "Min alt.: %.0f m\n", lowest.Altitude)
	fmt.Fprintf(&b, "Landing: %.0f m\n", landing.Altitude)

	vario, err := varioLines(flight.Metadata)
	if err != nil {
		return "", err
	}
	if vario != "" {
		b.WriteString("\n")
		b.WriteString(vario)
	}

	return strings.TrimRight(b.String(), " \t\r\n"), nil
}

func varioLines(meta igc.Metadata) (string, error) {
	var b strings.Builder

	climb, found, err := meta.MaxClimb()
	if err != nil {
		return "", err
	}
	if found {
		fmt.Fprintf(&b, "Max climb: %.2f m/s\n", climb)
	}

	sink, found, err := meta.MaxSink()
	if err != nil {
		return "", err
	}
	if found {
		fmt.Fprintf(&b, "Max sink: %.2f m/s\n", sink)
	}

	return b.String(), nil
}
