package igc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedTelemetry is returned when a telemetry comment has no integer value.
var ErrMalformedTelemetry = errors.New("malformed telemetry comment")

// SkyDrop variometers log their extremes in cm/s as L records.
const (
	MarkerClimbMax = "SKYDROP-CLIMB-MAX-cm"
	MarkerSinkMax  = "SKYDROP-SINK-MAX-cm"
)

// Telemetry finds the first comment containing marker and returns the integer
// that follows its colon separator.
func (m Metadata) Telemetry(marker string) (int, bool, error) {
	for _, comment := range m.Comments {
		if !strings.Contains(comment, marker) {
			continue
		}
		_, raw, ok := strings.Cut(comment, ":")
		if !ok {
			return 0, true, fmt.Errorf("%w: %q", ErrMalformedTelemetry, comment)
		}
		val, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return 0, true, fmt.Errorf("%w: %q", ErrMalformedTelemetry, comment)
		}
		return val, true, nil
	}
	return 0, false, nil
}

// MaxClimb returns the recorded maximum climb rate in m/s.
func (m Metadata) MaxClimb() (float64, bool, error) {
	return m.rate(MarkerClimbMax)
}

// MaxSink returns the recorded maximum sink rate in m/s.
func (m Metadata) MaxSink() (float64, bool, error) {
	return m.rate(MarkerSinkMax)
}

func (m Metadata) rate(marker string) (float64, bool, error) {
	cm, found, err := m.Telemetry(marker)
	if err != nil || !found {
		return 0, found, err
	}
	return float64(cm) / 100, true, nil
}
