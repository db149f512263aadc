package igc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleIGC = "AXSDSkyDrop\r\n" +
	"HFDTE150723\r\n" +
	"HFPLTPILOTINCHARGE:Jane Doe\r\n" +
	"HFGTYGLIDERTYPE:Ozone Rush 5\r\n" +
	"B1101354600000N00700000EA0115001200\r\n" +
	"B1115004601000N00701000EA0150001550\r\n" +
	"B1130004602000N00702000EA0079000800\r\n" +
	"LXSDSKYDROP-CLIMB-MAX-cm:250\r\n" +
	"LXSDSKYDROP-SINK-MAX-cm: -410\r\n"

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flight.igc")
	require.NoError(t, os.WriteFile(path, []byte(sampleIGC), 0o644))

	flight, err := ParseFile(path)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2023, time.July, 15, 0, 0, 0, 0, time.UTC), flight.Date)
	assert.Equal(t, "Ozone Rush 5", flight.GliderType)
	require.Equal(t, 3, flight.Tracklog.PointCount())

	first := flight.Tracklog[0]
	assert.InDelta(t, 46.0, first.Latitude, 1e-9)
	assert.InDelta(t, 7.0, first.Longitude, 1e-9)
	assert.Equal(t, 1200.0, first.Altitude)
	assert.Equal(t, 11*time.Hour+1*time.Minute+35*time.Second, first.Time)

	require.Len(t, flight.Comments, 2)
	assert.Contains(t, flight.Comments[0], "SKYDROP-CLIMB-MAX-cm:250")
	assert.Contains(t, flight.Comments[1], "SKYDROP-SINK-MAX-cm: -410")

	climb, found, err := flight.MaxClimb()
	require.NoError(t, err)
	assert.True(t, found)
	assert.InDelta(t, 2.5, climb, 1e-9)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "absent.igc"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseWithoutFixes(t *testing.T) {
	_, err := Parse(strings.NewReader("AXSDSkyDrop\r\nHFDTE150723\r\n"))
	assert.ErrorIs(t, err, ErrEmptyTrack)
}

func TestTracklogExtremes(t *testing.T) {
	track := Tracklog{
		{Altitude: 1200},
		{Altitude: 2100},
		{Altitude: 650},
		{Altitude: 800},
	}

	takeoff, err := track.Takeoff()
	require.NoError(t, err)
	landing, err := track.Landing()
	require.NoError(t, err)
	high, err := track.Highest()
	require.NoError(t, err)
	low, err := track.Lowest()
	require.NoError(t, err)

	assert.Equal(t, 1200.0, takeoff.Altitude)
	assert.Equal(t, 800.0, landing.Altitude)
	assert.Equal(t, 2100.0, high.Altitude)
	assert.Equal(t, 650.0, low.Altitude)
}

func TestTracklogEmpty(t *testing.T) {
	var track Tracklog

	_, err := track.Takeoff()
	assert.ErrorIs(t, err, ErrEmptyTrack)
	_, err = track.Landing()
	assert.ErrorIs(t, err, ErrEmptyTrack)
	_, err = track.Highest()
	assert.ErrorIs(t, err, ErrEmptyTrack)
	_, err = track.Lowest()
	assert.ErrorIs(t, err, ErrEmptyTrack)

	start, end := track.Bounds(time.Now())
	assert.True(t, start.IsZero())
	assert.True(t, end.IsZero())
}

func TestPointAt(t *testing.T) {
	date := time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC)
	p := Point{Time: 13*time.Hour + 5*time.Minute + 7*time.Second}

	assert.Equal(t, time.Date(2024, time.May, 3, 13, 5, 7, 0, time.UTC), p.At(date))
}

func TestTelemetry(t *testing.T) {
	meta := Metadata{Comments: []string{
		"XSDFIRMWARE:1.2",
		"XSDSKYDROP-CLIMB-MAX-cm:250",
		"XSDSKYDROP-SINK-MAX-cm: -410",
	}}

	climb, found, err := meta.MaxClimb()
	require.NoError(t, err)
	assert.True(t, found)
	assert.InDelta(t, 2.5, climb, 1e-9)

	sink, found, err := meta.MaxSink()
	require.NoError(t, err)
	assert.True(t, found)
	assert.InDelta(t, -4.1, sink, 1e-9)
}

func TestTelemetryAbsent(t *testing.T) {
	meta := Metadata{Comments: []string{"XSDFIRMWARE:1.2"}}

	_, found, err := meta.MaxClimb()
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTelemetryMalformed(t *testing.T) {
	for _, comment := range []string{"XSDSKYDROP-CLIMB-MAX-cm:fast", "XSDSKYDROP-CLIMB-MAX-cm"} {
		meta := Metadata{Comments: []string{comment}}
		_, found, err := meta.MaxClimb()
		assert.True(t, found, comment)
		assert.ErrorIs(t, err, ErrMalformedTelemetry, comment)
	}
}
