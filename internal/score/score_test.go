package score

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nir0k/igc2strava/internal/igc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEngine struct {
	resp Response
	err  error
	got  Request
}

func (s *stubEngine) Evaluate(_ context.Context, req Request) (Response, error) {
	s.got = req
	return s.resp, s.err
}

var sampleTrack = igc.Tracklog{
	{Latitude: 46.0, Longitude: 7.0, Altitude: 1200, Time: 11*time.Hour + 1*time.Minute + 35*time.Second},
	{Latitude: 46.1, Longitude: 7.1, Altitude: 800, Time: 12 * time.Hour},
}

func TestScoreTriangleUsesSubType(t *testing.T) {
	engine := &stubEngine{resp: Response{
		Score:        84.3,
		Type:         "triangle",
		TriangleType: "closedFAI",
		Properties:   Properties{TotalDistance: 52.69},
	}}

	res, err := New(engine).Score(context.Background(), sampleTrack)
	require.NoError(t, err)

	assert.Equal(t, ShapeClosedFAI, res.Shape)
	assert.Equal(t, 84.3, res.Score)
	assert.Equal(t, 52.69, res.Distance)

	assert.True(t, engine.got.Optimize)
	assert.Equal(t, Rules, engine.got.Rules)
	require.Len(t, engine.got.Points, 2)
	assert.Equal(t, Fix{Lat: 46.0, Lon: 7.0, Alt: 1200, Time: "11:01:35"}, engine.got.Points[0])
}

func TestScoreNonTriangleUsesType(t *testing.T) {
	engine := &stubEngine{resp: Response{Type: "free_distance", TriangleType: "FAI"}}

	res, err := New(engine).Score(context.Background(), sampleTrack)
	require.NoError(t, err)
	assert.Equal(t, ShapeFreeDistance, res.Shape)
}

func TestScoreEngineFailure(t *testing.T) {
	boom := errors.New("boom")
	_, err := New(&stubEngine{err: boom}).Score(context.Background(), sampleTrack)
	assert.ErrorIs(t, err, boom)
}

func TestScoreEmptyTrack(t *testing.T) {
	engine := &stubEngine{}
	_, err := New(engine).Score(context.Background(), nil)
	assert.ErrorIs(t, err, igc.ErrEmptyTrack)
	assert.Nil(t, engine.got.Points)
}

func TestRulesTable(t *testing.T) {
	expected := map[string]float64{
		"flat":       1.2,
		"FAI":        1.4,
		"closedFAI":  1.6,
		"closedFlat": 1.4,
		"freeFlight": 1.0,
		"outReturn":  1.2,
	}
	require.Len(t, Rules, len(expected))
	for name, mult := range expected {
		assert.Equal(t, mult, Rules[name].Multiplier, name)
	}
}
