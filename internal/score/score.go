package score

import (
	"context"
	"errors"
	"fmt"

	"github.com/nir0k/igc2strava/internal/igc"
)

// Shape is the flight shape classification reported by the scoring engine.
type Shape string

const (
	ShapeFlat         Shape = "flat"
	ShapeFAI          Shape = "FAI"
	ShapeClosedFAI    Shape = "closedFAI"
	ShapeClosedFlat   Shape = "closedFlat"
	ShapeFreeDistance Shape = "free_distance"
	ShapeOutAndReturn Shape = "out_and_return"
)

const triangleType = "triangle"

// Rule configures how one flight shape is scored.
type Rule struct {
	Multiplier float64 `json:"multiplier"`
}

// Rules is the multiplier table handed to the engine on every run.
var Rules = map[string]Rule{
	"flat":       {Multiplier: 1.2},
	"FAI":        {Multiplier: 1.4},
	"closedFAI":  {Multiplier: 1.6},
	"closedFlat": {Multiplier: 1.4},
	"freeFlight": {Multiplier: 1.0},
	"outReturn":  {Multiplier: 1.2},
}

// Result is the outcome of scoring one flight.
type Result struct {
	Score    float64
	Shape    Shape
	Distance float64
}

// Request is the input passed to a scoring engine.
type Request struct {
	Rules    map[string]Rule `json:"rules"`
	Optimize bool            `json:"track_optimization"`
	Points   []Fix           `json:"points"`
}

// Fix is a tracklog point in engine wire form.
type Fix struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Alt  float64 `json:"alt"`
	Time string  `json:"time"`
}

// Response is what a scoring engine reports.
type Response struct {
	Score        float64    `json:"score"`
	Type         string     `json:"type"`
	TriangleType string     `json:"triangle_type"`
	Properties   Properties `json:"properties"`
}

// Properties carries the measured flight geometry.
type Properties struct {
	TotalDistance float64 `json:"total_distance"`
}

// Engine evaluates a flight against a rule table.
type Engine interface {
	Evaluate(ctx context.Context, req Request) (Response, error)
}

// Scorer adapts an Engine to the fixed rule table.
type Scorer struct {
	engine Engine
}

// New returns a Scorer backed by the given engine.
func New(engine Engine) *Scorer {
	return &Scorer{engine: engine}
}

// Score evaluates the tracklog with optimization enabled.
func (s *Scorer) Score(ctx context.Context, track igc.Tracklog) (Result, error) {
	if len(track) == 0 {
		return Result{}, igc.ErrEmptyTrack
	}
	if s.engine == nil {
		return Result{}, errors.New("no scoring engine configured")
	}

	resp, err := s.engine.Evaluate(ctx, Request{
		Rules:    Rules,
		Optimize: true,
		Points:   toFixes(track),
	})
	if err != nil {
		return Result{}, fmt.Errorf("evaluate flight: %w", err)
	}

	shape := resp.Type
	if shape == triangleType {
		shape = resp.TriangleType
	}

	return Result{
		Score:    resp.Score,
		Shape:    Shape(shape),
		Distance: resp.Properties.TotalDistance,
	}, nil
}

func toFixes(track igc.Tracklog) []Fix {
	fixes := make([]Fix, 0, len(track))
	for _, p := range track {
		fixes = append(fixes, Fix{
			Lat:  p.Latitude,
			Lon:  p.Longitude,
			Alt:  p.Altitude,
			Time: formatClock(p),
		})
	}
	return fixes
}

func formatClock(p igc.Point) string {
	secs := int(p.Time.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}
