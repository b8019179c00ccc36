package domain

import "fmt"

// Segment is an atomic stretch of the route with fixed physical attributes.
// Segments are traversed in order; each one is a single step of the simulation.
type Segment struct {
	DistanceM       float64
	ElevationDeltaM float64
	SpeedLimitKmh   float64
	IsStop          bool
}

// NewSegment validates the physical attributes and returns a Segment.
func NewSegment(distanceM, elevationDeltaM, speedLimitKmh float64, isStop bool) (Segment, error) {
	if distanceM < 0 {
		return Segment{}, fmt.Errorf("new segment: distance_m must be non-negative, got %v", distanceM)
	}
	if speedLimitKmh <= 0 {
		return Segment{}, fmt.Errorf("new segment: speed_limit_kmh must be positive, got %v", speedLimitKmh)
	}
	return Segment{
		DistanceM:       distanceM,
		ElevationDeltaM: elevationDeltaM,
		SpeedLimitKmh:   speedLimitKmh,
		IsStop:          isStop,
	}, nil
}

// SpeedMS returns the segment's cruising speed proxy in m/s.
func (s Segment) SpeedMS() float64 { return s.SpeedLimitKmh / 3.6 }

// Route is the ordered sequence of segments a bus traverses each day.
// The order is semantically meaningful (traversal order). A Route is
// immutable planning data; the simulation only reads it.
type Route struct {
	Name     string
	Segments []Segment
}

// NewRoute builds a Route from validated segments.
func NewRoute(name string, segments []Segment) (Route, error) {
	if len(segments) == 0 {
		return Route{}, fmt.Errorf("new route %q: route must contain at least one segment", name)
	}
	for i, seg := range segments {
		if _, err := NewSegment(seg.DistanceM, seg.ElevationDeltaM, seg.SpeedLimitKmh, seg.IsStop); err != nil {
			return Route{}, fmt.Errorf("new route %q: segment %d: %w", name, i, err)
		}
	}
	return Route{Name: name, Segments: segments}, nil
}

// LengthM returns the total route length in metres.
func (r Route) LengthM() float64 {
	var total float64
	for _, seg := range r.Segments {
		total += seg.DistanceM
	}
	return total
}

// LengthKm returns the total route length in kilometres.
func (r Route) LengthKm() float64 { return r.LengthM() / 1000 }
