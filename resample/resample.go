package resample

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// MaxDepth bounds the recursion for a single input segment, so at most 2^MaxDepth
// planar segments are emitted for it.
const MaxDepth = 16

const epsilon = 1e-6

// segments whose endpoints are further apart than this on the sphere are always split
var cosMinDistance = math.Cos((30 * s1.Degree).Radians())

// New returns a Transform that projects spherical geometry with project.
// A positive delta2 (the squared distance tolerance, in plane units) selects adaptive resampling,
// anything else (zero, negative or NaN) selects a straight pass-through of projected points.
func New(project Projection, delta2 float64) Transform {
	if delta2 > 0 {
		return func(sink Stream) SphereStream {
			return &resampler{project: project, delta2: delta2, sink: sink}
		}
	}
	return func(sink Stream) SphereStream {
		return &passThrough{project: project, sink: sink}
	}
}

// passThrough projects each point and forwards it unchanged.
type passThrough struct {
	project Projection
	sink    Stream
}

func (p *passThrough) Point(lambda, phi, h float64) {
	x, y := p.project(lambda, phi, h)
	p.sink.Point(x, y)
}

func (p *passThrough) LineStart()    { p.sink.LineStart() }
func (p *passThrough) LineEnd()      { p.sink.LineEnd() }
func (p *passThrough) PolygonStart() { p.sink.PolygonStart() }
func (p *passThrough) PolygonEnd()   { p.sink.PolygonEnd() }

type state int

const (
	idle state = iota
	inLine
	inRingFirstPoint
	inRingRest
)

// endpoint holds everything needed to continue subdividing from an already projected point.
type endpoint struct {
	x, y   float64
	lambda float64
	u      r3.Vector
	h      float64
}

// segment is a chord under test, with the recursion budget left for it.
type segment struct {
	a, b  endpoint
	depth int
}

type resampler struct {
	project Projection
	delta2  float64
	sink    Stream

	state   state
	polygon bool
	started bool

	// current is the last accepted point of the line, first the opening point of the ring.
	current endpoint
	first   endpoint
}

func (r *resampler) Point(lambda, phi, h float64) {
	switch r.state {
	case idle:
		x, y := r.project(lambda, phi, h)
		r.sink.Point(x, y)
	case inRingFirstPoint:
		r.ringPoint(lambda, phi, h)
	default:
		r.linePoint(lambda, phi, h)
	}
}

func (r *resampler) LineStart() {
	r.started = false
	if r.polygon {
		r.state = inRingFirstPoint
	} else {
		r.state = inLine
	}
	r.sink.LineStart()
}

func (r *resampler) LineEnd() {
	// an empty ring has nothing to close
	if r.state == inRingRest {
		r.subdivide(segment{a: r.current, b: r.first, depth: MaxDepth})
	}
	r.state = idle
	r.sink.LineEnd()
}

func (r *resampler) PolygonStart() {
	r.sink.PolygonStart()
	r.polygon = true
}

func (r *resampler) PolygonEnd() {
	r.sink.PolygonEnd()
	r.polygon = false
}

func (r *resampler) linePoint(lambda, phi, h float64) {
	p := r.endpointAt(lambda, phi, h)
	if r.started {
		r.subdivide(segment{a: r.current, b: p, depth: MaxDepth})
	}
	r.sink.Point(p.x, p.y)
	r.current = p
	r.started = true
}

func (r *resampler) ringPoint(lambda, phi, h float64) {
	p := r.endpointAt(lambda, phi, h)
	r.current = p
	r.first = p
	r.started = true
	r.sink.Point(p.x, p.y)
	r.state = inRingRest
}

func (r *resampler) endpointAt(lambda, phi, h float64) endpoint {
	x, y := r.project(lambda, phi, h)
	return endpoint{x: x, y: y, lambda: lambda, u: unitVector(lambda, phi), h: h}
}

// subdivide emits the points strictly between s.a and s.b, in order, that are needed
// to keep the polyline within tolerance of the projected arc.
func (r *resampler) subdivide(s segment) {
	dx := s.b.x - s.a.x
	dy := s.b.y - s.a.y
	d2 := dx*dx + dy*dy

	// written so that a NaN distance also stops here
	if !(d2 > 4*r.delta2) || s.depth <= 0 {
		return
	}

	m := midpoint(s.a, s.b)
	m.x, m.y = r.project(m.lambda, latitude(m.u), m.h)

	if !r.needsSplit(s, m, dx, dy, d2) {
		return
	}

	depth := s.depth - 1
	r.subdivide(segment{a: s.a, b: m, depth: depth})
	r.sink.Point(m.x, m.y)
	r.subdivide(segment{a: m, b: s.b, depth: depth})
}

// needsSplit reports whether the chord of s is a poor stand-in for the arc through m.
func (r *resampler) needsSplit(s segment, m endpoint, dx, dy, d2 float64) bool {
	ox := m.x - s.a.x
	oy := m.y - s.a.y

	perpendicular := dy*ox - dx*oy
	if perpendicular*perpendicular/d2 > r.delta2 {
		return true
	}
	if math.Abs((dx*ox+dy*oy)/d2-0.5) > 0.3 {
		return true
	}
	return s.a.u.Dot(s.b.u) < cosMinDistance
}

// midpoint returns the unprojected midpoint of the great-circle arc between a and b.
func midpoint(a, b endpoint) endpoint {
	u := a.u
	sum := a.u.Add(b.u)
	if n := sum.Norm(); n >= epsilon {
		u = sum.Mul(1 / n)
	}

	var lambda float64
	if math.Abs(math.Abs(u.Z)-1) < epsilon || math.Abs(a.lambda-b.lambda) < epsilon {
		lambda = (a.lambda + b.lambda) / 2
	} else {
		lambda = math.Atan2(u.Y, u.X)
	}

	return endpoint{lambda: lambda, u: u, h: (a.h + b.h) / 2}
}

// latitude of a unit vector, clamped against rounding just past the poles
func latitude(u r3.Vector) float64 {
	return math.Asin(math.Max(-1, math.Min(1, u.Z)))
}

func unitVector(lambda, phi float64) r3.Vector {
	return s2.PointFromLatLng(s2.LatLng{Lat: s1.Angle(phi), Lng: s1.Angle(lambda)}).Vector
}
