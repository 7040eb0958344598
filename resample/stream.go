// Package resample converts paths on the sphere into planar polylines that stay
// within a bounded distance of the projected great-circle arcs between their vertices.
package resample

// DefaultElevation is the elevation to pass for points that have none.
const DefaultElevation = 0.0

// Projection maps a longitude and latitude (radians) and an elevation onto the plane.
// It must be pure: the resampler calls it for every input point and for every midpoint it creates.
type Projection func(lambda, phi, h float64) (x, y float64)

// Stream is the destination for planar geometry.
type Stream interface {
	Point(x, y float64)
	LineStart()
	LineEnd()
	PolygonStart()
	PolygonEnd()
}

// SphereStream accepts the same structuring events as Stream, with points given in spherical coordinates.
type SphereStream interface {
	Point(lambda, phi, h float64)
	LineStart()
	LineEnd()
	PolygonStart()
	PolygonEnd()
}

// Transform wraps a sink, returning a SphereStream that projects (and possibly resamples) into it.
// Every call returns a stream with its own state, so use one per geometry stream.
type Transform func(sink Stream) SphereStream
