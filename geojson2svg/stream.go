package geojson2svg

import (
	"github.com/ONSdigital/dp-geo-resampler/projection"
	"github.com/ONSdigital/dp-geo-resampler/resample"
	"github.com/paulmach/go.geojson"
)

// StreamGeometry sends the geometry to s as stream events.
// Positions are longitude, latitude in degrees with an optional elevation, and are passed on in radians.
// Polygon rings are sent without their closing position, since the stream closes rings itself.
func StreamGeometry(g *geojson.Geometry, s resample.SphereStream) {
	if g == nil {
		return
	}
	switch {
	case g.IsPoint():
		streamPoint(g.Point, s)
	case g.IsMultiPoint():
		for _, p := range g.MultiPoint {
			streamPoint(p, s)
		}
	case g.IsLineString():
		streamLine(g.LineString, s, false)
	case g.IsMultiLineString():
		for _, l := range g.MultiLineString {
			streamLine(l, s, false)
		}
	case g.IsPolygon():
		streamPolygon(g.Polygon, s)
	case g.IsMultiPolygon():
		for _, p := range g.MultiPolygon {
			streamPolygon(p, s)
		}
	case g.IsCollection():
		for _, x := range g.Geometries {
			StreamGeometry(x, s)
		}
	}
}

func streamPoint(p []float64, s resample.SphereStream) {
	if len(p) < 2 {
		return
	}
	h := resample.DefaultElevation
	if len(p) > 2 {
		h = p[2]
	}
	s.Point(projection.Radians(p[0]), projection.Radians(p[1]), h)
}

func streamLine(ps [][]float64, s resample.SphereStream, closed bool) {
	if closed && len(ps) > 1 && samePosition(ps[0], ps[len(ps)-1]) {
		ps = ps[:len(ps)-1]
	}
	s.LineStart()
	for _, p := range ps {
		streamPoint(p, s)
	}
	s.LineEnd()
}

func streamPolygon(rings [][][]float64, s resample.SphereStream) {
	s.PolygonStart()
	for _, r := range rings {
		streamLine(r, s, true)
	}
	s.PolygonEnd()
}

func samePosition(a, b []float64) bool {
	if len(a) < 2 || len(b) < 2 {
		return false
	}
	return a[0] == b[0] && a[1] == b[1]
}
