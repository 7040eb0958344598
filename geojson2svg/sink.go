package geojson2svg

import (
	"bytes"
	"fmt"

	"github.com/ONSdigital/dp-geo-resampler/projection"
	"github.com/ONSdigital/dp-geo-resampler/resample"
	"github.com/paulmach/go.geojson"
)

// pathSink writes the lines it receives as SVG path data, keeping standalone points aside.
type pathSink struct {
	path      bytes.Buffer
	points    [][2]float64
	inLine    bool
	inPolygon bool
	pending   bool // a line has started but has no points yet
}

func (p *pathSink) Point(x, y float64) {
	if !p.inLine {
		p.points = append(p.points, [2]float64{x, y})
		return
	}
	if p.pending {
		if p.path.Len() > 0 {
			p.path.WriteString(" ")
		}
		p.path.WriteString("M")
		p.pending = false
	} else {
		p.path.WriteString(",")
	}
	fmt.Fprintf(&p.path, "%f %f", x, y)
}

func (p *pathSink) LineStart() {
	p.inLine = true
	p.pending = true
}

func (p *pathSink) LineEnd() {
	if p.inPolygon && !p.pending {
		p.path.WriteString(" Z")
	}
	p.inLine = false
	p.pending = false
}

func (p *pathSink) PolygonStart() { p.inPolygon = true }
func (p *pathSink) PolygonEnd()   { p.inPolygon = false }

func (p *pathSink) String() string { return p.path.String() }

// boundsSink records the extent of every point it receives.
type boundsSink struct {
	bounds projection.Bounds
}

func newBoundsSink() *boundsSink {
	return &boundsSink{bounds: projection.NewBounds()}
}

func (b *boundsSink) Point(x, y float64) { b.bounds.Extend(x, y) }
func (b *boundsSink) LineStart()         {}
func (b *boundsSink) LineEnd()           {}
func (b *boundsSink) PolygonStart()      {}
func (b *boundsSink) PolygonEnd()        {}

// GeometrySink collects planar output as geojson coordinates.
// Rings are closed explicitly, as geojson requires.
type GeometrySink struct {
	Points   [][]float64
	Lines    [][][]float64
	Polygons [][][][]float64

	line      [][]float64
	rings     [][][]float64
	inLine    bool
	inPolygon bool
	count     int
}

func (g *GeometrySink) Point(x, y float64) {
	g.count++
	if g.inLine {
		g.line = append(g.line, []float64{x, y})
		return
	}
	g.Points = append(g.Points, []float64{x, y})
}

func (g *GeometrySink) LineStart() {
	g.line = nil
	g.inLine = true
}

func (g *GeometrySink) LineEnd() {
	g.inLine = false
	if !g.inPolygon {
		g.Lines = append(g.Lines, g.line)
		return
	}
	if len(g.line) > 0 {
		first := g.line[0]
		g.line = append(g.line, []float64{first[0], first[1]})
	}
	g.rings = append(g.rings, g.line)
}

func (g *GeometrySink) PolygonStart() {
	g.rings = nil
	g.inPolygon = true
}

func (g *GeometrySink) PolygonEnd() {
	g.inPolygon = false
	g.Polygons = append(g.Polygons, g.rings)
}

// Count is the number of points received, not counting the positions added to close rings.
func (g *GeometrySink) Count() int {
	return g.count
}

// Project streams g through t and returns the planar result with the same geometry type.
// It also returns the number of points emitted.
func Project(g *geojson.Geometry, t resample.Transform) (*geojson.Geometry, int) {
	if g == nil {
		return nil, 0
	}
	if g.IsCollection() {
		n := 0
		parts := make([]*geojson.Geometry, 0, len(g.Geometries))
		for _, x := range g.Geometries {
			p, c := Project(x, t)
			if p != nil {
				parts = append(parts, p)
			}
			n += c
		}
		return geojson.NewCollectionGeometry(parts...), n
	}

	sink := &GeometrySink{}
	StreamGeometry(g, t(sink))

	switch {
	case g.IsPoint() && len(sink.Points) == 1:
		return geojson.NewPointGeometry(sink.Points[0]), sink.Count()
	case g.IsMultiPoint():
		return geojson.NewMultiPointGeometry(sink.Points...), sink.Count()
	case g.IsLineString() && len(sink.Lines) == 1:
		return geojson.NewLineStringGeometry(sink.Lines[0]), sink.Count()
	case g.IsMultiLineString():
		return geojson.NewMultiLineStringGeometry(sink.Lines...), sink.Count()
	case g.IsPolygon() && len(sink.Polygons) == 1:
		return geojson.NewPolygonGeometry(sink.Polygons[0]), sink.Count()
	case g.IsMultiPolygon():
		return geojson.NewMultiPolygonGeometry(sink.Polygons...), sink.Count()
	}
	return nil, sink.Count()
}
