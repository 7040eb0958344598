// Package geojson2svg provides the SVG type to convert geojson
// geometries, features and featurecollections into a SVG image,
// projecting and resampling them on the way.
//
// See the tests for usage examples.
package geojson2svg

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/ONSdigital/dp-geo-resampler/projection"
	"github.com/ONSdigital/dp-geo-resampler/resample"
	"github.com/paulmach/go.geojson"
)

type ElementType int

const (
	Geometry          ElementType = iota
	Feature           ElementType = iota
	FeatureCollection ElementType = iota
)

const newline = "\n"

// Padding represents the possible padding of the SVG.
type Padding = projection.Padding

// SVG represents the SVG that should be created.
// Use the New function to create a SVG. New will handle the default values.
//
// default padding (top: 0, right: 0, bottom: 0, left: 0)
//
// default properties (class)
//
// default attributes ()
//
// default precision (0, no resampling)
type SVG struct {
	useProp    func(string) bool
	padding    Padding
	attributes map[string]string
	elements   []*SVGElement
	titleProp  string
	precision  float64
}

// SVGElement represents a single element of an SVG - a Geometry, Feature or FeatureCollection
type SVGElement struct {
	geometry          *geojson.Geometry
	feature           *geojson.Feature
	featureCollection *geojson.FeatureCollection
	elementType       ElementType
}

// An Option represents a single SVG option.
type Option func(*SVG)

// New returns a new SVG that can be used to to draw geojson geometries,
// features and featurecollections.
func New() *SVG {
	return &SVG{
		useProp:    func(prop string) bool { return prop == "class" },
		titleProp:  "",
		attributes: make(map[string]string),
	}
}

// Draw renders the final SVG with the given options to a string.
// Longitude and latitude are used directly as x and y, scaled to fit into the svg.
func (svg *SVG) Draw(width, height float64, opts ...Option) string {
	return svg.DrawWithProjection(width, height, projection.Equirectangular(), opts...)
}

// DrawWithProjection renders the final SVG with the given options to a string.
// All coordinates will be converted by the given projection, then scaled to fit into the svg.
// With a positive precision, lines and rings are resampled so they stay within precision pixels of the projected great-circle arcs.
func (svg *SVG) DrawWithProjection(width, height float64, p projection.Transform, opts ...Option) string {
	transform := svg.Transform(width, height, p, opts...)

	content := bytes.NewBufferString("")
	svg.eachGeometry(func(g *geojson.Geometry, f *geojson.Feature) {
		attributes, title := "", ""
		if f != nil {
			attributes, title = getFeatureAttributesAndTitle(svg.useProp, svg.titleProp, f)
		}
		process(transform, content, g, attributes, title)
	})

	attributes := makeAttributes(svg.attributes)
	return fmt.Sprintf(`<svg width="%g" height="%g"%s>%s%s</svg>`, width, height, attributes, content, newline)
}

// Transform applies the options and returns the stream transform used to draw the svg:
// the projection, fitted into width and height, resampled to the svg's precision.
func (svg *SVG) Transform(width, height float64, p projection.Transform, opts ...Option) resample.Transform {
	for _, o := range opts {
		o(svg)
	}

	fit := projection.Fit(svg.bounds(p), width, height, svg.padding)
	return resample.New(projection.Compose(p, fit).Projection(), svg.precision*svg.precision)
}

// AppendGeometry adds a geojson Geometry to the svg.
func (svg *SVG) AppendGeometry(g *geojson.Geometry) {
	svg.elements = append(svg.elements, &SVGElement{geometry: g, elementType: Geometry})
}

// AppendFeature adds a geojson Feature to the svg.
func (svg *SVG) AppendFeature(f *geojson.Feature) {
	svg.elements = append(svg.elements, &SVGElement{feature: f, elementType: Feature})
}

// AppendFeatureCollection adds a geojson FeatureCollection to the svg.
func (svg *SVG) AppendFeatureCollection(fc *geojson.FeatureCollection) {
	svg.elements = append(svg.elements, &SVGElement{featureCollection: fc, elementType: FeatureCollection})
}

// WithAttribute adds the key value pair as attribute to the
// resulting SVG root element.
func WithAttribute(k, v string) Option {
	return func(svg *SVG) {
		svg.attributes[k] = v
	}
}

// WithAttributes adds the map of key value pairs as attributes to the
// resulting SVG root element.
func WithAttributes(as map[string]string) Option {
	return func(svg *SVG) {
		for k, v := range as {
			svg.attributes[k] = v
		}
	}
}

// WithPadding configures the SVG to use the specified padding.
func WithPadding(p Padding) Option {
	return func(svg *SVG) {
		svg.padding = p
	}
}

// WithTitles configures the SVG to include a title element for each feature with the given property.
func WithTitles(titleProperty string) Option {
	return func(svg *SVG) {
		svg.titleProp = titleProperty
	}
}

// WithPrecision sets the greatest distance, in pixels, that a drawn line may stray from the projected arc it stands for.
// Zero turns resampling off.
func WithPrecision(precision float64) Option {
	return func(svg *SVG) {
		svg.precision = precision
	}
}

// UseProperties configures which geojson properties should be copied to the
// resulting SVG element.
func UseProperties(props []string) Option {
	return func(svg *SVG) {
		svg.useProp = func(prop string) bool {
			for _, p := range props {
				if p == prop {
					return true
				}
			}
			return false
		}
	}
}

// eachGeometry calls fn for every top level geometry, with its feature if it has one.
func (svg *SVG) eachGeometry(fn func(*geojson.Geometry, *geojson.Feature)) {
	for _, e := range svg.elements {
		switch e.elementType {
		case Geometry:
			fn(e.geometry, nil)
		case Feature:
			fn(e.feature.Geometry, e.feature)
		case FeatureCollection:
			for _, f := range e.featureCollection.Features {
				fn(f.Geometry, f)
			}
		}
	}
}

// bounds returns the extent of every position of the svg's geometries under the projection.
func (svg *SVG) bounds(p projection.Transform) projection.Bounds {
	sink := newBoundsSink()
	stream := resample.New(p.Projection(), 0)(sink)
	svg.eachGeometry(func(g *geojson.Geometry, _ *geojson.Feature) {
		StreamGeometry(g, stream)
	})
	return sink.bounds
}

func process(t resample.Transform, w io.Writer, g *geojson.Geometry, attributes string, title string) {
	if g == nil {
		return
	}
	switch {
	case g.IsPoint():
		drawPoints(t, w, g, attributes, title)
	case g.IsMultiPoint():
		openGroup(w, attributes, title)
		drawPoints(t, w, g, "", "")
		fmt.Fprintf(w, `%s</g>`, newline)
	case g.IsLineString(), g.IsPolygon():
		drawPath(t, w, g, attributes, title)
	case g.IsMultiLineString():
		openGroup(w, attributes, title)
		for _, l := range g.MultiLineString {
			drawPath(t, w, geojson.NewLineStringGeometry(l), "", "")
		}
		fmt.Fprintf(w, `%s</g>`, newline)
	case g.IsMultiPolygon():
		openGroup(w, attributes, title)
		for _, p := range g.MultiPolygon {
			drawPath(t, w, geojson.NewPolygonGeometry(p), "", "")
		}
		fmt.Fprintf(w, `%s</g>`, newline)
	case g.IsCollection():
		openGroup(w, attributes, title)
		for _, x := range g.Geometries {
			process(t, w, x, "", "")
		}
		fmt.Fprintf(w, `%s</g>`, newline)
	}
}

func openGroup(w io.Writer, attributes string, title string) {
	fmt.Fprintf(w, `%s<g%s>`, newline, attributes)
	if len(title) > 0 {
		fmt.Fprintf(w, `%s<title>%s</title>`, newline, title)
	}
}

// drawPoints draws a circle for each position of a point or multipoint geometry.
func drawPoints(t resample.Transform, w io.Writer, g *geojson.Geometry, attributes string, title string) {
	sink := &pathSink{}
	StreamGeometry(g, t(sink))
	for i, p := range sink.points {
		if i > 0 {
			attributes, title = "", ""
		}
		fmt.Fprintf(w, `%s<circle cx="%f" cy="%f" r="1"%s%s`, newline, p[0], p[1], attributes, endTag("circle", title))
	}
}

// drawPath draws a linestring or polygon as a single path.
func drawPath(t resample.Transform, w io.Writer, g *geojson.Geometry, attributes string, title string) {
	sink := &pathSink{}
	StreamGeometry(g, t(sink))
	fmt.Fprintf(w, `%s<path d="%s"%s%s`, newline, sink, attributes, endTag("path", title))
}

// endTag creates an end tag string, "/>" if title is empty, "><title>title</title></tag>" otherwise.
func endTag(tag string, title string) string {
	if len(title) > 0 {
		return fmt.Sprintf("><title>%s</title></%s>", title, tag)
	}
	return "/>"
}

// getFeatureAttributesAndTitle converts the properties of the feature into a string of attributes, and extracts the title property into a string
func getFeatureAttributesAndTitle(useProp func(string) bool, titleProp string, feature *geojson.Feature) (string, string) {
	attrs := make(map[string]string)
	id, isString := feature.ID.(string)
	if isString && len(id) > 0 {
		attrs["id"] = id
	}
	for k, v := range feature.Properties {
		if useProp(k) {
			attrs[k] = fmt.Sprintf("%v", v)
		}
	}
	titleString := ""
	if title, ok := feature.Properties[titleProp]; ok {
		titleString = fmt.Sprintf("%v", title)
	}
	return makeAttributes(attrs), titleString
}

// makeAttributes converts the given map into a string with each key="value" pair in sorted order
func makeAttributes(as map[string]string) string {
	keys := make([]string, 0, len(as))
	for k := range as {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	res := bytes.NewBufferString("")
	for _, k := range keys {
		fmt.Fprintf(res, ` %s="%s"`, k, as[k])
	}
	return res.String()
}

// GetHeightForWidth returns an appropriate height given a desired width.
func (svg *SVG) GetHeightForWidth(width float64, p projection.Transform) float64 {
	b := svg.bounds(p)
	if b.Empty() || b.Width() == 0 {
		return width
	}
	return math.Floor((width * b.Height() / b.Width()) + .5)
}
