package renderer

import (
	"fmt"
	"strings"
	"time"

	g2s "github.com/ONSdigital/dp-geo-resampler/geojson2svg"
	"github.com/ONSdigital/dp-geo-resampler/health"
	"github.com/ONSdigital/dp-geo-resampler/models"
	"github.com/ONSdigital/dp-geo-resampler/projection"
	"github.com/paulmach/go.geojson"
)

// RegionClassName is the name of the class assigned to all map regions (denoted by features in the input geography)
const RegionClassName = "mapRegion"

// DefaultWidth is the width used when the request does not specify one
const DefaultWidth = 400.0

// SVGRequest wraps a models.ResampleRequest and caches the calculations shared by the svg and resample outputs
type SVGRequest struct {
	request       *models.ResampleRequest
	geoJSON       *geojson.FeatureCollection
	svg           *g2s.SVG
	projection    projection.Transform
	precision     float64
	width, height float64
}

// PrepareSVGRequest wraps the request in an SVGRequest, resolving the projection and the output size up front
func PrepareSVGRequest(request *models.ResampleRequest) (*SVGRequest, error) {
	defer health.TrackTime(time.Now(), "renderer.PrepareSVGRequest")

	p, err := projection.Lookup(request.Projection)
	if err != nil {
		return nil, err
	}

	geoJSON := request.FeatureCollection()
	if geoJSON == nil || len(geoJSON.Features) == 0 {
		return nil, models.ErrorNoGeography
	}

	svg := g2s.New()
	svg.AppendFeatureCollection(geoJSON)

	precision := 0.0
	if request.Precision != nil {
		precision = *request.Precision
	}

	if request.Geography != nil {
		setFeatureIDs(geoJSON.Features, request.Geography.IDProperty, request.Filename+"-")
	}

	width, height := getWidthAndHeight(request, svg, p)

	return &SVGRequest{request: request, geoJSON: geoJSON, svg: svg, projection: p, precision: precision, width: width, height: height}, nil
}

// RenderSVG generates an SVG map for the given request
func RenderSVG(request *models.ResampleRequest) (string, error) {
	defer health.TrackTime(time.Now(), "renderer.RenderSVG")

	svgRequest, err := PrepareSVGRequest(request)
	if err != nil {
		return "", err
	}
	return svgRequest.render(), nil
}

func (s *SVGRequest) render() string {
	request := s.request

	nameProperty := ""
	if request.Geography != nil {
		nameProperty = request.Geography.NameProperty
	}
	setClassProperty(s.geoJSON.Features, RegionClassName)

	return s.svg.DrawWithProjection(s.width, s.height, s.projection,
		g2s.UseProperties([]string{"class"}),
		g2s.WithTitles(nameProperty),
		g2s.WithPadding(s.padding()),
		g2s.WithPrecision(s.precision),
		g2s.WithAttribute("viewBox", fmt.Sprintf("0 0 %g %g", s.width, s.height)))
}

func (s *SVGRequest) padding() g2s.Padding {
	p := s.request.Padding
	return g2s.Padding{Top: p, Right: p, Bottom: p, Left: p}
}

// getWidthAndHeight extracts width and height from the request,
// defaulting the width if missing and determining the height proportionally to the width if missing.
// Padding is kept out of the proportion, so the geography itself keeps its aspect ratio.
func getWidthAndHeight(request *models.ResampleRequest, svg *g2s.SVG, p projection.Transform) (float64, float64) {
	width := request.Width
	if width <= 0 {
		width = DefaultWidth
	}
	height := request.Height
	if height <= 0 {
		inner := width - 2*request.Padding
		if inner > 0 {
			height = svg.GetHeightForWidth(inner, p) + 2*request.Padding
		} else {
			height = width
		}
	}
	return width, height
}

// setFeatureIDs looks in each Feature for a property with the given idProperty, using it as the feature id.
func setFeatureIDs(features []*geojson.Feature, idProperty string, idPrefix string) {
	for _, feature := range features {
		id, isString := feature.Properties[idProperty].(string)
		if isString && len(id) > 0 {
			feature.ID = idPrefix + id
		} else {
			id, isString := feature.ID.(string)
			if isString && len(id) > 0 && !strings.HasPrefix(id, idPrefix) {
				feature.ID = idPrefix + id
			}
		}
	}
}

// setClassProperty populates a class property in each feature with the given class name, keeping any existing class.
func setClassProperty(features []*geojson.Feature, className string) {
	for _, feature := range features {
		if feature.Properties == nil {
			feature.Properties = make(map[string]interface{})
		}
		s := className
		if original, exists := feature.Properties["class"]; exists && original != className {
			s = fmt.Sprintf("%s %v", className, original)
		}
		feature.Properties["class"] = s
	}
}
