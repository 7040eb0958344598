package renderer

import (
	"time"

	g2s "github.com/ONSdigital/dp-geo-resampler/geojson2svg"
	"github.com/ONSdigital/dp-geo-resampler/health"
	"github.com/ONSdigital/dp-geo-resampler/models"
	"github.com/ONSdigital/go-ns/log"
	"github.com/paulmach/go.geojson"
)

// Resample projects every feature of the request's geography into the output plane, resampling lines and rings
// to the request's precision. Feature ids and properties are carried over unchanged.
func Resample(request *models.ResampleRequest) (*models.ResampleResponse, error) {
	defer health.TrackTime(time.Now(), "renderer.Resample")

	svgRequest, err := PrepareSVGRequest(request)
	if err != nil {
		return nil, err
	}

	transform := svgRequest.svg.Transform(svgRequest.width, svgRequest.height, svgRequest.projection,
		g2s.WithPadding(svgRequest.padding()),
		g2s.WithPrecision(svgRequest.precision))

	fc := geojson.NewFeatureCollection()
	points := 0
	for _, f := range svgRequest.geoJSON.Features {
		g, n := g2s.Project(f.Geometry, transform)
		points += n
		if g == nil {
			log.Debug("feature has no geometry to resample", log.Data{"id": f.ID})
			continue
		}
		out := geojson.NewFeature(g)
		out.ID = f.ID
		out.Properties = f.Properties
		fc.AddFeature(out)
	}

	return &models.ResampleResponse{
		Projection:   request.Projection,
		Precision:    svgRequest.precision,
		Width:        svgRequest.width,
		Height:       svgRequest.height,
		FeatureCount: len(fc.Features),
		PointCount:   points,
		GeoJSON:      fc,
	}, nil
}
