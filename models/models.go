package models

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"math"

	"github.com/ONSdigital/dp-geo-resampler/projection"
	"github.com/ONSdigital/go-ns/log"
	"github.com/json-iterator/go"
	"github.com/paulmach/go.geojson"
	"github.com/rubenv/topojson"
)

// A list of errors returned from package
var (
	ErrorReadingBody       = errors.New("Failed to read message body")
	ErrorNoData            = errors.New("Bad request - Missing data in body")
	ErrorNoGeography       = errors.New("Bad request - geography contains no features")
	ErrorInvalidPrecision  = errors.New("Bad request - precision must be a finite number >= 0")
	ErrorInvalidDimensions = errors.New("Bad request - width, height and padding must be finite numbers >= 0")
)

// ResampleRequest represents a structure for a projection and resampling job
type ResampleRequest struct {
	Title      string     `json:"title,omitempty"`
	Source     string     `json:"source,omitempty"`
	SourceLink string     `json:"source_link,omitempty"`
	Filename   string     `json:"filename,omitempty"`
	Projection string     `json:"projection,omitempty"` // one of projection.Names(). Defaults to the configured projection.
	Precision  *float64   `json:"precision,omitempty"`  // the greatest distance, in output units, between a drawn line and its projected arc. 0 turns resampling off.
	Width      float64    `json:"width,omitempty"`      // width of the output. Defaults to 400.
	Height     float64    `json:"height,omitempty"`     // height of the output. Defaults to a height that keeps the aspect ratio of the geography.
	Padding    float64    `json:"padding,omitempty"`    // space left on every side of the output
	Geography  *Geography `json:"geography,omitempty"`
}

// Geography holds the input geometry, either as a topojson topology or a geojson feature collection,
// and the names of the properties that identify and name each feature.
type Geography struct {
	Topojson     *topojson.Topology         `json:"topojson,omitempty"`
	GeoJSON      *geojson.FeatureCollection `json:"geojson,omitempty"`
	IDProperty   string                     `json:"id_property,omitempty"`
	NameProperty string                     `json:"name_property,omitempty"`
}

// ResampleResponse is the result of resampling a geography: its features in plane coordinates.
type ResampleResponse struct {
	Projection   string                     `json:"projection"`
	Precision    float64                    `json:"precision"`
	Width        float64                    `json:"width"`
	Height       float64                    `json:"height"`
	FeatureCount int                        `json:"feature_count"`
	PointCount   int                        `json:"point_count"`
	GeoJSON      *geojson.FeatureCollection `json:"geojson"`
}

// CreateResampleRequest manages the creation of a ResampleRequest from a reader
func CreateResampleRequest(reader io.Reader) (*ResampleRequest, error) {

	bytes, err := ioutil.ReadAll(reader)
	if err != nil {
		log.Error(err, log.Data{"request_body": string(bytes)})
		return nil, ErrorReadingBody
	}

	var request ResampleRequest
	err = jsoniter.Unmarshal(bytes, &request)
	if err != nil {
		log.Error(err, log.Data{"request_body": string(bytes)})
		return nil, err
	}

	// This should be the last check before returning ResampleRequest
	if len(bytes) == 2 {
		return &request, ErrorNoData
	}

	return &request, nil
}

// WithDefaults fills in the projection and precision if the request did not specify them.
func (r *ResampleRequest) WithDefaults(projectionName string, precision float64) *ResampleRequest {
	if len(r.Projection) == 0 {
		r.Projection = projectionName
	}
	if r.Precision == nil {
		r.Precision = &precision
	}
	return r
}

// ValidateResampleRequest checks the content of the request structure
func (r *ResampleRequest) ValidateResampleRequest() error {

	var missingFields []string

	if r.Geography == nil {
		missingFields = append(missingFields, "geography")
	} else if r.Geography.Topojson == nil && r.Geography.GeoJSON == nil {
		missingFields = append(missingFields, "geography.topojson or geography.geojson")
	}

	if missingFields != nil {
		return fmt.Errorf("Missing mandatory field(s): %v", missingFields)
	}

	if r.Precision != nil && !isNonNegative(*r.Precision) {
		return ErrorInvalidPrecision
	}
	if !isNonNegative(r.Width) || !isNonNegative(r.Height) || !isNonNegative(r.Padding) {
		return ErrorInvalidDimensions
	}
	if len(r.Projection) > 0 {
		if _, err := projection.Lookup(r.Projection); err != nil {
			return err
		}
	}

	return nil
}

// FeatureCollection returns the geography as geojson, converting it from topojson if necessary.
// Returns nil if the request has no usable geography.
func (r *ResampleRequest) FeatureCollection() *geojson.FeatureCollection {
	if r.Geography == nil {
		return nil
	}
	if r.Geography.GeoJSON != nil {
		return r.Geography.GeoJSON
	}
	t := r.Geography.Topojson
	if t == nil || len(t.Objects) == 0 {
		return nil
	}
	return t.ToGeoJSON()
}

func isNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}
