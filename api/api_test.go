package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ONSdigital/dp-geo-resampler/config"
	"github.com/ONSdigital/dp-geo-resampler/models"
	"github.com/ONSdigital/dp-geo-resampler/testdata"
	"github.com/gorilla/mux"
	"github.com/json-iterator/go"
	. "github.com/smartystreets/goconvey/convey"
)

var (
	host           = "http://localhost:80"
	requestSVGURL  = host + "/render/svg"
	requestHTMLURL = host + "/render/html"
	resampleURL    = host + "/resample"
)

var testConfig = &config.Config{
	DefaultProjection: "mercator",
	DefaultPrecision:  0.5,
	MaxBodyBytes:      1 << 20,
}

func serve(r *http.Request, cfg *config.Config) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	api := routes(mux.NewRouter(), cfg)
	api.router.ServeHTTP(w, r)
	return w
}

func TestSuccessfullyRenderSVGMap(t *testing.T) {
	Convey("Successfully render an svg map", t, func() {
		reader := bytes.NewReader(testdata.LoadExampleRequest(t))
		r, err := http.NewRequest("POST", requestSVGURL, reader)
		So(err, ShouldBeNil)

		w := serve(r, testConfig)
		So(w.Code, ShouldEqual, http.StatusOK)
		So(w.Header().Get("Content-Type"), ShouldEqual, "image/svg+xml")
		So(w.Body.String(), ShouldStartWith, "<svg")
		So(w.Body.String(), ShouldContainSubstring, "<title>Alpha</title>")
	})
}

func TestSuccessfullyRenderHTMLMap(t *testing.T) {
	Convey("Successfully render an html map with an svg image", t, func() {
		reader := bytes.NewReader(testdata.LoadExampleRequest(t))
		r, err := http.NewRequest("POST", requestHTMLURL, reader)
		So(err, ShouldBeNil)

		w := serve(r, testConfig)
		So(w.Code, ShouldEqual, http.StatusOK)
		So(w.Header().Get("Content-Type"), ShouldEqual, "text/html")
		So(w.Body.String(), ShouldStartWith, "<figure")
		So(w.Body.String(), ShouldContainSubstring, "<svg")
		So(w.Body.String(), ShouldContainSubstring, "Regions of the north, 2018")
		So(w.Body.String(), ShouldNotContainSubstring, "[SVG Here]")
	})
}

func TestSuccessfullyResample(t *testing.T) {
	Convey("Successfully resample a geography", t, func() {
		reader := bytes.NewReader(testdata.LoadExampleRequest(t))
		r, err := http.NewRequest("POST", resampleURL, reader)
		So(err, ShouldBeNil)

		w := serve(r, testConfig)
		So(w.Code, ShouldEqual, http.StatusOK)
		So(w.Header().Get("Content-Type"), ShouldEqual, "application/json")

		var response models.ResampleResponse
		So(jsoniter.Unmarshal(w.Body.Bytes(), &response), ShouldBeNil)
		So(response.Projection, ShouldEqual, "orthographic")
		So(response.FeatureCount, ShouldEqual, 2)
		So(response.PointCount, ShouldEqual, 20)
		So(len(response.GeoJSON.Features), ShouldEqual, 2)
	})

	Convey("The configured defaults are used when the request does not specify them", t, func() {
		body := `{"geography": {"geojson": {"type": "FeatureCollection", "features": [
			{"type": "Feature", "properties": {}, "geometry": {"type": "LineString", "coordinates": [[0, 0], [10, 10]]}}
		]}}}`
		r, err := http.NewRequest("POST", resampleURL, strings.NewReader(body))
		So(err, ShouldBeNil)

		cfg := *testConfig
		cfg.DefaultProjection = "equirectangular"
		cfg.DefaultPrecision = 0
		w := serve(r, &cfg)
		So(w.Code, ShouldEqual, http.StatusOK)

		var response models.ResampleResponse
		So(jsoniter.Unmarshal(w.Body.Bytes(), &response), ShouldBeNil)
		So(response.Projection, ShouldEqual, "equirectangular")
		So(response.Precision, ShouldEqual, 0.0)
		So(response.PointCount, ShouldEqual, 2)
	})
}

func TestRejectInvalidRequest(t *testing.T) {
	Convey("Reject invalid render type with StatusNotFound", t, func() {
		reader := bytes.NewReader(testdata.LoadExampleRequest(t))
		r, err := http.NewRequest("POST", host+"/render/foo", reader)
		So(err, ShouldBeNil)

		w := serve(r, testConfig)
		So(w.Code, ShouldEqual, http.StatusNotFound)
		So(w.Body.String(), ShouldResemble, "Unknown render type\n")
	})

	Convey("When an invalid json message is sent, a bad request is returned", t, func() {
		r, err := http.NewRequest("POST", requestSVGURL, strings.NewReader(`{"foo`))
		So(err, ShouldBeNil)

		w := serve(r, testConfig)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("When an empty json message is sent, a bad request is returned", t, func() {
		r, err := http.NewRequest("POST", resampleURL, strings.NewReader("{}"))
		So(err, ShouldBeNil)

		w := serve(r, testConfig)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
		So(w.Body.String(), ShouldResemble, "Bad request - Missing data in body\n")
	})

	Convey("When the geography is missing, a bad request is returned", t, func() {
		r, err := http.NewRequest("POST", resampleURL, strings.NewReader(`{"title": "no geography"}`))
		So(err, ShouldBeNil)

		w := serve(r, testConfig)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
		So(w.Body.String(), ShouldContainSubstring, "Missing mandatory field(s)")
	})

	Convey("When the geography has no features, a bad request is returned", t, func() {
		body := `{"geography": {"geojson": {"type": "FeatureCollection", "features": []}}}`
		r, err := http.NewRequest("POST", resampleURL, strings.NewReader(body))
		So(err, ShouldBeNil)

		w := serve(r, testConfig)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
		So(w.Body.String(), ShouldResemble, models.ErrorNoGeography.Error()+"\n")
	})

	Convey("When the projection is unknown, a bad request is returned", t, func() {
		body := `{"projection": "peters", "geography": {"geojson": {"type": "FeatureCollection", "features": []}}}`
		r, err := http.NewRequest("POST", resampleURL, strings.NewReader(body))
		So(err, ShouldBeNil)

		w := serve(r, testConfig)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
		So(w.Body.String(), ShouldContainSubstring, "unknown projection")
	})

	Convey("When the precision is negative, a bad request is returned", t, func() {
		body := `{"precision": -1, "geography": {"geojson": {"type": "FeatureCollection", "features": []}}}`
		r, err := http.NewRequest("POST", resampleURL, strings.NewReader(body))
		So(err, ShouldBeNil)

		w := serve(r, testConfig)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
		So(w.Body.String(), ShouldResemble, models.ErrorInvalidPrecision.Error()+"\n")
	})

	Convey("When the body is too large, a bad request is returned", t, func() {
		cfg := *testConfig
		cfg.MaxBodyBytes = 16
		reader := bytes.NewReader(testdata.LoadExampleRequest(t))
		r, err := http.NewRequest("POST", resampleURL, reader)
		So(err, ShouldBeNil)

		w := serve(r, &cfg)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
		So(w.Body.String(), ShouldResemble, models.ErrorReadingBody.Error()+"\n")
	})
}

func TestHealthcheck(t *testing.T) {
	Convey("The healthcheck route responds", t, func() {
		r, err := http.NewRequest("GET", host+"/healthcheck", nil)
		So(err, ShouldBeNil)

		w := serve(r, testConfig)
		So(w.Code, ShouldEqual, http.StatusOK)
	})
}
