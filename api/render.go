package api

import (
	"errors"
	"net/http"

	"github.com/ONSdigital/dp-geo-resampler/models"
	"github.com/ONSdigital/dp-geo-resampler/renderer"
	"github.com/ONSdigital/go-ns/log"
	"github.com/gorilla/mux"
	"github.com/json-iterator/go"
)

// Error types
var (
	internalError     = "Failed to process the request due to an internal error"
	unknownRenderType = "Unknown render type"
)

// Content types
var (
	contentSVG  = "image/svg+xml"
	contentHTML = "text/html"
	contentJSON = "application/json"
)

func (api *ResamplerAPI) renderMap(w http.ResponseWriter, r *http.Request) {

	vars := mux.Vars(r)
	renderType := vars["render_type"]

	log.Debug("renderMap", log.Data{"headers": r.Header, "render_type": renderType})
	request, ok := api.readRequest(w, r)
	if !ok {
		return
	}

	var bytes []byte
	var err error

	switch renderType {
	case "svg":
		var svg string
		svg, err = renderer.RenderSVG(request)
		bytes = []byte(svg)
		setContentType(w, contentSVG)
	case "html":
		bytes, err = renderer.RenderHTML(request)
		setContentType(w, contentHTML)
	default:
		log.Error(errors.New("Unknown render type"), log.Data{"render_type": renderType})
		http.Error(w, unknownRenderType, http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error(err, log.Data{"render_type": renderType})
		setErrorCode(w, err)
		return
	}

	writeBody(w, bytes)
}

func (api *ResamplerAPI) resample(w http.ResponseWriter, r *http.Request) {

	log.Debug("resample", log.Data{"headers": r.Header})
	request, ok := api.readRequest(w, r)
	if !ok {
		return
	}

	response, err := renderer.Resample(request)
	if err != nil {
		log.Error(err, log.Data{"projection": request.Projection})
		setErrorCode(w, err)
		return
	}

	bytes, err := jsoniter.Marshal(response)
	if err != nil {
		log.Error(err, log.Data{"projection": request.Projection})
		setErrorCode(w, err)
		return
	}

	setContentType(w, contentJSON)
	writeBody(w, bytes)
}

// readRequest decodes and validates the request body, filling in the configured defaults.
// On failure it writes a bad request response and returns false.
func (api *ResamplerAPI) readRequest(w http.ResponseWriter, r *http.Request) (*models.ResampleRequest, bool) {
	body := r.Body
	if api.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, api.maxBodyBytes)
	}

	request, err := models.CreateResampleRequest(body)
	if err != nil {
		log.Error(err, nil)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	request.WithDefaults(api.defaultProjection, api.defaultPrecision)

	if err = request.ValidateResampleRequest(); err != nil {
		log.Error(err, nil)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return request, true
}

func writeBody(w http.ResponseWriter, bytes []byte) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(bytes); err != nil {
		log.Error(err, log.Data{})
	}
}

func setContentType(w http.ResponseWriter, contentType string) {
	w.Header().Set("Content-Type", contentType)
}

func setErrorCode(w http.ResponseWriter, err error) {
	log.Debug("error is", log.Data{"error": err})
	switch err {
	case models.ErrorNoGeography:
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	default:
		http.Error(w, internalError, http.StatusInternalServerError)
		return
	}
}
