package api

import (
	"context"

	"github.com/ONSdigital/dp-geo-resampler/config"
	"github.com/ONSdigital/dp-geo-resampler/health"
	"github.com/ONSdigital/go-ns/log"
	"github.com/ONSdigital/go-ns/server"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"net/http"
)

var httpServer *server.Server

// ResamplerAPI manages projecting and resampling geographies from json
type ResamplerAPI struct {
	router            *mux.Router
	defaultProjection string
	defaultPrecision  float64
	maxBodyBytes      int64
}

// CreateResamplerAPI manages all the routes configured to the resampler
func CreateResamplerAPI(cfg *config.Config, errorChan chan error) {
	router := mux.NewRouter()
	routes(router, cfg)

	httpServer = server.New(cfg.BindAddr, createCORSHandler(cfg.CORSAllowedOrigins, router))
	// Disable this here to allow main to manage graceful shutdown of the entire app.
	httpServer.HandleOSSignals = false

	go func() {
		log.Debug("Starting geo resampler...", nil)
		if err := httpServer.ListenAndServe(); err != nil {
			log.ErrorC("Main", err, log.Data{"MethodInError": "httpServer.ListenAndServe()"})
			errorChan <- err
		}
	}()
}

// createCORSHandler wraps the router in a CORS handler that responds to OPTIONS requests and returns the headers necessary to allow CORS-enabled clients to work
func createCORSHandler(allowedOrigins string, router *mux.Router) http.Handler {
	headersOk := handlers.AllowedHeaders([]string{"Accept", "Content-Type", "Access-Control-Allow-Origin", "Access-Control-Allow-Methods", "X-Requested-With"})
	originsOk := handlers.AllowedOrigins([]string{allowedOrigins})
	methodsOk := handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"})

	return handlers.CORS(originsOk, headersOk, methodsOk)(router)
}

// routes contain all endpoints for the resampler
func routes(router *mux.Router, cfg *config.Config) *ResamplerAPI {
	api := ResamplerAPI{
		router:            router,
		defaultProjection: cfg.DefaultProjection,
		defaultPrecision:  cfg.DefaultPrecision,
		maxBodyBytes:      cfg.MaxBodyBytes,
	}

	router.Path("/healthcheck").Methods("GET").HandlerFunc(health.EmptyHealthcheck)

	api.router.HandleFunc("/render/{render_type}", api.renderMap).Methods("POST")
	api.router.HandleFunc("/resample", api.resample).Methods("POST")
	return &api
}

// Close represents the graceful shutting down of the http server
func Close(ctx context.Context) error {
	if err := httpServer.Shutdown(ctx); err != nil {
		return err
	}

	log.Info("graceful shutdown of http server complete", nil)
	return nil
}
