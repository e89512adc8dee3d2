package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kasuboski/tapas/config"
	"github.com/kasuboski/tapas/pkg/download"
	"github.com/kasuboski/tapas/pkg/logger"
	"github.com/kasuboski/tapas/pkg/manager"
	"github.com/kasuboski/tapas/pkg/progress"
	"github.com/kasuboski/tapas/pkg/storage"
	"go.uber.org/zap"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

const shutdownTimeout = time.Second * 3

type GenericResponse struct {
	Error    string `json:"error,omitempty"`
	Response any    `json:"response"`
}

// Server houses all dependencies for the media server to work such as loggers, the manager and credentials
type Server struct {
	baseLogger *zap.SugaredLogger
	manager    manager.MediaManager
	config     config.Server
}

// New creates a new media server
func New(logger *zap.SugaredLogger, manager manager.MediaManager, cfg config.Server) Server {
	return Server{
		baseLogger: logger,
		manager:    manager,
		config:     cfg,
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, err error) error {
	return writeResponse(w, status, GenericResponse{
		Error: err.Error(),
	})
}

func writeResponse(w http.ResponseWriter, status int, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	w.Header().Set("content-type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	w.Write(b)
	return nil
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("content-type", "text/plain; charset=utf-8")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	w.Write([]byte(body))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, manager.ErrTraceOutsideDir), errors.Is(err, download.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, progress.ErrTraceNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Handler builds the router with every route and middleware
func (s Server) Handler() http.Handler {
	rtr := mux.NewRouter()
	rtr.Use(s.LogMiddleware())
	rtr.HandleFunc("/healthz", s.Healthz()).Methods(http.MethodGet)

	api := rtr.PathPrefix("/api").Subrouter()
	api.Use(s.BasicAuthMiddleware())

	v1 := api.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/episodes", s.ListEpisodes()).Methods(http.MethodGet)
	v1.HandleFunc("/episodes/{number:[0-9]+}", s.GetEpisode()).Methods(http.MethodGet)
	v1.HandleFunc("/episodes/{number:[0-9]+}/watched", s.MarkWatched()).Methods(http.MethodPost)

	v1.HandleFunc("/stats", s.GetLibraryStats()).Methods(http.MethodGet)

	v1.HandleFunc("/downloads", s.ListDownloads()).Methods(http.MethodGet)
	v1.HandleFunc("/downloads/progress", s.DownloadProgressJSON()).Methods(http.MethodGet)

	dl := rtr.PathPrefix("/download").Subrouter()
	dl.Use(s.BasicAuthMiddleware())

	dl.HandleFunc("/progress", s.DownloadProgress()).Methods(http.MethodGet)
	dl.HandleFunc("/{number:[0-9]+}", s.StartDownload()).Methods(http.MethodPost)

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)(rtr)
}

// Serve starts the http server and blocks until ctx is cancelled
func (s Server) Serve(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		s.baseLogger.Infow("serving...", zap.Int("port", port))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	s.baseLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// GetLibraryStats counts episodes and downloads
func (s Server) GetLibraryStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		stats, err := s.manager.GetLibraryStats(r.Context())
		if err != nil {
			writeErrorResponse(w, statusFor(err), err)
			return
		}

		err = writeResponse(w, http.StatusOK, GenericResponse{Response: stats})
		if err != nil {
			log.Errorw("failed to write response", zap.Error(err))
		}
	}
}

// Healthz is an endpoint that can be used for probes
func (s Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := GenericResponse{
			Response: "ok",
		}
		writeResponse(w, http.StatusOK, response)
	}
}
