package server

import (
	"errors"
	"net/http"

	"github.com/kasuboski/tapas/pkg/logger"
	"github.com/kasuboski/tapas/pkg/pagination"
	"github.com/kasuboski/tapas/pkg/storage"
	"go.uber.org/zap"
)

const traceFileParam = "tracefile"

var errMissingTraceFile = errors.New("tracefile parameter is required")

type ListDownloadsResponse struct {
	Downloads []*storage.Download `json:"downloads"`
	Meta      pagination.Meta     `json:"meta"`
}

// StartDownload launches the transfer of an episode and responds with the url to poll
func (s Server) StartDownload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		number, err := episodeNumber(r)
		if err != nil {
			writeText(w, http.StatusBadRequest, err.Error())
			return
		}

		resp, err := s.manager.DownloadEpisode(r.Context(), number)
		if err != nil {
			log.Errorw("failed to start download", zap.Int32("episode", number), zap.Error(err))
			writeText(w, statusFor(err), err.Error())
			return
		}

		writeText(w, http.StatusOK, resp.ProgressURL)
	}
}

// DownloadProgress responds with the completed fraction as plain text, or unknown
func (s Server) DownloadProgress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		traceFile := r.URL.Query().Get(traceFileParam)
		if traceFile == "" {
			writeText(w, http.StatusBadRequest, errMissingTraceFile.Error())
			return
		}

		snapshot, err := s.manager.Progress(r.Context(), traceFile)
		if err != nil {
			writeText(w, statusFor(err), err.Error())
			return
		}

		writeText(w, http.StatusOK, snapshot.String())
	}
}

// DownloadProgressJSON responds with the full progress snapshot
func (s Server) DownloadProgressJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		traceFile := r.URL.Query().Get(traceFileParam)
		if traceFile == "" {
			writeErrorResponse(w, http.StatusBadRequest, errMissingTraceFile)
			return
		}

		snapshot, err := s.manager.Progress(r.Context(), traceFile)
		if err != nil {
			writeErrorResponse(w, statusFor(err), err)
			return
		}

		err = writeResponse(w, http.StatusOK, GenericResponse{Response: snapshot})
		if err != nil {
			log.Errorw("failed to write response", zap.Error(err))
		}
	}
}

func (s Server) ListDownloads() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		params, err := ParsePaginationParams(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		active, err := parseBool(r, "active")
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		downloads, err := s.manager.ListDownloads(r.Context(), active)
		if err != nil {
			writeErrorResponse(w, statusFor(err), err)
			return
		}

		page, meta := pagination.Apply(params, downloads)
		if page == nil {
			page = []*storage.Download{}
		}
		err = writeResponse(w, http.StatusOK, GenericResponse{Response: ListDownloadsResponse{Downloads: page, Meta: meta}})
		if err != nil {
			log.Errorw("failed to write response", zap.Error(err))
		}
	}
}
