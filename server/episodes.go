package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/kasuboski/tapas/pkg/logger"
	"go.uber.org/zap"
)

func episodeNumber(r *http.Request) (int32, error) {
	n, err := strconv.ParseInt(mux.Vars(r)["number"], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid episode number: %w", err)
	}

	return int32(n), nil
}

// ListEpisodes lists unwatched episodes, every episode with all=true
func (s Server) ListEpisodes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		all, err := parseBool(r, "all")
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, fmt.Errorf("invalid all parameter: %w", err))
			return
		}

		episodes, err := s.manager.ListEpisodes(r.Context(), all)
		if err != nil {
			writeErrorResponse(w, statusFor(err), err)
			return
		}

		err = writeResponse(w, http.StatusOK, GenericResponse{Response: episodes})
		if err != nil {
			log.Errorw("failed to write response", zap.Error(err))
		}
	}
}

func (s Server) GetEpisode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		number, err := episodeNumber(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		episode, err := s.manager.GetEpisode(r.Context(), number)
		if err != nil {
			writeErrorResponse(w, statusFor(err), err)
			return
		}

		err = writeResponse(w, http.StatusOK, GenericResponse{Response: episode})
		if err != nil {
			log.Errorw("failed to write response", zap.Error(err))
		}
	}
}

// MarkWatched marks an episode as watched and sends the client to redirect_to when it is a local path
func (s Server) MarkWatched() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		number, err := episodeNumber(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		if err := s.manager.MarkWatched(r.Context(), number); err != nil {
			writeErrorResponse(w, statusFor(err), err)
			return
		}

		log.Infow("episode watched", zap.Int32("episode", number))

		if to := r.FormValue("redirect_to"); localPath(to) {
			http.Redirect(w, r, to, http.StatusSeeOther)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: "ok"})
	}
}

func localPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "/\\")
}
