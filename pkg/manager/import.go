package manager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/kasuboski/tapas/pkg/logger"
	"github.com/kasuboski/tapas/pkg/storage/sqlite/schema/gen/model"
	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

const defaultVideoExtension = ".mp4"

// ImportEpisodeRequest describes an episode to add or update in the catalog
type ImportEpisodeRequest struct {
	Number         int32  `json:"number" yaml:"number" validate:"gt=0"`
	Title          string `json:"title" yaml:"title" validate:"required"`
	Description    string `json:"description" yaml:"description"`
	RemoteVideoURL string `json:"remoteVideoUrl" yaml:"remoteVideoUrl" validate:"required,url"`
	LocalVideoURL  string `json:"localVideoUrl" yaml:"localVideoUrl" validate:"omitempty,localpath"`
	Watched        bool   `json:"watched" yaml:"watched"`
}

type episodeFile struct {
	Episodes []ImportEpisodeRequest `yaml:"episodes"`
}

// ParseEpisodeFile reads an episode catalog in yaml
func ParseEpisodeFile(r io.Reader) ([]ImportEpisodeRequest, error) {
	var f episodeFile

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode episode file: %w", err)
	}

	return f.Episodes, nil
}

// ImportEpisodes validates every request before storing any of them
func (m MediaManager) ImportEpisodes(ctx context.Context, requests []ImportEpisodeRequest) (int, error) {
	log := logger.FromCtx(ctx)

	validate := validator.New()
	if err := validate.RegisterValidation("localpath", isLocalPath); err != nil {
		return 0, err
	}
	seen := make(map[int32]struct{}, len(requests))
	for i, r := range requests {
		if err := validate.Struct(r); err != nil {
			return 0, fmt.Errorf("invalid episode at index %d: %w", i, err)
		}
		if _, ok := seen[r.Number]; ok {
			return 0, fmt.Errorf("duplicate episode number %d", r.Number)
		}
		seen[r.Number] = struct{}{}
	}

	for _, r := range requests {
		episode := model.Episode{
			Number:         r.Number,
			Title:          r.Title,
			Description:    r.Description,
			RemoteVideoURL: r.RemoteVideoURL,
			LocalVideoURL:  r.LocalVideoURL,
			Watched:        r.Watched,
		}
		if episode.LocalVideoURL == "" {
			episode.LocalVideoURL = defaultLocalVideoURL(r)
		}

		if err := m.storage.UpsertEpisode(ctx, episode); err != nil {
			log.Errorw("failed to store episode", zap.Int32("number", r.Number), zap.Error(err))
			return 0, err
		}
	}

	log.Infow("imported episodes", zap.Int("count", len(requests)))
	return len(requests), nil
}

// isLocalPath accepts relative paths that stay inside the directory they are joined to
func isLocalPath(fl validator.FieldLevel) bool {
	return filepath.IsLocal(filepath.FromSlash(fl.Field().String()))
}

// defaultLocalVideoURL names the local copy after the episode, e.g. media/042-cafe-au-lait.mp4
func defaultLocalVideoURL(r ImportEpisodeRequest) string {
	ext := defaultVideoExtension
	if u, err := url.Parse(r.RemoteVideoURL); err == nil && path.Ext(u.Path) != "" {
		ext = strings.ToLower(path.Ext(u.Path))
	}

	name := fmt.Sprintf("%03d", r.Number)
	if slug := slugify(r.Title); slug != "" {
		name += "-" + slug
	}

	return path.Join("media", name+ext)
}

func slugify(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
