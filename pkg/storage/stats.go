package storage

import (
	"context"
)

// StatisticsStorage aggregates counts for the library overview
type StatisticsStorage interface {
	GetLibraryStats(ctx context.Context) (*LibraryStats, error)
}

type EpisodeStats struct {
	Total   int `json:"total"`
	Watched int `json:"watched"`
}

type DownloadStats struct {
	Total   int                   `json:"total"`
	ByState map[DownloadState]int `json:"byState"`
}

type LibraryStats struct {
	Episodes  EpisodeStats  `json:"episodes"`
	Downloads DownloadStats `json:"downloads"`
}
