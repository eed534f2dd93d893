package profile

import (
	"time"

	"git.lost.host/meutraa/techmania/internal/format"
)

const (
	StatisticsFilename = "statistics.json"
	StatisticsVersion  = "1"
)

var StatisticsRegistry = format.MustRegistry("statistics",
	format.Entry{Version: StatisticsVersion, Latest: true, New: func() format.Document { return &Statistics{} }},
)

// Statistics are lifetime counters. Durations are stored in seconds.
type Statistics struct {
	Version string `json:"version"`

	TotalPlayTime    float64 `json:"totalPlayTime"`
	TimeInGame       float64 `json:"timeInGame"`
	TimeInEditor     float64 `json:"timeInEditor"`
	TimesAppLaunched int     `json:"timesAppLaunched"`

	TotalPatternsPlayed int   `json:"totalPatternsPlayed"`
	TotalNotesHit       int64 `json:"totalNotesHit"`
	MaxCombo            int   `json:"maxCombo"`
}

func NewStatistics() *Statistics {
	return &Statistics{Version: StatisticsVersion}
}

func (s *Statistics) FormatVersion() string {
	return s.Version
}

func (s *Statistics) Upgrade() (format.Document, error) {
	return s, nil
}

// RecordPlay folds one finished pattern into the counters.
func (s *Statistics) RecordPlay(length time.Duration, notesHit, maxCombo int) {
	s.TotalPatternsPlayed++
	s.TimeInGame += length.Seconds()
	s.TotalNotesHit += int64(notesHit)
	if maxCombo > s.MaxCombo {
		s.MaxCombo = maxCombo
	}
}
