package game

import (
	"git.lost.host/meutraa/techmania/internal/format"
)

const TrackVersionV1 = "1"

// TrackV1 predates playable lane counts, drag notes, time stops and the
// extended note form.
type TrackV1 struct {
	Version       string          `json:"version"`
	TrackMetadata TrackMetadataV1 `json:"trackMetadata"`
	Patterns      []PatternV1     `json:"patterns"`
}

type TrackMetadataV1 struct {
	Guid             string  `json:"guid"`
	Title            string  `json:"title"`
	Artist           string  `json:"artist"`
	Genre            string  `json:"genre"`
	EyecatchImage    string  `json:"eyecatchImage"`
	PreviewTrack     string  `json:"previewTrack"`
	PreviewStartTime float64 `json:"previewStartTime"`
	PreviewEndTime   float64 `json:"previewEndTime"`
}

type PatternMetadataV1 struct {
	Guid            string        `json:"guid"`
	PatternName     string        `json:"patternName"`
	Level           int           `json:"level"`
	ControlScheme   ControlScheme `json:"controlScheme"`
	Author          string        `json:"author"`
	BackingTrack    string        `json:"backingTrack"`
	BackImage       string        `json:"backImage"`
	Bga             string        `json:"bga"`
	BgaOffset       float64       `json:"bgaOffset"`
	FirstBeatOffset float64       `json:"firstBeatOffset"`
	InitBpm         float64       `json:"initBpm"`
	Bps             int           `json:"bps"`
}

type PatternV1 struct {
	PatternMetadata PatternMetadataV1 `json:"patternMetadata"`
	BpmEvents       []BpmEvent        `json:"bpmEvents"`
	PackedNotes     []string          `json:"packedNotes"`
	PackedHoldNotes []string          `json:"packedHoldNotes"`
}

func (t *TrackV1) FormatVersion() string {
	return t.Version
}

// Upgrade copies note strings unchanged; the V1 grammar is a subset of V2.
func (t *TrackV1) Upgrade() (format.Document, error) {
	m := t.TrackMetadata
	out := &TrackV2{
		Version: TrackVersionV2,
		TrackMetadata: TrackMetadata{
			Guid:              m.Guid,
			Title:             m.Title,
			Artist:            m.Artist,
			Genre:             m.Genre,
			EyecatchImage:     m.EyecatchImage,
			PreviewTrack:      m.PreviewTrack,
			PreviewStartTime:  m.PreviewStartTime,
			PreviewEndTime:    m.PreviewEndTime,
			AutoOrderPatterns: true,
		},
		Patterns: make([]PatternV2, len(t.Patterns)),
	}
	for i, p := range t.Patterns {
		pm := p.PatternMetadata
		out.Patterns[i] = PatternV2{
			PatternMetadata: PatternMetadata{
				Guid:            pm.Guid,
				PatternName:     pm.PatternName,
				Level:           pm.Level,
				ControlScheme:   pm.ControlScheme,
				PlayableLanes:   DefaultPlayableLanes,
				Author:          pm.Author,
				BackingTrack:    pm.BackingTrack,
				BackImage:       pm.BackImage,
				Bga:             pm.Bga,
				BgaOffset:       pm.BgaOffset,
				FirstBeatOffset: pm.FirstBeatOffset,
				InitBpm:         pm.InitBpm,
				Bps:             pm.Bps,
			},
			BpmEvents:       p.BpmEvents,
			PackedNotes:     p.PackedNotes,
			PackedHoldNotes: p.PackedHoldNotes,
		}
	}
	return out, nil
}
