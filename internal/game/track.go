package game

import (
	"cmp"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"git.lost.host/meutraa/techmania/internal/format"
)

const TrackFilename = "track.tech"

type TrackMetadata struct {
	Guid              string  `json:"guid"`
	Title             string  `json:"title"`
	Artist            string  `json:"artist"`
	Genre             string  `json:"genre"`
	AdditionalCredits string  `json:"additionalCredits"`
	EyecatchImage     string  `json:"eyecatchImage"`
	PreviewTrack      string  `json:"previewTrack"`
	PreviewStartTime  float64 `json:"previewStartTime"`
	PreviewEndTime    float64 `json:"previewEndTime"`
	AutoOrderPatterns bool    `json:"autoOrderPatterns"`
}

// Track is a piece of music and its patterns.
type Track struct {
	Metadata TrackMetadata
	Patterns []*Pattern
}

func NewTrack(title, artist string) *Track {
	return &Track{
		Metadata: TrackMetadata{
			Guid:              uuid.NewString(),
			Title:             title,
			Artist:            artist,
			AutoOrderPatterns: true,
		},
	}
}

func (t *Track) FindPattern(guid string) *Pattern {
	for _, p := range t.Patterns {
		if p.Metadata.Guid == guid {
			return p
		}
	}
	return nil
}

// SortPatterns orders patterns by control scheme, then level, then name.
func (t *Track) SortPatterns() {
	slices.SortStableFunc(t.Patterns, func(a, b *Pattern) int {
		if c := cmp.Compare(a.Metadata.ControlScheme, b.Metadata.ControlScheme); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Metadata.Level, b.Metadata.Level); c != 0 {
			return c
		}
		return cmp.Compare(a.Metadata.PatternName, b.Metadata.PatternName)
	})
}

// LoadTrack decodes a track file of any known version.
func LoadTrack(data []byte) (*Track, error) {
	doc, err := format.Load[*TrackV3](TrackRegistry, data)
	if nil != err {
		return nil, err
	}
	return doc.Unpack()
}

func ReadTrack(path string) (*Track, error) {
	doc, err := format.LoadFile[*TrackV3](TrackRegistry, path)
	if nil != err {
		return nil, err
	}
	t, err := doc.Unpack()
	if nil != err {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Marshal packs every pattern and serializes the track at the latest version.
func (t *Track) Marshal() ([]byte, error) {
	return format.Encode(t.Pack())
}

func (t *Track) Write(path string) error {
	return format.SaveFile(path, t.Pack())
}
