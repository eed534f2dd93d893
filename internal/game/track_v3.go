package game

import (
	"fmt"

	"git.lost.host/meutraa/techmania/internal/format"
)

const TrackVersion = "3"

var TrackRegistry = format.MustRegistry("track",
	format.Entry{Version: TrackVersionV1, New: func() format.Document { return &TrackV1{} }},
	format.Entry{Version: TrackVersionV2, New: func() format.Document { return &TrackV2{} }},
	format.Entry{Version: TrackVersion, Latest: true, New: func() format.Document { return &TrackV3{} }},
)

type TrackV3 struct {
	Version       string        `json:"version"`
	TrackMetadata TrackMetadata `json:"trackMetadata"`
	Patterns      []PatternV3   `json:"patterns"`
}

type PatternV3 struct {
	PatternMetadata PatternMetadata  `json:"patternMetadata"`
	BpmEvents       []BpmEvent       `json:"bpmEvents"`
	TimeStops       []TimeStop       `json:"timeStops"`
	PackedNotes     []string         `json:"packedNotes"`
	PackedHoldNotes []string         `json:"packedHoldNotes"`
	PackedDragNotes []PackedDragNote `json:"packedDragNotes"`
}

func (t *TrackV3) FormatVersion() string {
	return t.Version
}

func (t *TrackV3) Upgrade() (format.Document, error) {
	return t, nil
}

func (t *Track) Pack() *TrackV3 {
	out := &TrackV3{
		Version:       TrackVersion,
		TrackMetadata: t.Metadata,
		Patterns:      make([]PatternV3, len(t.Patterns)),
	}
	for i, p := range t.Patterns {
		out.Patterns[i] = p.Pack()
	}
	return out
}

func (t *TrackV3) Unpack() (*Track, error) {
	track := &Track{
		Metadata: t.TrackMetadata,
		Patterns: make([]*Pattern, len(t.Patterns)),
	}
	for i, p := range t.Patterns {
		pattern, err := p.Unpack()
		if nil != err {
			return nil, fmt.Errorf("failed to unpack pattern %q: %w", p.PatternMetadata.PatternName, err)
		}
		track.Patterns[i] = pattern
	}
	return track, nil
}

func (p *Pattern) Pack() PatternV3 {
	out := PatternV3{
		PatternMetadata: p.Metadata,
		BpmEvents:       append([]BpmEvent{}, p.BpmEvents...),
		TimeStops:       append([]TimeStop{}, p.TimeStops...),
		PackedNotes:     []string{},
		PackedHoldNotes: []string{},
		PackedDragNotes: []PackedDragNote{},
	}
	for _, n := range p.Notes.All() {
		switch n.Kind() {
		case KindPlain:
			out.PackedNotes = append(out.PackedNotes, Pack(n))
		case KindHold:
			out.PackedHoldNotes = append(out.PackedHoldNotes, Pack(n))
		case KindDrag:
			out.PackedDragNotes = append(out.PackedDragNotes, PackDrag(n))
		}
	}
	return out
}

// Unpack rebuilds the note set. A note landing on an occupied position is
// dropped.
func (f PatternV3) Unpack() (*Pattern, error) {
	p := &Pattern{
		Metadata:  f.PatternMetadata,
		BpmEvents: append([]BpmEvent{}, f.BpmEvents...),
		TimeStops: append([]TimeStop{}, f.TimeStops...),
	}
	for _, packed := range append(append([]string{}, f.PackedNotes...), f.PackedHoldNotes...) {
		n, err := Unpack(packed)
		if nil != err {
			return nil, err
		}
		if n.Kind() == KindDrag {
			return nil, fmt.Errorf("%w: drag note %q outside packedDragNotes", ErrMalformedNote, packed)
		}
		p.Notes.Add(n)
	}
	for _, packed := range f.PackedDragNotes {
		n, err := UnpackDrag(packed)
		if nil != err {
			return nil, err
		}
		p.Notes.Add(n)
	}
	p.PrepareForTimeCalculation()
	return p, nil
}
