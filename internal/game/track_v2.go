package game

import (
	"fmt"
	"math"
	"strings"

	"git.lost.host/meutraa/techmania/internal/format"
)

const TrackVersionV2 = "2"

// TrackV2 stores volume and pan of extended notes as fractions (0..1 and
// -1..1) and drag headers without a curve type.
type TrackV2 struct {
	Version       string        `json:"version"`
	TrackMetadata TrackMetadata `json:"trackMetadata"`
	Patterns      []PatternV2   `json:"patterns"`
}

type PatternV2 struct {
	PatternMetadata PatternMetadata  `json:"patternMetadata"`
	BpmEvents       []BpmEvent       `json:"bpmEvents"`
	PackedNotes     []string         `json:"packedNotes"`
	PackedHoldNotes []string         `json:"packedHoldNotes"`
	PackedDragNotes []PackedDragNote `json:"packedDragNotes"`
}

func (t *TrackV2) FormatVersion() string {
	return t.Version
}

func (t *TrackV2) Upgrade() (format.Document, error) {
	out := &TrackV3{
		Version:       TrackVersion,
		TrackMetadata: t.TrackMetadata,
		Patterns:      make([]PatternV3, len(t.Patterns)),
	}
	for i, p := range t.Patterns {
		up := PatternV3{
			PatternMetadata: p.PatternMetadata,
			BpmEvents:       p.BpmEvents,
			TimeStops:       []TimeStop{},
			PackedNotes:     make([]string, len(p.PackedNotes)),
			PackedHoldNotes: make([]string, len(p.PackedHoldNotes)),
			PackedDragNotes: make([]PackedDragNote, len(p.PackedDragNotes)),
		}
		for j, packed := range p.PackedNotes {
			n, err := unpackV2(packed)
			if nil != err {
				return nil, err
			}
			up.PackedNotes[j] = Pack(n)
		}
		for j, packed := range p.PackedHoldNotes {
			n, err := unpackV2(packed)
			if nil != err {
				return nil, err
			}
			up.PackedHoldNotes[j] = Pack(n)
		}
		for j, packed := range p.PackedDragNotes {
			n, err := unpackV2(packed.PackedNote)
			if nil != err {
				return nil, err
			}
			up.PackedDragNotes[j] = PackedDragNote{
				PackedNote:  Pack(n),
				PackedNodes: packed.PackedNodes,
			}
		}
		out.Patterns[i] = up
	}
	return out, nil
}

// unpackV2 parses the version 2 note grammar. Drag headers come back as drag
// notes with a Bezier curve and no nodes.
func unpackV2(packed string) (*Note, error) {
	body, extended := strings.CutPrefix(packed, extendedPrefix)
	typeToken, _, _ := strings.Cut(body, separator)
	t, err := ParseNoteType(typeToken)
	if nil != err {
		return nil, err
	}

	fields := 4
	if t.Kind() == KindHold {
		fields++
	}
	if extended {
		fields += 3
	}
	r, err := newTokenReader(body, fields)
	if nil != err {
		return nil, err
	}
	r.skip()

	n := NewNote(t, 0, 0)
	if t.Kind() == KindHold {
		n.Lane = r.int()
		n.Pulse = r.int()
		n.Duration = r.int()
	} else {
		n.Pulse = r.int()
		n.Lane = r.int()
	}
	if extended {
		n.Volume = int(math.Round(r.float() * 100))
		n.Pan = int(math.Round(r.float() * 100))
		n.EndOfScan = r.bool()
	}
	n.Sound = r.rest()
	if nil != r.err {
		return nil, fmt.Errorf("failed to unpack version 2 note %q: %w", packed, r.err)
	}
	return n, nil
}
