package game

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/goccy/go-json"
	"golang.org/x/exp/slices"
)

// minimizedPattern holds what gameplay depends on. Field order is the
// canonical JSON order.
type minimizedPattern struct {
	ControlScheme   ControlScheme    `json:"controlScheme"`
	PlayableLanes   int              `json:"playableLanes"`
	InitBpm         float64          `json:"initBpm"`
	Bps             int              `json:"bps"`
	PackedNotes     []string         `json:"packedNotes"`
	PackedHoldNotes []string         `json:"packedHoldNotes"`
	PackedDragNotes []PackedDragNote `json:"packedDragNotes"`
	BpmEvents       []BpmEvent       `json:"bpmEvents"`
	TimeStops       []TimeStop       `json:"timeStops"`
}

func (p *Pattern) minimize() minimizedPattern {
	m := minimizedPattern{
		ControlScheme:   p.Metadata.ControlScheme,
		PlayableLanes:   p.Metadata.PlayableLanes,
		InitBpm:         p.Metadata.InitBpm,
		Bps:             p.Metadata.Bps,
		PackedNotes:     []string{},
		PackedHoldNotes: []string{},
		PackedDragNotes: []PackedDragNote{},
		BpmEvents:       slices.Clone(p.BpmEvents),
		TimeStops:       slices.Clone(p.TimeStops),
	}
	if nil == m.BpmEvents {
		m.BpmEvents = []BpmEvent{}
	}
	if nil == m.TimeStops {
		m.TimeStops = []TimeStop{}
	}
	slices.SortStableFunc(m.BpmEvents, func(a, b BpmEvent) int { return cmp.Compare(a.Pulse, b.Pulse) })
	slices.SortStableFunc(m.TimeStops, func(a, b TimeStop) int { return cmp.Compare(a.Pulse, b.Pulse) })

	for _, n := range p.Notes.All() {
		stripped := n.Clone()
		stripped.Sound = ""
		stripped.Volume = DefaultVolume
		stripped.Pan = DefaultPan
		switch n.Kind() {
		case KindPlain:
			m.PackedNotes = append(m.PackedNotes, Pack(stripped))
		case KindHold:
			m.PackedHoldNotes = append(m.PackedHoldNotes, Pack(stripped))
		case KindDrag:
			m.PackedDragNotes = append(m.PackedDragNotes, PackDrag(stripped))
		}
	}
	return m
}

// Fingerprint hashes the gameplay content of the pattern into 64 lowercase
// hex characters. Keysounds, volume and pan do not contribute. It is
// computed on every call so edits are always reflected.
func (p *Pattern) Fingerprint() (string, error) {
	b, err := json.Marshal(p.minimize())
	if nil != err {
		return "", fmt.Errorf("failed to marshal minimized pattern: %v", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
