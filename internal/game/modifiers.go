package game

import (
	"github.com/google/uuid"
)

type NotePosition int

const (
	NotePositionNormal NotePosition = iota
	NotePositionMirror
)

type ScrollSpeed int

const (
	ScrollSpeedNormal ScrollSpeed = iota
	ScrollSpeedHalf
)

type ControlOverride int

const (
	ControlOverrideNone ControlOverride = iota
	ControlOverrideTouch
	ControlOverrideKeys
	ControlOverrideKM
)

type Keysound int

const (
	KeysoundNormal Keysound = iota
	KeysoundAuto
)

type Modifiers struct {
	NotePosition    NotePosition    `json:"notePosition"`
	ScrollSpeed     ScrollSpeed     `json:"scrollSpeed"`
	ControlOverride ControlOverride `json:"controlOverride"`
	Keysound        Keysound        `json:"keysound"`
}

// ApplyModifiers returns a modified clone with a fresh GUID. The receiver is
// left untouched.
func (p *Pattern) ApplyModifiers(m Modifiers) *Pattern {
	c := p.Clone()
	c.Metadata.Guid = uuid.NewString()

	switch m.ControlOverride {
	case ControlOverrideTouch:
		c.Metadata.ControlScheme = Touch
	case ControlOverrideKeys:
		c.Metadata.ControlScheme = Keys
	case ControlOverrideKM:
		c.Metadata.ControlScheme = KM
	case ControlOverrideNone:
	}

	if m.ScrollSpeed == ScrollSpeedHalf {
		c.Metadata.Bps *= 2
	}

	if m.NotePosition == NotePositionMirror {
		c.mirror()
	}

	if m.Keysound == KeysoundAuto {
		c.autoKeysound()
	}

	return c
}

func (p *Pattern) mirror() {
	lanes := p.Metadata.PlayableLanes
	mirrored := NoteSet{}
	for _, n := range p.Notes.All() {
		if p.IsPlayable(n) {
			n.Lane = lanes - 1 - n.Lane
			if nil != n.Drag {
				for i := range n.Drag.Nodes {
					node := &n.Drag.Nodes[i]
					node.Anchor.Lane = -node.Anchor.Lane
					node.ControlLeft.Lane = -node.ControlLeft.Lane
					node.ControlRight.Lane = -node.ControlRight.Lane
				}
			}
		}
		mirrored.Add(n)
	}
	p.Notes = mirrored
}

// autoKeysound moves the sounds of playable notes onto hidden notes at the
// same pulse so they play without being hit.
func (p *Pattern) autoKeysound() {
	hidden := p.Metadata.PlayableLanes
	type move struct{ from, to *Note }
	var moves []move
	for _, n := range p.Notes.All() {
		if !p.IsPlayable(n) || n.Sound == "" {
			continue
		}
		h := NewNote(Basic, n.Pulse, hidden)
		h.Sound, h.Volume, h.Pan = n.Sound, n.Volume, n.Pan
		moves = append(moves, move{from: n, to: h})
	}
	// A note keeps its sound when every hidden lane at its pulse is taken.
	for _, m := range moves {
		for lane := hidden; lane < TotalLanes; lane++ {
			m.to.Lane = lane
			if p.Notes.Add(m.to) {
				m.from.Sound = ""
				break
			}
		}
	}
}
