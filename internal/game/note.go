package game

import (
	"errors"
)

const (
	PulsesPerBeat = 240

	DefaultVolume = 100 // percent
	DefaultPan    = 0   // percent, -100 is full left
)

var ErrMalformedNote = errors.New("malformed packed note")

type Note struct {
	Type      NoteType
	Pulse     int
	Lane      int
	Sound     string // keysound file name, empty for none
	Volume    int    // percent, 0..100
	Pan       int    // percent, -100..100
	EndOfScan bool

	Duration int       // pulses, hold kinds only
	Drag     *DragPath // drag kind only

	// Derived by Pattern.CalculateTimeOfAllNotes, never persisted.
	Time    float64
	EndTime float64
}

func NewNote(t NoteType, pulse, lane int) *Note {
	n := &Note{
		Type:   t,
		Pulse:  pulse,
		Lane:   lane,
		Volume: DefaultVolume,
		Pan:    DefaultPan,
	}
	if t.Kind() == KindDrag {
		n.Drag = NewDragPath()
	}
	return n
}

func NewHoldNote(t NoteType, pulse, lane, duration int) *Note {
	n := NewNote(t, pulse, lane)
	n.Duration = duration
	return n
}

func NewDragNote(pulse, lane int, curve CurveType, nodes []DragNode) *Note {
	n := NewNote(Drag, pulse, lane)
	n.Drag = &DragPath{Curve: curve, Nodes: nodes}
	return n
}

func (n *Note) Kind() NoteKind {
	return n.Type.Kind()
}

// IsExtended reports whether any optional field differs from its default,
// which selects the extended packed form.
func (n *Note) IsExtended() bool {
	return n.Volume != DefaultVolume || n.Pan != DefaultPan || n.EndOfScan
}

// Length is the number of pulses the note lasts after its head.
func (n *Note) Length() int {
	switch n.Kind() {
	case KindHold:
		return n.Duration
	case KindDrag:
		return n.Drag.Duration()
	case KindPlain:
		return 0
	}
	return 0
}

func (n *Note) EndPulse() int {
	return n.Pulse + n.Length()
}

func (n *Note) Clone() *Note {
	c := *n
	if nil != n.Drag {
		c.Drag = n.Drag.Clone()
	}
	return &c
}
