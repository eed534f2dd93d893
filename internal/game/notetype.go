package game

import (
	"fmt"
)

type NoteType int

const (
	Basic NoteType = iota
	ChainHead
	ChainNode
	Hold
	Drag
	RepeatHead
	RepeatHeadHold
	Repeat
	RepeatHold
)

// NoteKind selects which payload of a Note is meaningful.
type NoteKind int

const (
	KindPlain NoteKind = iota
	KindHold
	KindDrag
)

var noteTypeNames = [...]string{
	Basic:          "Basic",
	ChainHead:      "ChainHead",
	ChainNode:      "ChainNode",
	Hold:           "Hold",
	Drag:           "Drag",
	RepeatHead:     "RepeatHead",
	RepeatHeadHold: "RepeatHeadHold",
	Repeat:         "Repeat",
	RepeatHold:     "RepeatHold",
}

var noteTypesByName = map[string]NoteType{
	"Basic":          Basic,
	"ChainHead":      ChainHead,
	"ChainNode":      ChainNode,
	"Hold":           Hold,
	"Drag":           Drag,
	"RepeatHead":     RepeatHead,
	"RepeatHeadHold": RepeatHeadHold,
	"Repeat":         Repeat,
	"RepeatHold":     RepeatHold,
}

func (t NoteType) String() string {
	if t < 0 || int(t) >= len(noteTypeNames) {
		return fmt.Sprintf("NoteType(%d)", int(t))
	}
	return noteTypeNames[t]
}

func (t NoteType) Kind() NoteKind {
	switch t {
	case Hold, RepeatHeadHold, RepeatHold:
		return KindHold
	case Drag:
		return KindDrag
	case Basic, ChainHead, ChainNode, RepeatHead, Repeat:
		return KindPlain
	}
	return KindPlain
}

func ParseNoteType(s string) (NoteType, error) {
	t, ok := noteTypesByName[s]
	if !ok {
		return 0, fmt.Errorf("%w: unknown note type %q", ErrMalformedNote, s)
	}
	return t, nil
}

// NoteTypes is a set of note types used to filter note set queries. A nil
// set matches every type.
type NoteTypes map[NoteType]struct{}

func TypesOf(types ...NoteType) NoteTypes {
	set := make(NoteTypes, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return set
}

func (s NoteTypes) Has(t NoteType) bool {
	if nil == s {
		return true
	}
	_, ok := s[t]
	return ok
}
