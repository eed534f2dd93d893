package game

import (
	"cmp"
	"math"

	"golang.org/x/exp/slices"
)

// NoteSet keeps notes ordered by (pulse, lane). At most one note occupies a
// (pulse, lane) position.
type NoteSet struct {
	notes []*Note
}

func compareNoteTo(n *Note, pulse, lane int) int {
	if c := cmp.Compare(n.Pulse, pulse); c != 0 {
		return c
	}
	return cmp.Compare(n.Lane, lane)
}

func (s *NoteSet) search(pulse, lane int) (int, bool) {
	return slices.BinarySearchFunc(s.notes, [2]int{pulse, lane}, func(n *Note, key [2]int) int {
		return compareNoteTo(n, key[0], key[1])
	})
}

// Add inserts n and reports whether it was added. A note already at n's
// position keeps its place.
func (s *NoteSet) Add(n *Note) bool {
	i, found := s.search(n.Pulse, n.Lane)
	if found {
		return false
	}
	s.notes = slices.Insert(s.notes, i, n)
	return true
}

func (s *NoteSet) Remove(n *Note) bool {
	i, found := s.search(n.Pulse, n.Lane)
	if !found || s.notes[i] != n {
		return false
	}
	s.notes = slices.Delete(s.notes, i, i+1)
	return true
}

func (s *NoteSet) GetNoteAt(pulse, lane int) *Note {
	if i, found := s.search(pulse, lane); found {
		return s.notes[i]
	}
	return nil
}

func (s *NoteSet) HasNoteAt(pulse, lane int) bool {
	_, found := s.search(pulse, lane)
	return found
}

func (s *NoteSet) Len() int {
	return len(s.notes)
}

// All returns the notes in order. The slice is shared with the set.
func (s *NoteSet) All() []*Note {
	return s.notes
}

// ViewBetween returns the notes with minPulse <= pulse <= maxPulse on any
// lane, in order. The slice is shared with the set.
func (s *NoteSet) ViewBetween(minPulse, maxPulse int) []*Note {
	if minPulse > maxPulse {
		return nil
	}
	from, _ := slices.BinarySearchFunc(s.notes, minPulse, func(n *Note, p int) int {
		if n.Pulse < p {
			return -1
		}
		return 1
	})
	to, _ := slices.BinarySearchFunc(s.notes, maxPulse, func(n *Note, p int) int {
		if n.Pulse <= p {
			return -1
		}
		return 1
	})
	return s.notes[from:to]
}

// ClosestNoteBefore returns the last note strictly before pulse whose type is
// in types and whose lane is within [minLane, maxLane].
func (s *NoteSet) ClosestNoteBefore(pulse int, types NoteTypes, minLane, maxLane int) *Note {
	i, _ := s.search(pulse, math.MinInt)
	for i--; i >= 0; i-- {
		if n := s.notes[i]; s.matches(n, types, minLane, maxLane) {
			return n
		}
	}
	return nil
}

// ClosestNoteAfter returns the first note strictly after pulse whose type is
// in types and whose lane is within [minLane, maxLane].
func (s *NoteSet) ClosestNoteAfter(pulse int, types NoteTypes, minLane, maxLane int) *Note {
	i, _ := s.search(pulse, math.MaxInt)
	for ; i < len(s.notes); i++ {
		if n := s.notes[i]; s.matches(n, types, minLane, maxLane) {
			return n
		}
	}
	return nil
}

func (s *NoteSet) matches(n *Note, types NoteTypes, minLane, maxLane int) bool {
	return types.Has(n.Type) && n.Lane >= minLane && n.Lane <= maxLane
}

// LongNoteOverlaps reports whether a note of the given length placed at
// (pulse, lane) would cover or be covered by another note in that lane.
// ignore is skipped, so a note can be checked against its own new length.
func (s *NoteSet) LongNoteOverlaps(pulse, lane, length int, ignore *Note) bool {
	if prev := s.ClosestNoteBefore(pulse, nil, lane, lane); nil != prev && prev != ignore {
		if prev.EndPulse() >= pulse && prev.Length() > 0 {
			return true
		}
	}
	for _, n := range s.ViewBetween(pulse, pulse+length) {
		if n.Lane == lane && n != ignore {
			return true
		}
	}
	return false
}

func (s *NoteSet) Clone() *NoteSet {
	c := &NoteSet{notes: make([]*Note, len(s.notes))}
	for i, n := range s.notes {
		c.notes[i] = n.Clone()
	}
	return c
}
