package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.lost.host/meutraa/techmania/internal/game"
)

func positions(notes []*game.Note) [][2]int {
	out := make([][2]int, len(notes))
	for i, n := range notes {
		out[i] = [2]int{n.Pulse, n.Lane}
	}
	return out
}

func newNoteSet(t *testing.T, notes ...*game.Note) *game.NoteSet {
	t.Helper()
	s := &game.NoteSet{}
	for _, n := range notes {
		require.True(t, s.Add(n))
	}
	return s
}

func TestNoteSetOrdering(t *testing.T) {
	t.Parallel()

	s := newNoteSet(t,
		game.NewNote(game.Basic, 480, 0),
		game.NewNote(game.Basic, 0, 2),
		game.NewNote(game.Basic, 480, 1),
		game.NewNote(game.Basic, 0, 0),
		game.NewNote(game.Basic, -240, 3),
	)
	assert.Equal(t, [][2]int{{-240, 3}, {0, 0}, {0, 2}, {480, 0}, {480, 1}}, positions(s.All()))
	assert.Equal(t, 5, s.Len())
}

func TestNoteSetUniquePosition(t *testing.T) {
	t.Parallel()

	first := game.NewNote(game.Basic, 240, 1)
	s := newNoteSet(t, first)
	assert.False(t, s.Add(game.NewHoldNote(game.Hold, 240, 1, 120)))
	assert.Same(t, first, s.GetNoteAt(240, 1))
	assert.Equal(t, 1, s.Len())
}

func TestNoteSetRemove(t *testing.T) {
	t.Parallel()

	n := game.NewNote(game.Basic, 240, 1)
	s := newNoteSet(t, n, game.NewNote(game.Basic, 0, 0))

	assert.False(t, s.Remove(game.NewNote(game.Basic, 240, 1)), "only the stored note can be removed")
	assert.True(t, s.Remove(n))
	assert.False(t, s.HasNoteAt(240, 1))
	assert.Nil(t, s.GetNoteAt(240, 1))
	assert.False(t, s.Remove(n))
	assert.Equal(t, 1, s.Len())
}

func TestNoteSetViewBetween(t *testing.T) {
	t.Parallel()

	s := newNoteSet(t,
		game.NewNote(game.Basic, 0, 0),
		game.NewNote(game.Basic, 240, 3),
		game.NewNote(game.Basic, 240, 0),
		game.NewNote(game.Basic, 480, 1),
		game.NewNote(game.Basic, 720, 2),
	)
	assert.Equal(t, [][2]int{{240, 0}, {240, 3}, {480, 1}}, positions(s.ViewBetween(240, 480)))
	assert.Equal(t, [][2]int{{0, 0}}, positions(s.ViewBetween(-100, 0)))
	assert.Empty(t, s.ViewBetween(241, 479))
	assert.Empty(t, s.ViewBetween(480, 240))
	assert.Len(t, s.ViewBetween(-1000, 1000), 5)
}

func TestNoteSetClosestNote(t *testing.T) {
	t.Parallel()

	s := newNoteSet(t,
		game.NewNote(game.Basic, 0, 0),
		game.NewNote(game.ChainHead, 240, 1),
		game.NewHoldNote(game.Hold, 480, 2, 240),
		game.NewNote(game.ChainNode, 480, 0),
		game.NewNote(game.Basic, 960, 3),
	)

	t.Run("before", func(t *testing.T) {
		t.Parallel()
		n := s.ClosestNoteBefore(480, nil, 0, 3)
		require.NotNil(t, n)
		assert.Equal(t, [2]int{240, 1}, [2]int{n.Pulse, n.Lane}, "strictly before")

		n = s.ClosestNoteBefore(960, game.TypesOf(game.Basic), 0, 3)
		require.NotNil(t, n)
		assert.Equal(t, 0, n.Pulse)

		assert.Nil(t, s.ClosestNoteBefore(0, nil, 0, 3))
		assert.Nil(t, s.ClosestNoteBefore(960, nil, 3, 3))
	})

	t.Run("after", func(t *testing.T) {
		t.Parallel()
		n := s.ClosestNoteAfter(240, nil, 0, 3)
		require.NotNil(t, n)
		assert.Equal(t, [2]int{480, 0}, [2]int{n.Pulse, n.Lane})

		n = s.ClosestNoteAfter(0, game.TypesOf(game.Hold, game.Basic), 1, 3)
		require.NotNil(t, n)
		assert.Equal(t, game.Hold, n.Type)

		assert.Nil(t, s.ClosestNoteAfter(960, nil, 0, 3))
	})
}

func TestNoteSetLongNoteOverlaps(t *testing.T) {
	t.Parallel()

	hold := game.NewHoldNote(game.Hold, 480, 2, 240)
	s := newNoteSet(t, hold, game.NewNote(game.Basic, 960, 2))

	assert.True(t, s.LongNoteOverlaps(600, 2, 0, nil), "inside an existing hold")
	assert.True(t, s.LongNoteOverlaps(720, 2, 0, nil), "on the end of an existing hold")
	assert.False(t, s.LongNoteOverlaps(721, 2, 100, nil))
	assert.True(t, s.LongNoteOverlaps(721, 2, 239, nil), "covers the next note")
	assert.False(t, s.LongNoteOverlaps(600, 1, 480, nil), "other lane")
	assert.False(t, s.LongNoteOverlaps(480, 2, 400, hold), "resizing itself")
	assert.True(t, s.LongNoteOverlaps(480, 2, 480, hold), "resizing into the next note")
}

func TestNoteSetClone(t *testing.T) {
	t.Parallel()

	s := newNoteSet(t, game.NewNote(game.Basic, 0, 0), game.NewDragNote(240, 1, game.Bezier, []game.DragNode{{}, {Anchor: game.FloatPoint{Pulse: 120}}}))
	c := s.Clone()
	c.All()[0].Lane = 3
	c.All()[1].Drag.Nodes[1].Anchor.Lane = 2

	assert.Equal(t, 0, s.All()[0].Lane)
	assert.Equal(t, 0.0, s.All()[1].Drag.Nodes[1].Anchor.Lane)
}
