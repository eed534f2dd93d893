package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.lost.host/meutraa/techmania/internal/game"
)

func TestPack(t *testing.T) {
	t.Parallel()

	extended := game.NewNote(game.ChainHead, 0, 3)
	extended.Volume = 50
	extended.Sound = "a|b.wav"

	extendedHold := game.NewHoldNote(game.RepeatHold, 720, 1, 240)
	extendedHold.Pan = -100
	extendedHold.EndOfScan = true

	drag := game.NewDragNote(960, 1, game.BSpline, []game.DragNode{
		{},
		{Anchor: game.FloatPoint{Pulse: 120, Lane: 0.5}, ControlLeft: game.FloatPoint{Pulse: -30}, ControlRight: game.FloatPoint{Pulse: 30}},
	})

	tests := []struct {
		name     string
		note     *game.Note
		expected string
	}{
		{"basic", game.NewNote(game.Basic, 240, 1), "Basic|240|1|"},
		{"basic with sound", &game.Note{Type: game.Basic, Pulse: 0, Lane: 0, Sound: "kick.wav", Volume: game.DefaultVolume}, "Basic|0|0|kick.wav"},
		{"hold puts lane first", game.NewHoldNote(game.Hold, 480, 2, 120), "Hold|2|480|120|"},
		{"extended", extended, "E|ChainHead|0|3|50|0|0|a|b.wav"},
		{"extended hold", extendedHold, "E|RepeatHold|1|720|240|100|-100|1|"},
		{"drag header", drag, "Drag|960|1|BSpline|"},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.expected, game.Pack(test.note))
		})
	}
}

func TestUnpackRoundTrip(t *testing.T) {
	t.Parallel()

	notes := []*game.Note{
		game.NewNote(game.Basic, 240, 1),
		game.NewNote(game.RepeatHead, -480, 0),
		game.NewHoldNote(game.Hold, 480, 2, 120),
		game.NewHoldNote(game.RepeatHeadHold, 0, 3, 960),
		{Type: game.Repeat, Pulse: 30, Lane: 12, Sound: "x|y|z.ogg", Volume: 0, Pan: 35, EndOfScan: true},
		{Type: game.Hold, Pulse: 60, Lane: 1, Duration: 5, Volume: 100, Pan: 0, EndOfScan: true},
	}
	for _, n := range notes {
		packed := game.Pack(n)
		out, err := game.Unpack(packed)
		require.NoError(t, err, packed)
		assert.Equal(t, n, out, packed)
	}
}

func TestDragRoundTrip(t *testing.T) {
	t.Parallel()

	n := game.NewDragNote(960, 1, game.Bezier, []game.DragNode{
		{ControlRight: game.FloatPoint{Pulse: 40, Lane: 0.25}},
		{Anchor: game.FloatPoint{Pulse: 240, Lane: -1}, ControlLeft: game.FloatPoint{Pulse: -40}},
		{Anchor: game.FloatPoint{Pulse: 480.5, Lane: 2}},
	})
	n.Sound = "swipe.wav"
	n.Volume = 70

	packed := game.PackDrag(n)
	assert.Equal(t, "E|Drag|960|1|Bezier|70|0|0|swipe.wav", packed.PackedNote)
	assert.Equal(t, []string{"0|0|0|0|40|0.25", "240|-1|-40|0|0|0", "480.5|2|0|0|0|0"}, packed.PackedNodes)

	out, err := game.UnpackDrag(packed)
	require.NoError(t, err)
	assert.Equal(t, n, out)
	assert.Equal(t, 481, out.Length())
}

func TestUnpackMalformed(t *testing.T) {
	t.Parallel()

	for _, packed := range []string{
		"",
		"Basic|0|0",
		"Basic|x|0|",
		"Basic|0|1.5|",
		"Unknown|0|0|",
		"Hold|0|0|",
		"E|Basic|0|0|100|0|",
		"E|Basic|0|0|100|0|2|",
		"E|Basic|0|0|loud|0|0|",
		"Drag|0|0|Spiral|",
		"Drag|0|0|",
	} {
		_, err := game.Unpack(packed)
		assert.ErrorIs(t, err, game.ErrMalformedNote, packed)
	}
}

func TestUnpackDragMalformed(t *testing.T) {
	t.Parallel()

	tests := map[string]game.PackedDragNote{
		"not a drag":     {PackedNote: "Basic|0|0|", PackedNodes: []string{"0|0|0|0|0|0", "240|0|0|0|0|0"}},
		"one node":       {PackedNote: "Drag|0|0|Bezier|", PackedNodes: []string{"0|0|0|0|0|0"}},
		"short node":     {PackedNote: "Drag|0|0|Bezier|", PackedNodes: []string{"0|0|0|0|0|0", "240|0|0|0|0"}},
		"bad node float": {PackedNote: "Drag|0|0|Bezier|", PackedNodes: []string{"0|0|0|0|0|0", "240|a|0|0|0|0"}},
	}
	for name, packed := range tests {
		_, err := game.UnpackDrag(packed)
		assert.ErrorIs(t, err, game.ErrMalformedNote, name)
	}
}

var packed string

func BenchmarkPack(b *testing.B) {
	n := game.NewHoldNote(game.Hold, 12345, 2, 480)
	n.Volume = 80
	n.Sound = "long.wav"
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		packed = game.Pack(n)
	}
}

var unpacked *game.Note

func BenchmarkUnpack(b *testing.B) {
	s := "E|Hold|2|12345|480|80|0|0|long.wav"
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		unpacked, _ = game.Unpack(s)
	}
}
