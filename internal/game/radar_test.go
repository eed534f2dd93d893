package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"git.lost.host/meutraa/techmania/internal/game"
)

func TestRadarEmptyPattern(t *testing.T) {
	t.Parallel()

	r := newTimedPattern(120).CalculateRadar()
	assert.Equal(t, 0.0, r.Density.Raw)
	assert.Equal(t, 0, r.Density.Normalized)
	assert.Equal(t, 0, r.Peak.Normalized)
	assert.Equal(t, 0, r.Chaos.Normalized)
	assert.Equal(t, 0, r.Async.Normalized)
	assert.Equal(t, 0, r.Shift.Normalized)
	assert.Equal(t, 1, r.SuggestedLevelRounded)
}

func TestRadar(t *testing.T) {
	t.Parallel()

	p := newTimedPattern(120)
	for lane := 0; lane < 4; lane++ {
		p.Notes.Add(game.NewNote(game.Basic, lane*240, lane))
	}
	// hidden keysound notes do not count
	p.Notes.Add(game.NewNote(game.Basic, 120, 5))

	r := p.CalculateRadar()
	assert.InDelta(t, 4/1.5, r.Density.Raw, epsilon)
	assert.Equal(t, 29, r.Density.Normalized)
	assert.InDelta(t, 2.0, r.Peak.Raw, epsilon)
	assert.Equal(t, 9, r.Peak.Normalized)
	assert.InDelta(t, 30.0, r.Speed.Raw, epsilon)
	assert.Equal(t, 50, r.Speed.Normalized)
	assert.Equal(t, 0.0, r.Chaos.Raw)
	assert.Equal(t, 0.0, r.Async.Raw)
	assert.Equal(t, 0.0, r.Shift.Raw)
	assert.InDelta(t, 2.04, r.SuggestedLevel, 1e-6)
	assert.Equal(t, 2, r.SuggestedLevelRounded)
}

func TestRadarChaosAsyncShift(t *testing.T) {
	t.Parallel()

	p := newTimedPattern(120)
	p.Notes.Add(game.NewNote(game.Basic, 0, 0))
	p.Notes.Add(game.NewNote(game.Basic, 80, 1)) // triplet
	p.Notes.Add(game.NewHoldNote(game.Hold, 240, 2, 240))
	p.Notes.Add(game.NewNote(game.Basic, 300, 3)) // sixteenth
	p.BpmEvents = []game.BpmEvent{{Pulse: 480, Bpm: 180}, {Pulse: 960, Bpm: 90}}
	p.TimeStops = []game.TimeStop{{Pulse: 480, Duration: 60}}
	p.PrepareForTimeCalculation()

	r := p.CalculateRadar()
	assert.InDelta(t, 50.0, r.Chaos.Raw, epsilon)
	assert.Equal(t, 100, r.Chaos.Normalized)
	assert.InDelta(t, 25.0, r.Async.Raw, epsilon)
	assert.Equal(t, 63, r.Async.Normalized)
	assert.Equal(t, 2.0, r.Shift.Raw)
	assert.Equal(t, 40, r.Shift.Normalized)
}

func TestDivision(t *testing.T) {
	t.Parallel()

	for pulse, expected := range map[int]int{0: 1, 240: 1, 120: 2, 80: 3, 60: 4, 40: 6, 30: 8, 1: 240, -120: 2} {
		assert.Equal(t, expected, game.Division(pulse), "pulse %d", pulse)
	}
	assert.Equal(t, 120, game.Snap(130, 4))
	assert.Equal(t, 180, game.Snap(150, 4))
	assert.Equal(t, 0, game.Snap(-10, 4))
	assert.Equal(t, -60, game.Snap(-50, 4))
	assert.Equal(t, 7, game.Snap(7, 0))
}
