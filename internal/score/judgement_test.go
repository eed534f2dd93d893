package score_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"git.lost.host/meutraa/techmania/internal/game"
	"git.lost.host/meutraa/techmania/internal/profile"
	"git.lost.host/meutraa/techmania/internal/score"
)

func TestDistance(t *testing.T) {
	t.Parallel()

	n := &game.Note{Time: 1.0}
	testCases := []struct {
		name     string
		hit      time.Duration
		offset   time.Duration
		expected time.Duration
	}{
		{"exact", time.Second, 0, 0},
		{"early", 900 * time.Millisecond, 0, 100 * time.Millisecond},
		{"late", 1250 * time.Millisecond, 0, -250 * time.Millisecond},
		{"offset cancels lateness", 1100 * time.Millisecond, 100 * time.Millisecond, 0},
		{"negative offset", time.Second, -30 * time.Millisecond, -30 * time.Millisecond},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, score.Distance(n, tc.hit, tc.offset))
		})
	}
}

func TestJudge(t *testing.T) {
	t.Parallel()

	r := profile.StandardRuleset()
	testCases := []struct {
		distance time.Duration
		expected score.Judgement
		ok       bool
	}{
		{0, score.RainbowMax, true},
		{40 * time.Millisecond, score.RainbowMax, true},
		{-41 * time.Millisecond, score.Max, true},
		{70 * time.Millisecond, score.Max, true},
		{-100 * time.Millisecond, score.Cool, true},
		{130 * time.Millisecond, score.Good, true},
		{200 * time.Millisecond, score.Miss, true},
		{-201 * time.Millisecond, score.Break, false},
	}
	for _, tc := range testCases {
		j, ok := score.Judge(r, tc.distance)
		assert.Equal(t, tc.expected, j, "distance %s", tc.distance)
		assert.Equal(t, tc.ok, ok, "distance %s", tc.distance)
	}
}

func TestJudgementString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "RainbowMax", score.RainbowMax.String())
	assert.Equal(t, "Break", score.Break.String())
	assert.True(t, score.Good.Combos())
	assert.False(t, score.Miss.Combos())
}
