package score

import (
	"math"
	"time"

	"git.lost.host/meutraa/techmania/internal/game"
	"git.lost.host/meutraa/techmania/internal/profile"
)

type Judgement int

const (
	RainbowMax Judgement = iota
	Max
	Cool
	Good
	Miss
	Break

	numJudgements = int(Break) + 1
)

func (j Judgement) String() string {
	switch j {
	case RainbowMax:
		return "RainbowMax"
	case Max:
		return "Max"
	case Cool:
		return "Cool"
	case Good:
		return "Good"
	case Miss:
		return "Miss"
	case Break:
		return "Break"
	}
	return "Unknown"
}

// Combos reports whether the judgement keeps the combo alive.
func (j Judgement) Combos() bool {
	return j < Miss
}

func abs(x time.Duration) time.Duration {
	if x < 0 {
		return -x
	}
	return x
}

// Distance is how early a hit is relative to its note, after removing the
// player's input offset. Negative distances are late hits.
func Distance(n *game.Note, hitTime, offset time.Duration) time.Duration {
	noteTime := time.Duration(math.Round(n.Time * float64(time.Second)))
	return noteTime - (hitTime - offset)
}

// Judge maps a hit distance to the tightest window containing it. Hits
// outside the Miss window do not count as hits at all.
func Judge(r *profile.Ruleset, distance time.Duration) (Judgement, bool) {
	d := abs(distance)
	for i := 0; i < profile.NumTimeWindows; i++ {
		if d <= r.TimeWindow(i) {
			return Judgement(i), true
		}
	}
	return Break, false
}
