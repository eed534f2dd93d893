package score

import (
	"github.com/samber/lo"
)

const MaxScore = 300000

type Medal int

const (
	MedalNone Medal = iota
	MedalAllCombo
	MedalPerfectPlay
)

func (m Medal) String() string {
	switch m {
	case MedalAllCombo:
		return "AllCombo"
	case MedalPerfectPlay:
		return "PerfectPlay"
	case MedalNone:
	}
	return "None"
}

// Score weights in tenths of a note's share of MaxScore.
var judgementWeights = [numJudgements]int{10, 10, 9, 5, 0, 0}

var ranks = []struct {
	min  int
	name string
}{
	{295000, "S+"},
	{285000, "S"},
	{270000, "A+"},
	{250000, "A"},
	{220000, "B"},
	{0, "C"},
}

// Tally counts judgements over one play of a pattern.
type Tally struct {
	Counts   [numJudgements]int
	Combo    int
	MaxCombo int
	HP       int
	Total    int // playable notes in the pattern
}

func NewTally(total, maxHP int) *Tally {
	return &Tally{Total: total, HP: maxHP}
}

func (t *Tally) Add(j Judgement, hpDelta, maxHP int) {
	t.Counts[j]++
	if j.Combos() {
		t.Combo++
		t.MaxCombo = max(t.MaxCombo, t.Combo)
	} else {
		t.Combo = 0
	}
	t.HP = min(maxHP, max(0, t.HP+hpDelta))
}

func (t *Tally) Judged() int {
	return lo.Sum(t.Counts[:])
}

// Score scales to MaxScore when every note is a Max or better.
func (t *Tally) Score() int {
	if t.Total == 0 {
		return 0
	}
	weighted := 0
	for j, c := range t.Counts {
		weighted += c * judgementWeights[j]
	}
	return weighted * MaxScore / (10 * t.Total)
}

func (t *Tally) Medal() Medal {
	if t.Total == 0 || t.Judged() < t.Total || t.Counts[Miss] > 0 || t.Counts[Break] > 0 {
		return MedalNone
	}
	if t.Counts[Cool] == 0 && t.Counts[Good] == 0 {
		return MedalPerfectPlay
	}
	return MedalAllCombo
}

func Rank(score int) string {
	for _, r := range ranks {
		if score >= r.min {
			return r.name
		}
	}
	return ranks[len(ranks)-1].name
}
