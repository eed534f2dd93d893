package score

import (
	"time"

	"github.com/samber/lo"

	"git.lost.host/meutraa/techmania/internal/game"
	"git.lost.host/meutraa/techmania/internal/profile"
)

// Input is one touch or key press on a lane.
type Input struct {
	Lane    int
	HitTime time.Duration
}

// LaneInputs is the stored form of a play: hit times grouped by lane.
type LaneInputs struct {
	Lane  int             `json:"lane"`
	Times []time.Duration `json:"times"`
}

func compactInputs(inputs []Input) []LaneInputs {
	laneCount := 0
	for _, i := range inputs {
		laneCount = max(laneCount, i.Lane+1)
	}
	lanes := make([]LaneInputs, laneCount)
	for i := range lanes {
		lanes[i] = LaneInputs{Lane: i, Times: []time.Duration{}}
	}
	for _, i := range inputs {
		lanes[i.Lane].Times = append(lanes[i.Lane].Times, i.HitTime)
	}
	return lanes
}

func uncompactInputs(lanes []LaneInputs) []Input {
	inputs := []Input{}
	for _, l := range lanes {
		for _, t := range l.Times {
			inputs = append(inputs, Input{Lane: l.Lane, HitTime: t})
		}
	}
	return inputs
}

// Replay judges inputs against the playable notes of p. Each input hits the
// closest unhit note in its lane; notes left unhit count as Miss.
func Replay(p *game.Pattern, r *profile.Ruleset, inputs []Input, offset time.Duration) *Tally {
	p.CalculateTimeOfAllNotes()
	notes := p.PlayableNotes()
	byLane := lo.GroupBy(notes, func(n *game.Note) int { return n.Lane })
	hit := make(map[*game.Note]bool, len(notes))

	tally := NewTally(len(notes), r.MaxHP)
	for _, input := range inputs {
		note, distance := closestNote(byLane[input.Lane], hit, input.HitTime, offset)
		if nil == note {
			continue
		}
		j, ok := Judge(r, distance)
		if !ok {
			continue
		}
		hit[note] = true
		tally.Add(j, r.HPDelta(note.Type, int(j)), r.MaxHP)
	}

	for _, n := range notes {
		if !hit[n] {
			tally.Add(Miss, r.HPDelta(n.Type, int(Miss)), r.MaxHP)
		}
	}
	return tally
}

// closestNote expects notes in time order.
func closestNote(notes []*game.Note, hit map[*game.Note]bool, hitTime, offset time.Duration) (*game.Note, time.Duration) {
	var closest *game.Note
	absDistance := time.Hour * 24
	distance := time.Hour * 24

	for _, n := range notes {
		if hit[n] {
			continue
		}
		dd := Distance(n, hitTime, offset)
		d := abs(dd)
		if d < absDistance {
			distance = dd
			absDistance = d
			closest = n
		} else if nil != closest {
			// already past the closest note
			break
		}
	}
	return closest, distance
}
