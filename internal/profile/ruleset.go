package profile

import (
	"errors"
	"fmt"
	"math"
	"time"

	"git.lost.host/meutraa/techmania/internal/format"
	"git.lost.host/meutraa/techmania/internal/game"
)

const (
	RulesetFilename  = "ruleset.json"
	RulesetVersionV1 = "1"
	RulesetVersion   = "2"

	// Windows are ordered RainbowMax, Max, Cool, Good, Miss. HP deltas have
	// one more entry for Break.
	NumTimeWindows = 5
	NumHPDeltas    = NumTimeWindows + 1
)

var RulesetRegistry = format.MustRegistry("ruleset",
	format.Entry{Version: RulesetVersionV1, New: func() format.Document { return &RulesetV1{} }},
	format.Entry{Version: RulesetVersion, Latest: true, New: func() format.Document { return &Ruleset{} }},
)

var ErrInvalidRuleset = errors.New("invalid ruleset")

type Ruleset struct {
	Version string `json:"version"`
	Name    string `json:"-"`

	TimeWindowsMs []int `json:"timeWindowsMs"`
	MaxHP         int   `json:"maxHp"`

	HPDeltaBasic  []int `json:"hpDeltaBasic"`
	HPDeltaChain  []int `json:"hpDeltaChain"`
	HPDeltaHold   []int `json:"hpDeltaHold"`
	HPDeltaDrag   []int `json:"hpDeltaDrag"`
	HPDeltaRepeat []int `json:"hpDeltaRepeat"`
}

// StandardRuleset is the default ruleset for new profiles.
func StandardRuleset() *Ruleset {
	return &Ruleset{
		Version:       RulesetVersion,
		Name:          RulesetStandard.String(),
		TimeWindowsMs: []int{40, 70, 100, 130, 200},
		MaxHP:         1000,
		HPDeltaBasic:  []int{3, 3, 3, 3, -50, -50},
		HPDeltaChain:  []int{1, 1, 1, 1, -20, -20},
		HPDeltaHold:   []int{3, 3, 3, 3, -50, -50},
		HPDeltaDrag:   []int{3, 3, 3, 3, -50, -50},
		HPDeltaRepeat: []int{1, 1, 1, 1, -20, -20},
	}
}

// LegacyRuleset matches the windows of the oldest releases.
func LegacyRuleset() *Ruleset {
	r := StandardRuleset()
	r.Name = RulesetLegacy.String()
	r.TimeWindowsMs = []int{33, 66, 100, 133, 166}
	return r
}

func (r *Ruleset) FormatVersion() string {
	return r.Version
}

func (r *Ruleset) Upgrade() (format.Document, error) {
	return r, nil
}

func (r *Ruleset) Validate() error {
	if len(r.TimeWindowsMs) != NumTimeWindows {
		return fmt.Errorf("%w: expected %d time windows, got %d", ErrInvalidRuleset, NumTimeWindows, len(r.TimeWindowsMs))
	}
	for i := 1; i < len(r.TimeWindowsMs); i++ {
		if r.TimeWindowsMs[i] < r.TimeWindowsMs[i-1] {
			return fmt.Errorf("%w: time windows must not decrease", ErrInvalidRuleset)
		}
	}
	if r.MaxHP <= 0 {
		return fmt.Errorf("%w: max hp must be positive", ErrInvalidRuleset)
	}
	for name, deltas := range map[string][]int{
		"basic":  r.HPDeltaBasic,
		"chain":  r.HPDeltaChain,
		"hold":   r.HPDeltaHold,
		"drag":   r.HPDeltaDrag,
		"repeat": r.HPDeltaRepeat,
	} {
		if len(deltas) != NumHPDeltas {
			return fmt.Errorf("%w: expected %d %s hp deltas, got %d", ErrInvalidRuleset, NumHPDeltas, name, len(deltas))
		}
	}
	return nil
}

// TimeWindow returns the i-th window as a duration.
func (r *Ruleset) TimeWindow(i int) time.Duration {
	return time.Duration(r.TimeWindowsMs[i]) * time.Millisecond
}

// HPDelta is the change in HP when a note of type t receives the i-th
// judgement.
func (r *Ruleset) HPDelta(t game.NoteType, i int) int {
	switch t {
	case game.ChainHead, game.ChainNode:
		return r.HPDeltaChain[i]
	case game.Hold:
		return r.HPDeltaHold[i]
	case game.Drag:
		return r.HPDeltaDrag[i]
	case game.RepeatHead, game.RepeatHeadHold, game.Repeat, game.RepeatHold:
		return r.HPDeltaRepeat[i]
	case game.Basic:
		return r.HPDeltaBasic[i]
	}
	return r.HPDeltaBasic[i]
}

// RulesetV1 measures windows in seconds and applies one HP table to every
// note type.
type RulesetV1 struct {
	Version     string    `json:"version"`
	TimeWindows []float64 `json:"timeWindows"`
	MaxHP       int       `json:"maxHp"`
	HPDelta     []int     `json:"hpDelta"`
}

func (r *RulesetV1) FormatVersion() string {
	return r.Version
}

func (r *RulesetV1) Upgrade() (format.Document, error) {
	windows := make([]int, len(r.TimeWindows))
	for i, w := range r.TimeWindows {
		windows[i] = int(math.Round(w * 1000))
	}
	return &Ruleset{
		Version:       RulesetVersion,
		TimeWindowsMs: windows,
		MaxHP:         r.MaxHP,
		HPDeltaBasic:  append([]int{}, r.HPDelta...),
		HPDeltaChain:  append([]int{}, r.HPDelta...),
		HPDeltaHold:   append([]int{}, r.HPDelta...),
		HPDeltaDrag:   append([]int{}, r.HPDelta...),
		HPDeltaRepeat: append([]int{}, r.HPDelta...),
	}, nil
}
