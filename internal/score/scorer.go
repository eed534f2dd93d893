package score

import (
	"git.lost.host/meutraa/techmania/internal/game"
)

type Scorer interface {
	Init(path string) error
	Deinit()

	// Save the result of a play on the pattern
	Save(pattern *game.Pattern, tally *Tally, ruleset string, inputs []Input) (*Record, error)

	// Load previous plays of the pattern that still match its content
	Load(pattern *game.Pattern) ([]History, error)

	Export() (*Records, error)
	Import(data []byte) (int, error)
}

type History struct {
	Record
	Inputs []Input
}
