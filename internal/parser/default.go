package parser

import (
	"git.lost.host/meutraa/techmania/internal/game"
)

// DefaultParser reads track files of any known version.
type DefaultParser struct{}

func (p *DefaultParser) Parse(file string) (*game.Track, error) {
	return game.ReadTrack(file)
}
