package parser

import "git.lost.host/meutraa/techmania/internal/game"

type Parser interface {
	Parse(file string) (*game.Track, error)
}
