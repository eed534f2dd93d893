package parser

import (
	"fmt"
	"os"
	"time"

	"github.com/karlseguin/ccache/v3"

	"git.lost.host/meutraa/techmania/internal/game"
)

var DefaultTrackTTL = 10 * time.Minute

// CachedParser memoises another parser. Entries are keyed by path and
// modification time, so an edited file is parsed again. Returned tracks are
// shared and must not be modified.
type CachedParser struct {
	Parser Parser
	TTL    time.Duration

	c *ccache.Cache[*game.Track]
}

func NewCachedParser(p Parser, size int64) *CachedParser {
	return &CachedParser{
		Parser: p,
		TTL:    DefaultTrackTTL,
		c: ccache.New(
			ccache.Configure[*game.Track]().
				MaxSize(size).
				GetsPerPromote(3).
				ItemsToPrune(1),
		),
	}
}

func (p *CachedParser) Parse(file string) (*game.Track, error) {
	info, err := os.Stat(file)
	if nil != err {
		return nil, fmt.Errorf("failed to stat track file: %w", err)
	}
	key := fmt.Sprintf("%s@%d", file, info.ModTime().UnixNano())
	item, err := p.c.Fetch(key, p.TTL, func() (*game.Track, error) {
		return p.Parser.Parse(file)
	})
	if nil != err {
		return nil, err
	}
	return item.Value(), nil
}

func (p *CachedParser) Len() int {
	return p.c.ItemCount()
}

func (p *CachedParser) Stop() {
	p.c.Stop()
}
