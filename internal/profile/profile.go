// Package profile owns the player's versioned settings documents. A Profile
// is loaded once and passed to whoever needs it; nothing here is global.
package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"git.lost.host/meutraa/techmania/internal/format"
)

type Profile struct {
	Dir        string
	Options    *Options
	Statistics *Statistics

	custom *Ruleset
	logger zerolog.Logger
}

// New returns a profile with default settings rooted at dir.
func New(dir string, logger zerolog.Logger) *Profile {
	return &Profile{
		Dir:        dir,
		Options:    DefaultOptions(),
		Statistics: NewStatistics(),
		logger:     logger.With().Str("module", "profile").Logger(),
	}
}

// Load reads every document under dir, upgrading older versions. Missing
// documents fall back to defaults.
func Load(dir string, logger zerolog.Logger) (*Profile, error) {
	p := New(dir, logger)

	options, err := loadOrDefault[*Options](p, OptionsRegistry, OptionsFilename)
	if nil != err {
		return nil, err
	}
	if nil != options {
		p.Options = options
	}

	stats, err := loadOrDefault[*Statistics](p, StatisticsRegistry, StatisticsFilename)
	if nil != err {
		return nil, err
	}
	if nil != stats {
		p.Statistics = stats
	}

	if p.Options.Ruleset == RulesetCustom {
		custom, err := loadOrDefault[*Ruleset](p, RulesetRegistry, RulesetFilename)
		if nil != err {
			return nil, err
		}
		if nil == custom {
			p.logger.Warn().Msg("Custom ruleset selected but not found, using standard ruleset")
			p.Options.Ruleset = RulesetStandard
		} else if err := custom.Validate(); nil != err {
			p.logger.Warn().Err(err).Msg("Custom ruleset is invalid, using standard ruleset")
			p.Options.Ruleset = RulesetStandard
		} else {
			custom.Name = RulesetCustom.String()
			p.custom = custom
		}
	}
	return p, nil
}

func loadOrDefault[T format.Document](p *Profile, r *format.Registry, filename string) (T, error) {
	var zero T
	path := filepath.Join(p.Dir, filename)
	doc, err := format.LoadFile[T](r, path)
	if nil != err {
		if errors.Is(err, os.ErrNotExist) {
			p.logger.Info().Str("file_path", path).Msg("Document not found, using defaults")
			return zero, nil
		}
		return zero, fmt.Errorf("failed to load %s: %w", r.Name(), err)
	}
	return doc, nil
}

// Ruleset returns the ruleset chosen in the options.
func (p *Profile) Ruleset() *Ruleset {
	switch p.Options.Ruleset {
	case RulesetLegacy:
		return LegacyRuleset()
	case RulesetCustom:
		if nil != p.custom {
			return p.custom
		}
	case RulesetStandard:
	}
	return StandardRuleset()
}

// SetCustomRuleset selects r and keeps it for the next Save.
func (p *Profile) SetCustomRuleset(r *Ruleset) error {
	if err := r.Validate(); nil != err {
		return err
	}
	r.Version = RulesetVersion
	r.Name = RulesetCustom.String()
	p.custom = r
	p.Options.Ruleset = RulesetCustom
	return nil
}

// Save writes every document at its latest version.
func (p *Profile) Save() error {
	if err := os.MkdirAll(p.Dir, 0o0755); nil != err {
		return fmt.Errorf("failed to create profile directory: %v", err)
	}
	docs := map[string]format.Document{
		OptionsFilename:    p.Options,
		StatisticsFilename: p.Statistics,
	}
	if nil != p.custom {
		docs[RulesetFilename] = p.custom
	}
	for filename, doc := range docs {
		if err := format.SaveFile(filepath.Join(p.Dir, filename), doc); nil != err {
			return err
		}
	}
	return nil
}
