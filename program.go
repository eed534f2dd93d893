package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"git.lost.host/meutraa/techmania/internal/config"
	"git.lost.host/meutraa/techmania/internal/format"
	"git.lost.host/meutraa/techmania/internal/game"
	"git.lost.host/meutraa/techmania/internal/parser"
	"git.lost.host/meutraa/techmania/internal/profile"
	"git.lost.host/meutraa/techmania/internal/score"
)

type Program struct {
	Config  *config.Config
	Parser  *parser.CachedParser
	Scorer  *score.DefaultScorer
	Profile *profile.Profile

	out    io.Writer
	logger zerolog.Logger
}

func NewProgram(cfg *config.Config, out io.Writer, logger zerolog.Logger) *Program {
	return &Program{
		Config: cfg,
		out:    out,
		logger: logger,
	}
}

func (p *Program) Init() error {
	p.Parser = parser.NewCachedParser(&parser.DefaultParser{}, p.Config.CacheSize)
	p.Scorer = score.NewDefaultScorer(config.Version, p.logger)
	if err := p.Scorer.Init(p.Config.RecordsDatabase); nil != err {
		return err
	}

	prof, err := profile.Load(p.Config.ProfileFolder, p.logger)
	if nil != err {
		return err
	}
	p.Profile = prof
	return nil
}

func (p *Program) Deinit() {
	if nil != p.Scorer {
		p.Scorer.Deinit()
	}
	if nil != p.Parser {
		p.Parser.Stop()
	}
}

func (p *Program) table() *tabwriter.Writer {
	return tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
}

func (p *Program) Inspect(file string) error {
	track, err := p.Parser.Parse(file)
	if nil != err {
		return err
	}
	m := track.Metadata
	fmt.Fprintf(p.out, "%s - %s (%s)\n", m.Artist, m.Title, m.Genre)

	w := p.table()
	fmt.Fprintln(w, "guid\tname\tscheme\tlevel\tnotes\tbpm\tlength")
	for _, pattern := range track.Patterns {
		// Parsed tracks are shared through the cache.
		seconds, scans := pattern.Clone().GetLengthInSecondsAndScans()
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%g\t%s (%d scans)\n",
			pattern.Metadata.Guid,
			pattern.Metadata.PatternName,
			pattern.Metadata.ControlScheme,
			pattern.Metadata.Level,
			pattern.NumPlayableNotes(),
			pattern.Metadata.InitBpm,
			time.Duration(seconds*float64(time.Second)).Round(time.Millisecond),
			scans,
		)
	}
	return w.Flush()
}

func (p *Program) Radar(file, guid string) error {
	track, err := p.Parser.Parse(file)
	if nil != err {
		return err
	}

	w := p.table()
	fmt.Fprintln(w, "name\tdensity\tpeak\tspeed\tchaos\tasync\tshift\tlevel\tfingerprint")
	for _, pattern := range track.Patterns {
		if guid != "" && pattern.Metadata.Guid != guid {
			continue
		}
		r := pattern.Clone().CalculateRadar()
		fingerprint, err := pattern.Fingerprint()
		if nil != err {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%s\n",
			pattern.Metadata.PatternName,
			r.Density.Normalized,
			r.Peak.Normalized,
			r.Speed.Normalized,
			r.Chaos.Normalized,
			r.Async.Normalized,
			r.Shift.Normalized,
			r.SuggestedLevelRounded,
			fingerprint,
		)
	}
	return w.Flush()
}

// Upgrade rewrites a track at the latest version.
func (p *Program) Upgrade(file, output string) error {
	data, err := format.ReadFile(file)
	if nil != err {
		return err
	}
	from, err := format.Version(data)
	if nil != err {
		return fmt.Errorf("%s: %w", file, err)
	}
	track, err := game.LoadTrack(data)
	if nil != err {
		return fmt.Errorf("%s: %w", file, err)
	}
	if output == "" {
		output = file
	}
	if err := track.Write(output); nil != err {
		return err
	}
	p.logger.Info().Str("from", from).Str("to", game.TrackVersion).Str("file_path", output).Msg("Track upgraded")
	return nil
}

func (p *Program) ImportSM(file, output string) error {
	var psr parser.Parser = &parser.SMParser{}
	track, err := psr.Parse(file)
	if nil != err {
		return fmt.Errorf("%s: %w", file, err)
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o0755); nil != err {
		return fmt.Errorf("failed to create track directory: %v", err)
	}
	if err := track.Write(output); nil != err {
		return err
	}
	p.logger.Info().Int("patterns", len(track.Patterns)).Str("file_path", output).Msg("StepMania chart imported")
	return nil
}

func (p *Program) Scan(ctx context.Context, dir string) error {
	if dir == "" {
		dir = p.Config.TracksFolder
	}
	entries, err := parser.ScanLibrary(ctx, p.Parser, dir, p.Config.ScanConcurrency, p.logger)
	if nil != err {
		return err
	}

	w := p.table()
	fmt.Fprintln(w, "folder\ttitle\tartist\tpatterns")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", e.Folder, e.Track.Metadata.Title, e.Track.Metadata.Artist, len(e.Track.Patterns))
	}
	return w.Flush()
}

func (p *Program) Records(file, importFile, exportFile string) error {
	if importFile != "" {
		data, err := format.ReadFile(importFile)
		if nil != err {
			return err
		}
		n, err := p.Scorer.Import(data)
		if nil != err {
			return err
		}
		p.logger.Info().Int("records", n).Msg("Records imported")
	}

	track, err := p.Parser.Parse(file)
	if nil != err {
		return err
	}
	ruleset := p.Profile.Ruleset().Name
	fmt.Fprintf(p.out, "Ruleset: %s\n", ruleset)

	w := p.table()
	fmt.Fprintln(w, "name\tscore\trank\tmedal")
	for _, pattern := range track.Patterns {
		histories, err := p.Scorer.Load(pattern)
		if nil != err {
			return err
		}
		// Histories are best first.
		best, ok := lo.Find(histories, func(h score.History) bool { return h.Ruleset == ruleset })
		if !ok {
			fmt.Fprintf(w, "%s\t-\t-\t-\n", pattern.Metadata.PatternName)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", pattern.Metadata.PatternName, best.Score, score.Rank(best.Score), best.Medal)
	}
	if err := w.Flush(); nil != err {
		return err
	}

	if exportFile != "" {
		records, err := p.Scorer.Export()
		if nil != err {
			return err
		}
		if err := format.SaveFile(exportFile, records); nil != err {
			return err
		}
	}
	return nil
}
