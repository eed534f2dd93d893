package score

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"git.lost.host/meutraa/techmania/internal/format"
	"git.lost.host/meutraa/techmania/internal/game"
)

// Ensure DefaultScorer is usable as a Scorer
var _ Scorer = (*DefaultScorer)(nil)

// DefaultScorer keeps every play in a sqlite database.
type DefaultScorer struct {
	GameVersion string

	db     *sql.DB
	logger zerolog.Logger
}

func NewDefaultScorer(gameVersion string, logger zerolog.Logger) *DefaultScorer {
	return &DefaultScorer{
		GameVersion: gameVersion,
		logger:      logger.With().Str("module", "score").Logger(),
	}
}

func (s *DefaultScorer) Init(path string) error {
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return fmt.Errorf("failed to open records database: %v", err)
	}

	initStatement := `
	create table if not exists records
	  (
		  id integer not null primary key,
		  guid text not null,
		  fingerprint text not null,
		  score integer not null,
		  medal integer not null,
		  ruleset text not null,
		  game_version text not null,
		  inputs blob,
		  saved_at integer not null
	  );
	create index if not exists records_guid on records(guid);
	`
	if _, err := db.Exec(initStatement); nil != err {
		_ = db.Close()
		return fmt.Errorf("failed to create records table: %v", err)
	}

	s.db = db
	return nil
}

func (s *DefaultScorer) Deinit() {
	if nil != s.db {
		if err := s.db.Close(); nil != err {
			s.logger.Error().Err(err).Msg("Failed to close records database")
		}
		s.db = nil
	}
}

func (s *DefaultScorer) insert(rec Record, inputs []byte) error {
	_, err := s.db.Exec(
		"insert into records(guid, fingerprint, score, medal, ruleset, game_version, inputs, saved_at) values(?, ?, ?, ?, ?, ?, ?, ?)",
		rec.Guid, rec.Fingerprint, rec.Score, int(rec.Medal), rec.Ruleset, rec.GameVersion, inputs, time.Now().Unix(),
	)
	return err
}

func (s *DefaultScorer) Save(pattern *game.Pattern, tally *Tally, ruleset string, inputs []Input) (*Record, error) {
	fingerprint, err := pattern.Fingerprint()
	if nil != err {
		return nil, err
	}
	data, err := json.Marshal(compactInputs(inputs))
	if nil != err {
		return nil, fmt.Errorf("failed to marshal inputs: %v", err)
	}

	rec := Record{
		Guid:        pattern.Metadata.Guid,
		Fingerprint: fingerprint,
		Score:       tally.Score(),
		Medal:       tally.Medal(),
		Ruleset:     ruleset,
		GameVersion: s.GameVersion,
	}
	if err := s.insert(rec, data); nil != err {
		return nil, fmt.Errorf("failed to save record: %v", err)
	}
	return &rec, nil
}

// Load returns plays of the pattern, best first. Plays set on different
// pattern content are skipped.
func (s *DefaultScorer) Load(pattern *game.Pattern) ([]History, error) {
	fingerprint, err := pattern.Fingerprint()
	if nil != err {
		return nil, err
	}
	logger := s.logger.With().Str("guid", pattern.Metadata.Guid).Logger()

	rows, err := s.db.Query(
		"select guid, fingerprint, score, medal, ruleset, game_version, inputs from records where guid = ? order by score desc, saved_at desc",
		pattern.Metadata.Guid,
	)
	if nil != err {
		if errors.Is(err, sql.ErrNoRows) {
			return []History{}, nil
		}
		return nil, fmt.Errorf("failed to load records: %v", err)
	}
	defer rows.Close()

	histories := []History{}
	for rows.Next() {
		var (
			h      History
			medal  int
			inputs []byte
		)
		if err := rows.Scan(&h.Guid, &h.Fingerprint, &h.Score, &medal, &h.Ruleset, &h.GameVersion, &inputs); nil != err {
			return nil, fmt.Errorf("failed to scan record: %v", err)
		}
		h.Medal = Medal(medal)
		if h.Fingerprint != fingerprint {
			logger.Warn().Str("record_fingerprint", h.Fingerprint).Str("pattern_fingerprint", fingerprint).Msg("Skipping record set on a different version of the pattern")
			continue
		}
		var lanes []LaneInputs
		if len(inputs) > 0 {
			if err := json.Unmarshal(inputs, &lanes); nil != err {
				logger.Warn().Err(err).Msg("Unable to unmarshal inputs of record")
			}
		}
		h.Inputs = uncompactInputs(lanes)
		histories = append(histories, h)
	}
	if err := rows.Err(); nil != err {
		return nil, fmt.Errorf("failed to iterate records: %v", err)
	}
	return histories, nil
}

// Export returns the best record of every pattern and fingerprint.
func (s *DefaultScorer) Export() (*Records, error) {
	rows, err := s.db.Query("select guid, fingerprint, score, medal, ruleset, game_version from records order by score desc, saved_at desc")
	if nil != err {
		return nil, fmt.Errorf("failed to export records: %v", err)
	}
	defer rows.Close()

	all := []Record{}
	for rows.Next() {
		var (
			rec   Record
			medal int
		)
		if err := rows.Scan(&rec.Guid, &rec.Fingerprint, &rec.Score, &medal, &rec.Ruleset, &rec.GameVersion); nil != err {
			return nil, fmt.Errorf("failed to scan record: %v", err)
		}
		rec.Medal = Medal(medal)
		all = append(all, rec)
	}
	if err := rows.Err(); nil != err {
		return nil, fmt.Errorf("failed to iterate records: %v", err)
	}

	out := NewRecords()
	out.Records = lo.UniqBy(all, func(r Record) string { return r.Guid + "/" + r.Fingerprint })
	return out, nil
}

// Import adds every record of a records document of any version.
func (s *DefaultScorer) Import(data []byte) (int, error) {
	records, err := format.Load[*Records](RecordsRegistry, data)
	if nil != err {
		return 0, err
	}
	for i, rec := range records.Records {
		if err := s.insert(rec, nil); nil != err {
			return i, fmt.Errorf("failed to import record for %q: %v", rec.Guid, err)
		}
	}
	return len(records.Records), nil
}
