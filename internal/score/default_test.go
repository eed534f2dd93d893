package score_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.lost.host/meutraa/techmania/internal/game"
	"git.lost.host/meutraa/techmania/internal/profile"
	"git.lost.host/meutraa/techmania/internal/score"
	"git.lost.host/meutraa/techmania/internal/testdata"
)

func newScorer(t *testing.T) *score.DefaultScorer {
	t.Helper()
	s := score.NewDefaultScorer("test", zerolog.Nop())
	require.NoError(t, s.Init(filepath.Join(t.TempDir(), "records.db")))
	t.Cleanup(s.Deinit)
	return s
}

func TestScorerSaveLoad(t *testing.T) {
	t.Parallel()

	s := newScorer(t)
	p := replayPattern()
	r := profile.StandardRuleset()

	weak := []score.Input{{Lane: 0, HitTime: 0}}
	rec, err := s.Save(p, score.Replay(p, r, weak, 0), r.Name, weak)
	require.NoError(t, err)
	assert.Equal(t, 75000, rec.Score)
	assert.Equal(t, "test", rec.GameVersion)

	strong := []score.Input{
		{Lane: 0, HitTime: 0},
		{Lane: 1, HitTime: 500 * time.Millisecond},
		{Lane: 2, HitTime: time.Second},
		{Lane: 3, HitTime: 1500 * time.Millisecond},
	}
	_, err = s.Save(p, score.Replay(p, r, strong, 0), r.Name, strong)
	require.NoError(t, err)

	histories, err := s.Load(p)
	require.NoError(t, err)
	require.Len(t, histories, 2)
	assert.Equal(t, score.MaxScore, histories[0].Score)
	assert.Equal(t, score.MedalPerfectPlay, histories[0].Medal)
	assert.Equal(t, "Standard", histories[0].Ruleset)
	assert.Equal(t, strong, histories[0].Inputs)
	assert.Equal(t, weak, histories[1].Inputs)
}

func TestScorerSkipsStaleRecords(t *testing.T) {
	t.Parallel()

	s := newScorer(t)
	p := replayPattern()
	r := profile.StandardRuleset()
	_, err := s.Save(p, score.Replay(p, r, nil, 0), r.Name, nil)
	require.NoError(t, err)

	edited := p.Clone()
	edited.Notes.Add(game.NewNote(game.Basic, 960, 0))
	histories, err := s.Load(edited)
	require.NoError(t, err)
	assert.Empty(t, histories)

	other := game.NewPattern("Other")
	histories, err = s.Load(other)
	require.NoError(t, err)
	assert.Empty(t, histories)
}

func TestScorerExportImport(t *testing.T) {
	t.Parallel()

	s := newScorer(t)
	p := replayPattern()
	r := profile.StandardRuleset()
	for _, inputs := range [][]score.Input{nil, {{Lane: 0, HitTime: 0}}} {
		_, err := s.Save(p, score.Replay(p, r, inputs, 0), r.Name, inputs)
		require.NoError(t, err)
	}

	n, err := s.Import(testdata.RecordsV1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	records, err := s.Export()
	require.NoError(t, err)
	require.Len(t, records.Records, 2)
	assert.Equal(t, 291234, records.Records[0].Score)
	assert.Equal(t, "Standard", records.Records[0].Ruleset)

	best := records.Find(p.Metadata.Guid)
	require.NotNil(t, best)
	assert.Equal(t, 75000, best.Score)

	_, err = s.Import([]byte(`{"version":"7","records":[]}`))
	assert.Error(t, err)
}
