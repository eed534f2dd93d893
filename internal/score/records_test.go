package score_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.lost.host/meutraa/techmania/internal/format"
	"git.lost.host/meutraa/techmania/internal/score"
	"git.lost.host/meutraa/techmania/internal/testdata"
)

func TestLoadRecordsV1(t *testing.T) {
	t.Parallel()

	records, err := format.Load[*score.Records](score.RecordsRegistry, testdata.RecordsV1)
	require.NoError(t, err)
	assert.Equal(t, score.RecordsVersion, records.Version)
	require.Len(t, records.Records, 1)

	rec := records.Find("3b9d1f4e-2a6c-4e8b-9f0a-7c5d3e1b2a33")
	require.NotNil(t, rec)
	assert.Equal(t, score.Record{
		Guid:        "3b9d1f4e-2a6c-4e8b-9f0a-7c5d3e1b2a33",
		Fingerprint: "stale",
		Score:       291234,
		Medal:       score.MedalAllCombo,
		Ruleset:     "Standard",
	}, *rec)
	assert.Nil(t, records.Find("other"))
}
