package profile_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.lost.host/meutraa/techmania/internal/profile"
	"git.lost.host/meutraa/techmania/internal/testdata"
)

func writeDoc(t *testing.T, dir, filename string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), data, 0o600))
}

func TestLoadEmptyDir(t *testing.T) {
	t.Parallel()

	p, err := profile.Load(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, profile.DefaultOptions(), p.Options)
	assert.Equal(t, profile.NewStatistics(), p.Statistics)
	assert.Equal(t, profile.StandardRuleset(), p.Ruleset())
}

func TestLoadUpgradesOptions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDoc(t, dir, profile.OptionsFilename, testdata.OptionsV1)

	p, err := profile.Load(dir, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 25, p.Options.SfxVolumePercent)
	assert.Equal(t, profile.LegacyRuleset(), p.Ruleset())
}

func TestLoadCorruptDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDoc(t, dir, profile.StatisticsFilename, []byte(`{"version":"42"}`))

	_, err := profile.Load(dir, zerolog.Nop())
	assert.ErrorContains(t, err, "failed to load statistics")
}

func TestSaveLoad(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "profile")
	p := profile.New(dir, zerolog.Nop())
	p.Options.Locale = "fr"
	p.Statistics.RecordPlay(90*time.Second, 120, 80)
	p.Statistics.RecordPlay(30*time.Second, 10, 40)

	custom := profile.StandardRuleset()
	custom.TimeWindowsMs = []int{20, 40, 60, 80, 100}
	require.NoError(t, p.SetCustomRuleset(custom))
	require.NoError(t, p.Save())

	loaded, err := profile.Load(dir, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "fr", loaded.Options.Locale)
	assert.Equal(t, profile.RulesetCustom, loaded.Options.Ruleset)
	assert.Equal(t, 2, loaded.Statistics.TotalPatternsPlayed)
	assert.Equal(t, int64(130), loaded.Statistics.TotalNotesHit)
	assert.Equal(t, 80, loaded.Statistics.MaxCombo)
	assert.InDelta(t, 120, loaded.Statistics.TimeInGame, 1e-9)

	r := loaded.Ruleset()
	assert.Equal(t, "Custom", r.Name)
	assert.Equal(t, []int{20, 40, 60, 80, 100}, r.TimeWindowsMs)
}

func TestSaveWithoutCustomRuleset(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, profile.New(dir, zerolog.Nop()).Save())

	_, err := os.Stat(filepath.Join(dir, profile.OptionsFilename))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, profile.RulesetFilename))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSetCustomRulesetInvalid(t *testing.T) {
	t.Parallel()

	p := profile.New(t.TempDir(), zerolog.Nop())
	bad := profile.StandardRuleset()
	bad.MaxHP = -1

	require.ErrorIs(t, p.SetCustomRuleset(bad), profile.ErrInvalidRuleset)
	assert.Equal(t, profile.RulesetStandard, p.Options.Ruleset)
}

func TestCustomRulesetFallback(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		ruleset []byte
		message string
	}{
		{name: "missing", message: "Custom ruleset selected but not found"},
		{
			name:    "invalid",
			ruleset: []byte(`{"version":"2","timeWindowsMs":[10,20],"maxHp":100}`),
			message: "Custom ruleset is invalid",
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeDoc(t, dir, profile.OptionsFilename, []byte(`{"version":"3","ruleset":2}`))
			if nil != tc.ruleset {
				writeDoc(t, dir, profile.RulesetFilename, tc.ruleset)
			}

			var buf bytes.Buffer
			p, err := profile.Load(dir, zerolog.New(&buf))
			require.NoError(t, err)
			assert.Equal(t, profile.RulesetStandard, p.Options.Ruleset)
			assert.Equal(t, profile.StandardRuleset(), p.Ruleset())
			assert.Contains(t, buf.String(), tc.message)
		})
	}
}
