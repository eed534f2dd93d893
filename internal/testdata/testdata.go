// Package testdata holds sample documents in every on-disk version.
package testdata

import (
	_ "embed"
)

var (
	//go:embed track_v1.json
	TrackV1 []byte
	//go:embed track_v2.json
	TrackV2 []byte
	//go:embed track_v3.json
	TrackV3 []byte
	//go:embed options_v1.json
	OptionsV1 []byte
	//go:embed ruleset_v1.json
	RulesetV1 []byte
	//go:embed records_v1.json
	RecordsV1 []byte
	//go:embed sample.sm
	SampleSM string
)
