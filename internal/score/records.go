package score

import (
	"git.lost.host/meutraa/techmania/internal/format"
)

const (
	RecordsFilename  = "records.json"
	RecordsVersionV1 = "1"
	RecordsVersion   = "2"
)

var RecordsRegistry = format.MustRegistry("records",
	format.Entry{Version: RecordsVersionV1, New: func() format.Document { return &RecordsV1{} }},
	format.Entry{Version: RecordsVersion, Latest: true, New: func() format.Document { return &Records{} }},
)

// Record is the best result on one pattern. The fingerprint ties it to the
// pattern content it was achieved on.
type Record struct {
	Guid        string `json:"guid"`
	Fingerprint string `json:"fingerprint"`
	Score       int    `json:"score"`
	Medal       Medal  `json:"medal"`
	Ruleset     string `json:"ruleset"`
	GameVersion string `json:"gameVersion"`
}

type Records struct {
	Version string   `json:"version"`
	Records []Record `json:"records"`
}

func NewRecords() *Records {
	return &Records{Version: RecordsVersion, Records: []Record{}}
}

func (r *Records) FormatVersion() string {
	return r.Version
}

func (r *Records) Upgrade() (format.Document, error) {
	return r, nil
}

// Find returns the record for a pattern guid, or nil.
func (r *Records) Find(guid string) *Record {
	for i := range r.Records {
		if r.Records[i].Guid == guid {
			return &r.Records[i]
		}
	}
	return nil
}

type RecordV1 struct {
	Guid        string `json:"guid"`
	Fingerprint string `json:"fingerprint"`
	Score       int    `json:"score"`
	Medal       Medal  `json:"medal"`
}

// RecordsV1 predates selectable rulesets; every record was set on the
// standard one.
type RecordsV1 struct {
	Version string     `json:"version"`
	Records []RecordV1 `json:"records"`
}

func (r *RecordsV1) FormatVersion() string {
	return r.Version
}

func (r *RecordsV1) Upgrade() (format.Document, error) {
	out := NewRecords()
	for _, rec := range r.Records {
		out.Records = append(out.Records, Record{
			Guid:        rec.Guid,
			Fingerprint: rec.Fingerprint,
			Score:       rec.Score,
			Medal:       rec.Medal,
			Ruleset:     "Standard",
		})
	}
	return out, nil
}
