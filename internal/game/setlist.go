package game

import (
	"fmt"

	"github.com/google/uuid"

	"git.lost.host/meutraa/techmania/internal/format"
)

const (
	SetlistFilename = "setlist.tech"
	SetlistVersion  = "1"
)

var SetlistRegistry = format.MustRegistry("setlist",
	format.Entry{Version: SetlistVersion, Latest: true, New: func() format.Document { return &Setlist{} }},
)

type SetlistMetadata struct {
	Guid          string        `json:"guid"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	EyecatchImage string        `json:"eyecatchImage"`
	BackImage     string        `json:"backImage"`
	ControlScheme ControlScheme `json:"controlScheme"`
}

// PatternReference points at a pattern inside another track. Titles and
// names are informational; lookups use the GUIDs.
type PatternReference struct {
	TrackTitle  string `json:"trackTitle"`
	TrackGuid   string `json:"trackGuid"`
	PatternName string `json:"patternName"`
	PatternGuid string `json:"patternGuid"`
}

type CriteriaType int

const (
	CriteriaIndex CriteriaType = iota
	CriteriaLevel
	CriteriaHP
	CriteriaScore
	CriteriaCombo
	CriteriaMaxCombo
	CriteriaD100
)

type CriteriaDirection int

const (
	CriteriaBelow CriteriaDirection = iota
	CriteriaAbove
)

// HiddenPattern is unlocked mid-setlist when its criteria holds.
type HiddenPattern struct {
	Reference PatternReference  `json:"reference"`
	Criteria  CriteriaType      `json:"criteriaType"`
	Direction CriteriaDirection `json:"criteriaDirection"`
	Value     int               `json:"criteriaValue"`
}

// Matches reports whether value satisfies the unlock criteria.
func (h HiddenPattern) Matches(value int) bool {
	if h.Direction == CriteriaAbove {
		return value > h.Value
	}
	return value < h.Value
}

type Setlist struct {
	Version            string             `json:"version"`
	SetlistMetadata    SetlistMetadata    `json:"setlistMetadata"`
	SelectablePatterns []PatternReference `json:"selectablePatterns"`
	HiddenPatterns     []HiddenPattern    `json:"hiddenPatterns"`
}

func NewSetlist(title string) *Setlist {
	return &Setlist{
		Version: SetlistVersion,
		SetlistMetadata: SetlistMetadata{
			Guid:  uuid.NewString(),
			Title: title,
		},
		SelectablePatterns: []PatternReference{},
		HiddenPatterns:     []HiddenPattern{},
	}
}

func (s *Setlist) FormatVersion() string {
	return s.Version
}

func (s *Setlist) Upgrade() (format.Document, error) {
	return s, nil
}

func ReadSetlist(path string) (*Setlist, error) {
	return format.LoadFile[*Setlist](SetlistRegistry, path)
}

func (s *Setlist) Write(path string) error {
	return format.SaveFile(path, s)
}

// Resolve finds every referenced pattern among tracks. References that no
// longer resolve are returned separately.
func (s *Setlist) Resolve(tracks []*Track) ([]*Pattern, []PatternReference) {
	byGuid := make(map[string]*Track, len(tracks))
	for _, t := range tracks {
		byGuid[t.Metadata.Guid] = t
	}

	var (
		found   []*Pattern
		missing []PatternReference
	)
	refs := append([]PatternReference{}, s.SelectablePatterns...)
	for _, h := range s.HiddenPatterns {
		refs = append(refs, h.Reference)
	}
	for _, ref := range refs {
		t, ok := byGuid[ref.TrackGuid]
		if !ok {
			missing = append(missing, ref)
			continue
		}
		p := t.FindPattern(ref.PatternGuid)
		if nil == p {
			missing = append(missing, ref)
			continue
		}
		found = append(found, p)
	}
	return found, missing
}

func (r PatternReference) String() string {
	return fmt.Sprintf("%s - %s", r.TrackTitle, r.PatternName)
}
