package game

import (
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type PatternMetadata struct {
	Guid            string        `json:"guid"`
	PatternName     string        `json:"patternName"`
	Level           int           `json:"level"`
	ControlScheme   ControlScheme `json:"controlScheme"`
	PlayableLanes   int           `json:"playableLanes"`
	Author          string        `json:"author"`
	BackingTrack    string        `json:"backingTrack"`
	BackImage       string        `json:"backImage"`
	Bga             string        `json:"bga"`
	BgaOffset       float64       `json:"bgaOffset"`
	WaitForEndOfBga bool          `json:"waitForEndOfBga"`
	PlayBgaOnLoop   bool          `json:"playBgaOnLoop"`
	FirstBeatOffset float64       `json:"firstBeatOffset"` // seconds at pulse 0
	InitBpm         float64       `json:"initBpm"`
	Bps             int           `json:"bps"` // beats per scan
}

type BpmEvent struct {
	Pulse int     `json:"pulse"`
	Bpm   float64 `json:"bpm"`

	Time float64 `json:"-"`
}

type TimeStop struct {
	Pulse    int `json:"pulse"`
	Duration int `json:"duration"` // pulses

	Time       float64 `json:"-"`
	EndTime    float64 `json:"-"`
	BpmAtStart float64 `json:"-"`
}

// Pattern is one playable chart of a track. Notes are owned exclusively by
// the pattern.
type Pattern struct {
	Metadata  PatternMetadata
	BpmEvents []BpmEvent
	TimeStops []TimeStop
	Notes     NoteSet

	timeline []timelineEvent
}

func NewPattern(name string) *Pattern {
	return &Pattern{
		Metadata: PatternMetadata{
			Guid:          uuid.NewString(),
			PatternName:   name,
			ControlScheme: Touch,
			PlayableLanes: DefaultPlayableLanes,
			InitBpm:       60,
			Bps:           4,
		},
	}
}

func (p *Pattern) PulsesPerScan() int {
	return PulsesPerBeat * p.Metadata.Bps
}

func (p *Pattern) IsPlayable(n *Note) bool {
	return n.Lane >= 0 && n.Lane < p.Metadata.PlayableLanes
}

// NumPlayableNotes counts notes on playable lanes.
func (p *Pattern) NumPlayableNotes() int {
	return lo.CountBy(p.Notes.All(), p.IsPlayable)
}

func (p *Pattern) PlayableNotes() []*Note {
	return lo.Filter(p.Notes.All(), func(n *Note, _ int) bool { return p.IsPlayable(n) })
}

// Clone deep copies the pattern, keeping its GUID.
func (p *Pattern) Clone() *Pattern {
	c := &Pattern{
		Metadata:  p.Metadata,
		BpmEvents: make([]BpmEvent, len(p.BpmEvents)),
		TimeStops: make([]TimeStop, len(p.TimeStops)),
		Notes:     *p.Notes.Clone(),
	}
	copy(c.BpmEvents, p.BpmEvents)
	copy(c.TimeStops, p.TimeStops)
	return c
}

// CalculateTimeOfAllNotes fills Time and EndTime of every note.
func (p *Pattern) CalculateTimeOfAllNotes() {
	p.PrepareForTimeCalculation()
	for _, n := range p.Notes.All() {
		n.Time = p.pulseToTime(n.Pulse)
		n.EndTime = n.Time
		if n.Length() > 0 {
			n.EndTime = p.pulseToTime(n.EndPulse())
		}
	}
}

// GetLengthInSecondsAndScans measures the pattern from the start of the
// backing track to the end of its last note.
func (p *Pattern) GetLengthInSecondsAndScans() (float64, int) {
	notes := p.Notes.All()
	if len(notes) == 0 {
		return 0, 0
	}
	end := lo.MaxBy(notes, func(a, b *Note) bool { return a.EndPulse() > b.EndPulse() }).EndPulse()
	scans := 1
	if pps := p.PulsesPerScan(); pps > 0 {
		scans = end/pps + 1
	}
	return p.PulseToTime(end), scans
}
