package parser

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"git.lost.host/meutraa/techmania/internal/game"
)

// Lanes per StepMania chart type. Other chart types are skipped.
var NKeyMap = map[string]int{
	"dance-single": 4,
	"dance-solo":   6,
	"dance-double": 8,
}

const pulsesPerMeasure = 4 * game.PulsesPerBeat

// SMParser converts StepMania .sm files into tracks.
type SMParser struct{}

type smBeatValue struct {
	beat  float64
	value float64
}

type smChart struct {
	chartType string
	name      string
	meter     string
	section   string
	lanes     int
}

func (p *SMParser) Parse(file string) (*game.Track, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	return ParseSM(string(data))
}

// ParseSM converts the content of a .sm file.
func ParseSM(data string) (*game.Track, error) {
	str := strings.ReplaceAll(data, "\r", "")
	sections := strings.Split(str, "#NOTES:")
	meta := sections[0]

	charts := []smChart{}
	for _, section := range sections[1:] {
		lines := strings.SplitN(section, "\n", 7)
		if len(lines) < 7 {
			return nil, errors.New("truncated #NOTES section")
		}
		chartType := strings.TrimSuffix(strings.TrimSpace(lines[1]), ":")
		lanes, ok := NKeyMap[chartType]
		if !ok {
			continue
		}
		noteData, _, _ := strings.Cut(lines[6], ";")
		charts = append(charts, smChart{
			chartType: chartType,
			name:      strings.TrimSuffix(strings.TrimSpace(lines[3]), ":"),
			meter:     strings.TrimSuffix(strings.TrimSpace(lines[4]), ":"),
			section:   noteData,
			lanes:     lanes,
		})
	}

	var err error
	track := game.NewTrack("", "")
	offset := 0.0
	bpms := []smBeatValue{}
	stops := []smBeatValue{}

	for _, mdl := range strings.Split(meta, "\n#") {
		mdl = strings.TrimPrefix(strings.TrimSpace(mdl), "#")
		key, value, ok := strings.Cut(mdl, ":")
		if !ok {
			continue
		}
		value, _, _ = strings.Cut(value, ";")
		value = strings.TrimSpace(value)
		switch key {
		case "TITLE":
			track.Metadata.Title = value
		case "ARTIST":
			track.Metadata.Artist = value
		case "GENRE":
			track.Metadata.Genre = value
		case "BANNER":
			track.Metadata.EyecatchImage = value
		case "MUSIC":
			track.Metadata.PreviewTrack = value
		case "SAMPLESTART":
			track.Metadata.PreviewStartTime, _ = strconv.ParseFloat(value, 64)
		case "SAMPLELENGTH":
			length, _ := strconv.ParseFloat(value, 64)
			track.Metadata.PreviewEndTime = track.Metadata.PreviewStartTime + length
		case "OFFSET":
			offs, err := strconv.ParseFloat(value, 64)
			if nil != err {
				return nil, fmt.Errorf("invalid #OFFSET: %v", err)
			}
			offset = -offs
		case "BPMS":
			if bpms, err = parseBeatValues(value); nil != err {
				return nil, fmt.Errorf("invalid #BPMS: %v", err)
			}
		case "STOPS":
			if stops, err = parseBeatValues(value); nil != err {
				return nil, fmt.Errorf("invalid #STOPS: %v", err)
			}
		}
	}
	if len(bpms) == 0 {
		return nil, errors.New("chart has no #BPMS")
	}

	for _, chart := range charts {
		pattern, err := chart.toPattern(track.Metadata.PreviewTrack, offset, bpms, stops)
		if nil != err {
			return nil, fmt.Errorf("failed to convert %s %s: %w", chart.chartType, chart.name, err)
		}
		track.Patterns = append(track.Patterns, pattern)
	}
	track.SortPatterns()
	return track, nil
}

func parseBeatValues(value string) ([]smBeatValue, error) {
	value = strings.ReplaceAll(value, "\n", "")
	out := []smBeatValue{}
	if strings.TrimSpace(value) == "" {
		return out, nil
	}
	for _, pair := range strings.Split(value, ",") {
		as := strings.Split(pair, "=")
		if len(as) != 2 {
			return nil, fmt.Errorf("malformed pair %q", pair)
		}
		beat, err := strconv.ParseFloat(strings.TrimSpace(as[0]), 64)
		if nil != err {
			return nil, err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(as[1]), 64)
		if nil != err {
			return nil, err
		}
		out = append(out, smBeatValue{beat: beat, value: v})
	}
	return out, nil
}

func beatToPulse(beat float64) int {
	return int(math.Round(beat * game.PulsesPerBeat))
}

func (c smChart) toPattern(backingTrack string, offset float64, bpms, stops []smBeatValue) (*game.Pattern, error) {
	p := game.NewPattern(c.name)
	p.Metadata.ControlScheme = game.Keys
	p.Metadata.PlayableLanes = c.lanes
	p.Metadata.BackingTrack = backingTrack
	p.Metadata.FirstBeatOffset = offset
	p.Metadata.Level, _ = strconv.Atoi(c.meter)

	p.Metadata.InitBpm = bpms[0].value
	for _, bpm := range bpms[1:] {
		p.BpmEvents = append(p.BpmEvents, game.BpmEvent{Pulse: beatToPulse(bpm.beat), Bpm: bpm.value})
	}
	for _, stop := range stops {
		bpm := bpms[0].value
		for _, b := range bpms {
			if stop.beat >= b.beat {
				bpm = b.value
			}
		}
		// Stops are given in seconds.
		p.TimeStops = append(p.TimeStops, game.TimeStop{
			Pulse:    beatToPulse(stop.beat),
			Duration: int(math.Round(stop.value * bpm / 60 * game.PulsesPerBeat)),
		})
	}

	// Hold heads waiting for their tail, by lane.
	holds := make(map[int]*game.Note)
	blocks := strings.Split(c.section, ",")
	for m, block := range blocks {
		lines := []string{}
		for _, l := range strings.Split(block, "\n") {
			l = strings.TrimSpace(l)
			if i := strings.Index(l, "//"); i >= 0 {
				l = strings.TrimSpace(l[:i])
			}
			if len(l) >= c.lanes {
				lines = append(lines, l)
			}
		}

		lineCount := len(lines)
		for i, line := range lines {
			pulse := m*pulsesPerMeasure + i*pulsesPerMeasure/lineCount
			for lane, ch := range []byte(line[:c.lanes]) {
				// 0 empty, 1 tap, 2 hold head, 3 hold or roll tail, 4 roll head.
				// Mines, keysounds, lifts and fakes are dropped.
				switch ch {
				case '1':
					p.Notes.Add(game.NewNote(game.Basic, pulse, lane))
				case '2', '4':
					n := game.NewHoldNote(game.Hold, pulse, lane, 0)
					holds[lane] = n
					p.Notes.Add(n)
				case '3':
					head, ok := holds[lane]
					if !ok {
						return nil, fmt.Errorf("hold tail without head at measure %d lane %d", m, lane)
					}
					head.Duration = pulse - head.Pulse
					delete(holds, lane)
				}
			}
		}
	}
	if len(holds) > 0 {
		return nil, fmt.Errorf("%d holds never end", len(holds))
	}

	p.PrepareForTimeCalculation()
	return p, nil
}
