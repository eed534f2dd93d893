package game

import (
	"cmp"

	"golang.org/x/exp/slices"
)

// timelineEvent is a BPM event or time stop after the walk in
// PrepareForTimeCalculation. bpm is the tempo in effect after the event.
type timelineEvent struct {
	pulse   int
	time    float64
	bpm     float64
	stop    bool
	endTime float64
}

func secondsPerPulse(bpm float64) float64 {
	return 60 / (PulsesPerBeat * bpm)
}

// PrepareForTimeCalculation sorts tempo events and computes their times.
// PulseToTime, TimeToPulse and GetBPMAt call it on every use, so edits to
// BpmEvents, TimeStops or the tempo metadata are always seen.
func (p *Pattern) PrepareForTimeCalculation() {
	slices.SortStableFunc(p.BpmEvents, func(a, b BpmEvent) int { return cmp.Compare(a.Pulse, b.Pulse) })
	slices.SortStableFunc(p.TimeStops, func(a, b TimeStop) int { return cmp.Compare(a.Pulse, b.Pulse) })

	timeline := make([]timelineEvent, 0, len(p.BpmEvents)+len(p.TimeStops))
	currentBpm := p.Metadata.InitBpm
	currentTime := p.Metadata.FirstBeatOffset
	currentPulse := 0

	i, j := 0, 0
	for i < len(p.BpmEvents) || j < len(p.TimeStops) {
		// BPM events go first on equal pulses.
		if j >= len(p.TimeStops) || (i < len(p.BpmEvents) && p.BpmEvents[i].Pulse <= p.TimeStops[j].Pulse) {
			e := &p.BpmEvents[i]
			e.Time = currentTime + float64(e.Pulse-currentPulse)*secondsPerPulse(currentBpm)
			currentBpm = e.Bpm
			currentTime = e.Time
			currentPulse = e.Pulse
			timeline = append(timeline, timelineEvent{pulse: e.Pulse, time: e.Time, bpm: currentBpm})
			i++
			continue
		}

		s := &p.TimeStops[j]
		s.Time = currentTime + float64(s.Pulse-currentPulse)*secondsPerPulse(currentBpm)
		s.BpmAtStart = currentBpm
		s.EndTime = s.Time + float64(s.Duration)*secondsPerPulse(currentBpm)
		currentTime = s.EndTime
		currentPulse = s.Pulse
		timeline = append(timeline, timelineEvent{pulse: s.Pulse, time: s.Time, bpm: currentBpm, stop: true, endTime: s.EndTime})
		j++
	}

	p.timeline = timeline
}

// PulseToTime converts a pulse to seconds. Pulses before the first event,
// including negative ones, extrapolate from the initial tempo. A note on the
// pulse of a time stop is reached when the stop begins.
func (p *Pattern) PulseToTime(pulse int) float64 {
	p.PrepareForTimeCalculation()
	return p.pulseToTime(pulse)
}

// pulseToTime expects a prepared timeline.
func (p *Pattern) pulseToTime(pulse int) float64 {
	refBpm := p.Metadata.InitBpm
	refTime := p.Metadata.FirstBeatOffset
	refPulse := 0
	for i := len(p.timeline) - 1; i >= 0; i-- {
		e := p.timeline[i]
		if e.pulse > pulse {
			continue
		}
		if e.stop {
			if e.pulse == pulse {
				return e.time
			}
			refTime = e.endTime
		} else {
			refTime = e.time
		}
		refBpm = e.bpm
		refPulse = e.pulse
		break
	}
	return refTime + float64(pulse-refPulse)*secondsPerPulse(refBpm)
}

// TimeToPulse converts seconds to a fractional pulse. Every time inside a
// time stop maps to the stop's pulse.
func (p *Pattern) TimeToPulse(time float64) float64 {
	p.PrepareForTimeCalculation()
	refBpm := p.Metadata.InitBpm
	refTime := p.Metadata.FirstBeatOffset
	refPulse := 0
	for i := len(p.timeline) - 1; i >= 0; i-- {
		e := p.timeline[i]
		if e.stop {
			if time >= e.endTime {
				refTime = e.endTime
			} else if time >= e.time {
				return float64(e.pulse)
			} else {
				continue
			}
		} else {
			if time < e.time {
				continue
			}
			refTime = e.time
		}
		refBpm = e.bpm
		refPulse = e.pulse
		break
	}
	return float64(refPulse) + (time-refTime)/secondsPerPulse(refBpm)
}

// GetBPMAt returns the tempo in effect at pulse.
func (p *Pattern) GetBPMAt(pulse int) float64 {
	p.PrepareForTimeCalculation()
	return p.bpmAt(pulse)
}

// bpmAt expects BpmEvents sorted by pulse.
func (p *Pattern) bpmAt(pulse int) float64 {
	bpm := p.Metadata.InitBpm
	for _, e := range p.BpmEvents {
		if e.Pulse > pulse {
			break
		}
		bpm = e.Bpm
	}
	return bpm
}
