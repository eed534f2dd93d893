package game

import (
	"math"

	"github.com/samber/lo"
	"golang.org/x/exp/constraints"
)

type RadarDimension struct {
	Raw        float64
	Normalized int // 0..100
}

type Radar struct {
	Density RadarDimension // notes per second over the playable length
	Peak    RadarDimension // notes per second in the densest scan
	Speed   RadarDimension // scans per minute
	Chaos   RadarDimension // percent of notes off the half-beat grid
	Async   RadarDimension // percent of long notes
	Shift   RadarDimension // distinct pulses carrying tempo events

	SuggestedLevel        float64
	SuggestedLevelRounded int
}

// Calibration bounds: raw values at or below min normalize to 0, at or above
// max to 100.
var (
	densityRange = [2]float64{0.5, 8}
	peakRange    = [2]float64{1, 12}
	speedRange   = [2]float64{12, 48}
	chaosRange   = [2]float64{0, 50}
	asyncRange   = [2]float64{0, 40}
	shiftRange   = [2]float64{0, 5}
)

// Suggested level regression over raw density, peak, speed and chaos.
const (
	levelIntercept    = -1.2
	levelDensityCoeff = 0.45
	levelPeakCoeff    = 0.12
	levelSpeedCoeff   = 0.06
	levelChaosCoeff   = 0.02
)

func clamp[T constraints.Integer | constraints.Float](v, low, high T) T {
	return max(low, min(high, v))
}

func normalize(raw float64, bounds [2]float64) int {
	t := (raw - bounds[0]) / (bounds[1] - bounds[0])
	return int(math.Round(100 * clamp(t, 0, 1)))
}

func dimension(raw float64, bounds [2]float64) RadarDimension {
	return RadarDimension{Raw: raw, Normalized: normalize(raw, bounds)}
}

// CalculateRadar computes the difficulty radar over the playable notes. It
// recomputes note times as a side effect.
func (p *Pattern) CalculateRadar() Radar {
	p.CalculateTimeOfAllNotes()
	notes := p.PlayableNotes()

	var startPulse, endPulse int
	var startTime, endTime float64
	if len(notes) > 0 {
		startPulse = notes[0].Pulse
		startTime = notes[0].Time
		last := lo.MaxBy(notes, func(a, b *Note) bool { return a.EndTime > b.EndTime })
		endPulse = last.EndPulse()
		endTime = last.EndTime
	}
	length := endTime - startTime

	var radar Radar

	density := 0.0
	if length > 0 {
		density = float64(len(notes)) / length
	}
	radar.Density = dimension(density, densityRange)

	radar.Peak = dimension(p.peakDensity(notes), peakRange)

	speed := 0.0
	if pps := p.PulsesPerScan(); pps > 0 {
		if length > 0 {
			speed = float64(endPulse-startPulse) / float64(pps) / length * 60
		} else if bpm := p.bpmAt(startPulse); bpm > 0 {
			speed = bpm / float64(p.Metadata.Bps)
		}
	}
	radar.Speed = dimension(speed, speedRange)

	chaos, async := 0.0, 0.0
	if len(notes) > 0 {
		offGrid := lo.CountBy(notes, func(n *Note) bool { return Division(n.Pulse) > 2 })
		long := lo.CountBy(notes, func(n *Note) bool { return n.Kind() != KindPlain })
		chaos = 100 * float64(offGrid) / float64(len(notes))
		async = 100 * float64(long) / float64(len(notes))
	}
	radar.Chaos = dimension(chaos, chaosRange)
	radar.Async = dimension(async, asyncRange)

	pulses := append(
		lo.Map(p.BpmEvents, func(e BpmEvent, _ int) int { return e.Pulse }),
		lo.Map(p.TimeStops, func(s TimeStop, _ int) int { return s.Pulse })...,
	)
	radar.Shift = dimension(float64(len(lo.Uniq(pulses))), shiftRange)

	radar.SuggestedLevel = levelIntercept +
		levelDensityCoeff*radar.Density.Raw +
		levelPeakCoeff*radar.Peak.Raw +
		levelSpeedCoeff*radar.Speed.Raw +
		levelChaosCoeff*radar.Chaos.Raw
	radar.SuggestedLevelRounded = max(1, int(math.Round(radar.SuggestedLevel)))
	return radar
}

// peakDensity is the highest notes-per-second rate over any single scan.
func (p *Pattern) peakDensity(notes []*Note) float64 {
	pps := p.PulsesPerScan()
	if pps <= 0 || len(notes) == 0 {
		return 0
	}
	counts := lo.CountValuesBy(notes, func(n *Note) int { return floorDiv(n.Pulse, pps) })
	peak := 0.0
	for scan, count := range counts {
		duration := p.pulseToTime((scan+1)*pps) - p.pulseToTime(scan*pps)
		if duration <= 0 {
			continue
		}
		peak = max(peak, float64(count)/duration)
	}
	return peak
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
