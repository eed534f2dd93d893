package game

import (
	"math/big"
)

// Division returns the beat division a pulse falls on, as a denominator:
// 1 for whole beats, 2 for half beats, 3 for triplets, 4 for quarters and
// so on up to PulsesPerBeat.
func Division(pulse int) int {
	r := big.NewRat(int64(pulse), PulsesPerBeat)
	return int(r.Denom().Int64())
}

// Snap rounds pulse to the nearest 1/division of a beat.
func Snap(pulse, division int) int {
	if division <= 0 || division > PulsesPerBeat {
		return pulse
	}
	step := PulsesPerBeat / division
	q := pulse / step
	r := pulse % step
	if r < 0 {
		q--
		r += step
	}
	if 2*r >= step {
		q++
	}
	return q * step
}
