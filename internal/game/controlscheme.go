package game

import "fmt"

type ControlScheme int

const (
	Touch ControlScheme = iota
	Keys
	KM
)

const (
	DefaultPlayableLanes = 4
	// Lanes at or beyond the playable count hold hidden keysound notes.
	TotalLanes = 64
)

func (c ControlScheme) String() string {
	switch c {
	case Touch:
		return "Touch"
	case Keys:
		return "Keys"
	case KM:
		return "KM"
	}
	return fmt.Sprintf("ControlScheme(%d)", int(c))
}

func ParseControlScheme(s string) (ControlScheme, error) {
	switch s {
	case "Touch":
		return Touch, nil
	case "Keys":
		return Keys, nil
	case "KM":
		return KM, nil
	}
	return 0, fmt.Errorf("unknown control scheme %q", s)
}
