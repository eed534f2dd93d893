package game

import (
	"fmt"
	"math"
)

type CurveType int

const (
	Bezier CurveType = iota
	BSpline
)

func (c CurveType) String() string {
	switch c {
	case Bezier:
		return "Bezier"
	case BSpline:
		return "BSpline"
	}
	return fmt.Sprintf("CurveType(%d)", int(c))
}

func ParseCurveType(s string) (CurveType, error) {
	switch s {
	case "Bezier":
		return Bezier, nil
	case "BSpline":
		return BSpline, nil
	}
	return 0, fmt.Errorf("%w: unknown curve type %q", ErrMalformedNote, s)
}

// FloatPoint is a position on the (pulse, lane) plane. Drag node positions
// are relative to the note head.
type FloatPoint struct {
	Pulse float64
	Lane  float64
}

func (p FloatPoint) Add(q FloatPoint) FloatPoint {
	return FloatPoint{Pulse: p.Pulse + q.Pulse, Lane: p.Lane + q.Lane}
}

func (p FloatPoint) Scale(f float64) FloatPoint {
	return FloatPoint{Pulse: p.Pulse * f, Lane: p.Lane * f}
}

type DragNode struct {
	Anchor       FloatPoint
	ControlLeft  FloatPoint // relative to Anchor
	ControlRight FloatPoint // relative to Anchor
}

type DragPath struct {
	Curve CurveType
	Nodes []DragNode // at least 2, first anchor at (0, 0)
}

const (
	MinDragNodes = 2

	// Points sampled per curve segment by Interpolate.
	interpolationSteps = 50
)

func NewDragPath() *DragPath {
	return &DragPath{
		Curve: Bezier,
		Nodes: []DragNode{
			{},
			{Anchor: FloatPoint{Pulse: PulsesPerBeat / 2}},
		},
	}
}

func (d *DragPath) Clone() *DragPath {
	nodes := make([]DragNode, len(d.Nodes))
	copy(nodes, d.Nodes)
	return &DragPath{Curve: d.Curve, Nodes: nodes}
}

func (d *DragPath) Duration() int {
	if nil == d || len(d.Nodes) == 0 {
		return 0
	}
	return int(math.Round(d.Nodes[len(d.Nodes)-1].Anchor.Pulse))
}

// Interpolate samples the curve, returning points relative to the note head
// ordered from the first anchor to the last.
func (d *DragPath) Interpolate() []FloatPoint {
	if len(d.Nodes) < MinDragNodes {
		points := make([]FloatPoint, len(d.Nodes))
		for i, n := range d.Nodes {
			points[i] = n.Anchor
		}
		return points
	}
	switch d.Curve {
	case BSpline:
		return d.interpolateBSpline()
	case Bezier:
		return d.interpolateBezier()
	}
	return d.interpolateBezier()
}

func (d *DragPath) interpolateBezier() []FloatPoint {
	points := []FloatPoint{d.Nodes[0].Anchor}
	for i := 0; i+1 < len(d.Nodes); i++ {
		from, to := d.Nodes[i], d.Nodes[i+1]
		p0 := from.Anchor
		p1 := from.Anchor.Add(from.ControlRight)
		p2 := to.Anchor.Add(to.ControlLeft)
		p3 := to.Anchor
		for step := 1; step <= interpolationSteps; step++ {
			t := float64(step) / interpolationSteps
			u := 1 - t
			points = append(points,
				p0.Scale(u*u*u).
					Add(p1.Scale(3*u*u*t)).
					Add(p2.Scale(3*u*t*t)).
					Add(p3.Scale(t*t*t)),
			)
		}
	}
	return points
}

func (d *DragPath) interpolateBSpline() []FloatPoint {
	first, last := d.Nodes[0].Anchor, d.Nodes[len(d.Nodes)-1].Anchor

	// Tripled end points clamp the curve to the first and last anchors.
	control := make([]FloatPoint, 0, len(d.Nodes)+4)
	control = append(control, first, first)
	for _, n := range d.Nodes {
		control = append(control, n.Anchor)
	}
	control = append(control, last, last)

	points := []FloatPoint{first}
	for seg := 0; seg+3 < len(control); seg++ {
		q0, q1, q2, q3 := control[seg], control[seg+1], control[seg+2], control[seg+3]
		for step := 1; step <= interpolationSteps; step++ {
			t := float64(step) / interpolationSteps
			t2, t3 := t*t, t*t*t
			b0 := (1 - t) * (1 - t) * (1 - t) / 6
			b1 := (3*t3 - 6*t2 + 4) / 6
			b2 := (-3*t3 + 3*t2 + 3*t + 1) / 6
			b3 := t3 / 6
			points = append(points, q0.Scale(b0).Add(q1.Scale(b1)).Add(q2.Scale(b2)).Add(q3.Scale(b3)))
		}
	}
	return points
}
