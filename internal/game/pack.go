package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Packed note grammar. The sound is always the last field so it may contain
// separators.
//
//	plain  {Type}|{pulse}|{lane}|{sound}
//	       E|{Type}|{pulse}|{lane}|{volume}|{pan}|{eos}|{sound}
//	hold   {Type}|{lane}|{pulse}|{duration}|{sound}
//	       E|{Type}|{lane}|{pulse}|{duration}|{volume}|{pan}|{eos}|{sound}
//	drag   {Type}|{pulse}|{lane}|{curve}|{sound}
//	       E|{Type}|{pulse}|{lane}|{curve}|{volume}|{pan}|{eos}|{sound}
//	node   {pulse}|{lane}|{leftPulse}|{leftLane}|{rightPulse}|{rightLane}
//
// Hold notes put the lane before the pulse. Files in the wild depend on it.
const (
	separator      = "|"
	extendedPrefix = "E" + separator
)

type PackedDragNote struct {
	PackedNote  string   `json:"packedNote"`
	PackedNodes []string `json:"packedNodes"`
}

// Pack returns the packed form of n. For drag notes only the header is
// returned; use PackDrag for the nodes.
func Pack(n *Note) string {
	var b strings.Builder
	extended := n.IsExtended()
	if extended {
		b.WriteString(extendedPrefix)
	}
	b.WriteString(n.Type.String())
	switch n.Kind() {
	case KindHold:
		writeInt(&b, n.Lane)
		writeInt(&b, n.Pulse)
		writeInt(&b, n.Duration)
	case KindDrag:
		writeInt(&b, n.Pulse)
		writeInt(&b, n.Lane)
		b.WriteString(separator)
		b.WriteString(n.dragCurve().String())
	case KindPlain:
		writeInt(&b, n.Pulse)
		writeInt(&b, n.Lane)
	}
	if extended {
		writeInt(&b, n.Volume)
		writeInt(&b, n.Pan)
		writeBool(&b, n.EndOfScan)
	}
	b.WriteString(separator)
	b.WriteString(n.Sound)
	return b.String()
}

func PackDrag(n *Note) PackedDragNote {
	packed := PackedDragNote{PackedNote: Pack(n)}
	if nil == n.Drag {
		return packed
	}
	packed.PackedNodes = make([]string, len(n.Drag.Nodes))
	for i, node := range n.Drag.Nodes {
		packed.PackedNodes[i] = PackDragNode(node)
	}
	return packed
}

func PackDragNode(node DragNode) string {
	return strings.Join([]string{
		formatFloat(node.Anchor.Pulse),
		formatFloat(node.Anchor.Lane),
		formatFloat(node.ControlLeft.Pulse),
		formatFloat(node.ControlLeft.Lane),
		formatFloat(node.ControlRight.Pulse),
		formatFloat(node.ControlRight.Lane),
	}, separator)
}

// Unpack parses any packed note string. A drag header yields a drag note
// without nodes.
func Unpack(packed string) (*Note, error) {
	body, extended := strings.CutPrefix(packed, extendedPrefix)
	typeToken, _, _ := strings.Cut(body, separator)
	t, err := ParseNoteType(typeToken)
	if nil != err {
		return nil, err
	}

	fields := 4
	if t.Kind() != KindPlain {
		fields++
	}
	if extended {
		fields += 3
	}
	r, err := newTokenReader(body, fields)
	if nil != err {
		return nil, err
	}
	r.skip()

	n := NewNote(t, 0, 0)
	switch t.Kind() {
	case KindHold:
		n.Lane = r.int()
		n.Pulse = r.int()
		n.Duration = r.int()
	case KindDrag:
		n.Pulse = r.int()
		n.Lane = r.int()
		n.Drag.Curve = r.curve()
		n.Drag.Nodes = nil
	case KindPlain:
		n.Pulse = r.int()
		n.Lane = r.int()
	}
	if extended {
		n.Volume = r.int()
		n.Pan = r.int()
		n.EndOfScan = r.bool()
	}
	n.Sound = r.rest()
	if nil != r.err {
		return nil, fmt.Errorf("failed to unpack %q: %w", packed, r.err)
	}
	return n, nil
}

func UnpackDrag(packed PackedDragNote) (*Note, error) {
	n, err := Unpack(packed.PackedNote)
	if nil != err {
		return nil, err
	}
	if n.Kind() != KindDrag {
		return nil, fmt.Errorf("%w: %q is not a drag note", ErrMalformedNote, packed.PackedNote)
	}
	if len(packed.PackedNodes) < MinDragNodes {
		return nil, fmt.Errorf("%w: drag note %q has %d nodes", ErrMalformedNote, packed.PackedNote, len(packed.PackedNodes))
	}
	n.Drag.Nodes = make([]DragNode, len(packed.PackedNodes))
	for i, p := range packed.PackedNodes {
		node, err := UnpackDragNode(p)
		if nil != err {
			return nil, err
		}
		n.Drag.Nodes[i] = node
	}
	return n, nil
}

func UnpackDragNode(packed string) (DragNode, error) {
	r, err := newTokenReader(packed, 6)
	if nil != err {
		return DragNode{}, err
	}
	node := DragNode{
		Anchor:       FloatPoint{Pulse: r.float(), Lane: r.float()},
		ControlLeft:  FloatPoint{Pulse: r.float(), Lane: r.float()},
		ControlRight: FloatPoint{Pulse: r.float(), Lane: r.float()},
	}
	if nil != r.err {
		return DragNode{}, fmt.Errorf("failed to unpack drag node %q: %w", packed, r.err)
	}
	return node, nil
}

func (n *Note) dragCurve() CurveType {
	if nil == n.Drag {
		return Bezier
	}
	return n.Drag.Curve
}

func writeInt(b *strings.Builder, v int) {
	b.WriteString(separator)
	b.WriteString(strconv.Itoa(v))
}

func writeBool(b *strings.Builder, v bool) {
	if v {
		b.WriteString(separator + "1")
	} else {
		b.WriteString(separator + "0")
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// tokenReader walks the fields of a packed string. The first parse failure
// sticks in err and later reads return zero values.
type tokenReader struct {
	tokens []string
	i      int
	err    error
}

func newTokenReader(s string, fields int) (*tokenReader, error) {
	tokens := strings.SplitN(s, separator, fields)
	if len(tokens) != fields {
		return nil, fmt.Errorf("%w: %q has %d fields, expected %d", ErrMalformedNote, s, len(tokens), fields)
	}
	return &tokenReader{tokens: tokens}, nil
}

func (r *tokenReader) next() string {
	if r.i >= len(r.tokens) {
		if nil == r.err {
			r.err = fmt.Errorf("%w: not enough fields", ErrMalformedNote)
		}
		return ""
	}
	t := r.tokens[r.i]
	r.i++
	return t
}

func (r *tokenReader) skip() {
	r.next()
}

func (r *tokenReader) rest() string {
	return r.next()
}

func (r *tokenReader) int() int {
	t := r.next()
	if nil != r.err {
		return 0
	}
	v, err := strconv.Atoi(t)
	if nil != err {
		r.err = fmt.Errorf("%w: %v", ErrMalformedNote, err)
	}
	return v
}

func (r *tokenReader) float() float64 {
	t := r.next()
	if nil != r.err {
		return 0
	}
	v, err := strconv.ParseFloat(t, 64)
	if nil != err {
		r.err = fmt.Errorf("%w: %v", ErrMalformedNote, err)
	}
	return v
}

func (r *tokenReader) bool() bool {
	switch t := r.next(); t {
	case "1":
		return true
	case "0":
		return false
	default:
		if nil == r.err {
			r.err = fmt.Errorf("%w: invalid flag %q", ErrMalformedNote, t)
		}
		return false
	}
}

func (r *tokenReader) curve() CurveType {
	t := r.next()
	if nil != r.err {
		return Bezier
	}
	c, err := ParseCurveType(t)
	if nil != err {
		r.err = err
	}
	return c
}
