package errutil

import (
	"errors"
	"fmt"

	"github.com/xeptore/flaw/v8"
)

type ErrInfo struct {
	Message  string
	TypeName string
	Children []ErrInfo
}

func (e ErrInfo) FlawP() flaw.P {
	children := make([]flaw.P, len(e.Children))
	for i, child := range e.Children {
		children[i] = child.FlawP()
	}
	return flaw.P{
		"message":   e.Message,
		"type_name": e.TypeName,
		"children":  children,
	}
}

// Tree unwraps err into the chain of errors it wraps or joins.
func Tree(err error) ErrInfo {
	if err == nil {
		panic("nil error")
	}

	info := ErrInfo{
		Message:  err.Error(),
		TypeName: fmt.Sprintf("%T", err),
	}
	//nolint:errorlint
	switch x := err.(type) {
	case interface{ Unwrap() error }:
		if inner := x.Unwrap(); nil != inner {
			info.Children = []ErrInfo{Tree(inner)}
		}
	case interface{ Unwrap() []error }:
		for _, inner := range x.Unwrap() {
			info.Children = append(info.Children, Tree(inner))
		}
	}
	return info
}

// BeFlaw returns err as a flaw, panicking when it is not one.
func BeFlaw(err error) *flaw.Flaw {
	if f := new(flaw.Flaw); errors.As(err, &f) {
		return f
	}
	panic(fmt.Sprintf("expected error to be of type *flaw.Flaw, got error of type %T: %v", err, err))
}

func IsFlaw(err error) bool {
	f := new(flaw.Flaw)
	return errors.As(err, &f)
}
