package errutil_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeptore/flaw/v8"

	"git.lost.host/meutraa/techmania/internal/errutil"
)

func TestTree(t *testing.T) {
	t.Parallel()

	a, b := errors.New("a"), errors.New("b")
	err := fmt.Errorf("outer: %w", errors.Join(a, b))

	info := errutil.Tree(err)
	assert.Equal(t, "outer: a\nb", info.Message)
	assert.Equal(t, "*fmt.wrapError", info.TypeName)
	require.Len(t, info.Children, 1)
	joined := info.Children[0]
	require.Len(t, joined.Children, 2)
	assert.Equal(t, "a", joined.Children[0].Message)
	assert.Equal(t, "b", joined.Children[1].Message)
	assert.Empty(t, joined.Children[0].Children)

	p := info.FlawP()
	assert.Equal(t, "outer: a\nb", p["message"])
	assert.Len(t, p["children"], 1)
}

func TestTreeNil(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { errutil.Tree(nil) })
}

func TestBeFlaw(t *testing.T) {
	t.Parallel()

	f := flaw.From(errors.New("broken"))
	wrapped := fmt.Errorf("context: %w", f)

	assert.True(t, errutil.IsFlaw(wrapped))
	assert.Same(t, f, errutil.BeFlaw(wrapped))

	plain := errors.New("plain")
	assert.False(t, errutil.IsFlaw(plain))
	assert.Panics(t, func() { errutil.BeFlaw(plain) })
}
