package optimistic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryReturnsSameControl(t *testing.T) {
	r := NewRegistry[*Toggle](16)
	key := Key("upvote", 7, 101)

	seeds := 0
	seed := func() *Toggle {
		seeds++
		return NewToggle(false, 5)
	}

	a := r.Get(key, seed)
	b := r.Get(key, seed)
	assert.Same(t, a, b)
	assert.Equal(t, 1, seeds)
}

func TestRegistryForgetReseeds(t *testing.T) {
	r := NewRegistry[*Toggle](16)
	key := Key("bookmark", 7, 101)

	a := r.Get(key, func() *Toggle { return NewToggle(true, 0) })
	r.Forget(key)
	b := r.Get(key, func() *Toggle { return NewToggle(false, 0) })
	assert.NotSame(t, a, b)
	assert.False(t, b.On())
}

func TestRegistryHoldsDistinctKinds(t *testing.T) {
	assert.NotEqual(t, Key("upvote", 1, 2), Key("bookmark", 1, 2))
	assert.NotEqual(t, Key("upvote", 1, 2), Key("upvote", 2, 1))

	lists := NewRegistry[*List[note]](16)
	l := lists.Get(Key("comments", 1, 2), func() *List[note] {
		return NewList([]note{{ID: "1"}}, noteID)
	})
	assert.Equal(t, 1, l.Len())
}
