package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(r *Registry[string]) []string {
	var out []string
	r.Each(func(_ Handle, v string) bool {
		out = append(out, v)
		return true
	})
	return out
}

func TestInsertGetInOrder(t *testing.T) {
	r := New[string]()
	a := r.Insert("a")
	r.Insert("b")
	r.Insert("c")

	v, ok := r.Get(a)
	require.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Equal(t, []string{"a", "b", "c"}, collect(r))
	assert.Equal(t, 3, r.Len())
}

func TestReleaseExpiresHandle(t *testing.T) {
	r := New[string]()
	h := r.Insert("a")
	require.True(t, r.Retain(h))
	assert.Equal(t, int32(2), r.Refs(h))

	assert.False(t, r.Release(h))
	_, ok := r.Get(h)
	assert.True(t, ok)

	assert.True(t, r.Release(h))
	_, ok = r.Get(h)
	assert.False(t, ok)
	assert.False(t, r.Retain(h))
	assert.False(t, r.Release(h))
}

func TestReusedSlotDoesNotResurrectOldHandle(t *testing.T) {
	r := New[string]()
	old := r.Insert("old")
	r.Release(old)

	fresh := r.Insert("fresh")
	assert.NotEqual(t, old, fresh)

	_, ok := r.Get(old)
	assert.False(t, ok)
	v, ok := r.Get(fresh)
	require.True(t, ok)
	assert.Equal(t, "fresh", v)
}

func TestInsertReleasePruneRoundTrip(t *testing.T) {
	r := New[string]()
	keep := r.Insert("keep")
	gone := r.Insert("gone")
	r.Release(gone)

	assert.Equal(t, []string{"keep"}, collect(r))
	assert.Equal(t, 2, r.Len())

	assert.Equal(t, 1, r.Prune())
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 0, r.Prune())

	_, ok := r.Get(keep)
	assert.True(t, ok)
}

func TestEachStopsEarlyAndToleratesRelease(t *testing.T) {
	r := New[string]()
	a := r.Insert("a")
	b := r.Insert("b")
	r.Insert("c")

	var seen []string
	r.Each(func(h Handle, v string) bool {
		seen = append(seen, v)
		if h == a {
			r.Release(b)
		}
		return v != "c"
	})
	assert.Equal(t, []string{"a", "c"}, seen)
}

func TestZeroHandle(t *testing.T) {
	r := New[int]()
	var h Handle
	assert.True(t, h.IsZero())
	_, ok := r.Get(h)
	assert.False(t, ok)
}

func TestDropIgnoresOutstandingRefs(t *testing.T) {
	r := New[string]()
	h := r.Insert("x")
	require.True(t, r.Retain(h))

	assert.True(t, r.Drop(h))
	assert.False(t, r.Drop(h))
	assert.False(t, r.Retain(h))
	assert.Equal(t, int32(0), r.Refs(h))
	assert.Empty(t, collect(r))
}
