package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefCountReleaseMarksDead(t *testing.T) {
	var rc RefCount
	rc.Retain()
	rc.Retain()

	assert.False(t, rc.Release())
	assert.True(t, rc.Alive())
	assert.True(t, rc.Release())
	assert.False(t, rc.Alive())
	assert.False(t, rc.Release(), "a second release past zero must not report again")
}

func TestReadinessDefaultsToNotReady(t *testing.T) {
	var r Readiness
	assert.False(t, r.Ready())
	r.SetReady(true)
	assert.True(t, r.Ready())
}
