package docsystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploadStatus_Transitions(t *testing.T) {
	u := NewUploadStatus("u1")
	assert.Equal(t, UploadIdle, u.State)

	assert.False(t, u.Advance(10), "idle cannot advance")
	assert.False(t, u.Complete("doc"), "idle cannot complete")

	assert.True(t, u.Start("a.pdf"))
	assert.False(t, u.Start("a.pdf"), "start only once")

	assert.True(t, u.Advance(40))
	assert.False(t, u.Advance(20), "progress never moves backwards")
	assert.True(t, u.Advance(150))
	assert.Equal(t, 100, u.Percent)

	assert.True(t, u.Complete("doc-1"))
	assert.Equal(t, UploadDone, u.State)
	assert.Equal(t, "doc-1", u.DocumentID)

	assert.False(t, u.Cancel(), "terminal absorbs cancel")
	assert.False(t, u.Fail("late"), "terminal absorbs fail")
	assert.Equal(t, UploadDone, u.State)
}

func TestUploadStatus_CancelAndFailFromIdle(t *testing.T) {
	cancelled := NewUploadStatus("u1")
	assert.True(t, cancelled.Cancel())
	assert.False(t, cancelled.Start("a.pdf"))
	assert.True(t, cancelled.State.Terminal())

	failed := NewUploadStatus("u2")
	assert.True(t, failed.Fail("bad type"))
	assert.Equal(t, "bad type", failed.Error)
	assert.True(t, failed.State.Terminal())
}
