package srterr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	e := New(MJSystemRes, MNThread, nil)
	assert.Equal(t, 3001, e.Code())
}

func TestErrorMessage(t *testing.T) {
	e := New(MJSetup, MNRejected, nil)
	assert.Equal(t, "Connection setup failure: connection rejected", e.Error())
}

func TestErrorWrapsCause(t *testing.T) {
	root := errors.New("boom")
	e := New(MJSystemRes, MNThread, root)
	assert.Contains(t, e.Error(), "boom")
	assert.Same(t, root, errors.Unwrap(e))
}

func TestRejectReasonString(t *testing.T) {
	assert.Equal(t, "Listener's backlog exceeded", RejBacklog.String())
	assert.Equal(t, "Unknown or erroneous", RejectReason(999).String())
}
