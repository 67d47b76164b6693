package rematch

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestInvalidStateError(t *testing.T) {
	err := invalidStateError("Start")
	assert.Equal(t, err.Kind, ErrInvalidState)
	assert.Equal(t, err.Error(), "rematch: Start: no successful match")
}

func TestOutOfBoundsError(t *testing.T) {
	err := outOfBoundsError("Group", "group index out of bounds")
	assert.Equal(t, err.Kind, ErrIndexOutOfBounds)
	assert.Equal(t, err.Error(), "rematch: Group: group index out of bounds")
}

func TestErrorSatisfiesErrorInterface(t *testing.T) {
	var err error = invalidStateError("Find")
	assert.ErrorContains(t, err, "no successful match")
}
