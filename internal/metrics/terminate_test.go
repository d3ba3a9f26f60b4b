package metrics

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyKillError(t *testing.T) {
	assert.ErrorIs(t, classifyKillError(os.ErrProcessDone), ErrNoSuchProcess)
	assert.ErrorIs(t, classifyKillError(os.ErrPermission), ErrAccessDenied)

	other := errors.New("signal delivery failed")
	got := classifyKillError(other)
	assert.NotErrorIs(t, got, ErrNoSuchProcess)
	assert.NotErrorIs(t, got, ErrAccessDenied)
	assert.Equal(t, other, got)
}
