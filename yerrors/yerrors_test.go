package yerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapClassifiesFatal(t *testing.T) {
	err := Wrap(errors.New("boom"), "context")
	assert.True(t, IsFatal(err), "expected Wrap to produce a fatal-classified error")
}

func TestWrapNilStaysNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "context"))
}

func TestIsFatalDefaultsTrueForUnclassified(t *testing.T) {
	assert.True(t, IsFatal(errors.New("plain")), "expected an unclassified error to be treated as fatal")
	assert.False(t, IsFatal(nil), "expected nil to not be fatal")
}
