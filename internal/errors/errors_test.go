package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type codedError struct{ code string }

func (e *codedError) Error() string { return e.code }

func TestAsType(t *testing.T) {
	wrapped := Wrap(&codedError{code: "E1"}, "outer")

	got, ok := AsType[*codedError](wrapped)
	assert.True(t, ok)
	assert.Equal(t, "E1", got.code)

	_, ok = AsType[*codedError](New("plain"))
	assert.False(t, ok)
}

func TestWrapKeepsCause(t *testing.T) {
	base := New("base")
	err := Wrapf(Wrap(base, "mid"), "top %d", 1)

	assert.True(t, Is(err, base))
	assert.Equal(t, "top 1: mid: base", err.Error())
}

func failingStore() error {
	return WithStack(New("connection reset"))
}

func TestOrigin(t *testing.T) {
	err := Wrap(failingStore(), "failed to load profile")

	origin := Origin(err)

	assert.Contains(t, origin, "failingStore")
	assert.Contains(t, origin, "errors_test.go:")
	assert.Empty(t, Origin(New("no stack")))
	assert.Empty(t, Origin(nil))
}

func TestStackTrace(t *testing.T) {
	err := Wrap(failingStore(), "outer")

	assert.Contains(t, StackTrace(err), "failingStore")
	assert.Empty(t, StackTrace(New("no stack")))
}
