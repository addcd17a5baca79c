package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWrapf(t *testing.T) {
	original := New("original")
	wrapped := Wrapf(original, "wrapped: %d", 42)

	assert.Contains(t, wrapped.Error(), "wrapped: 42")
	assert.Contains(t, wrapped.Error(), "original")
}

type customError struct {
	msg string
}

func (e *customError) Error() string {
	return e.msg
}

func TestAs(t *testing.T) {
	original := &customError{msg: "custom"}
	wrapped := Wrap(original, "wrapped")

	var target *customError
	require.True(t, As(wrapped, &target))
	assert.Equal(t, "custom", target.msg)
}

func TestStackTrace(t *testing.T) {
	err := New("with stack")

	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "errors_test.go")
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithStack(nil))
	assert.Nil(t, WithHint(nil, "hint"))
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	err := Wrap(ErrServiceUnavailable, "dialing ws://localhost:877")
	assert.True(t, IsServiceUnavailable(err))
	assert.False(t, IsSessionClosed(err))

	err = Wrapf(ErrSessionClosed, "request %s", "abc")
	assert.True(t, IsSessionClosed(err))
}

func TestNewRemoteFailure(t *testing.T) {
	err := NewRemoteFailure("kb %s: inconsistent ontology", "kb-1")
	require.NotNil(t, err)
	assert.True(t, IsRemoteFailure(err))
	assert.Contains(t, err.Error(), "inconsistent ontology")
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{ErrServiceUnavailable, ErrSessionClosed, ErrRemoteFailure, ErrUnknownKb}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.False(t, Is(a, b), "sentinel %v should not match %v", a, b)
			}
		}
	}
}

func ExampleWrap() {
	baseErr := New("connection refused")
	err := Wrap(baseErr, "failed to reach reasoning service")
	fmt.Println(err)
	// Output: failed to reach reasoning service: connection refused
}
