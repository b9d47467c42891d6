package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	base := errors.New("boom")

	t.Run("finds outer code", func(t *testing.T) {
		err := Wrap(base, CodeInternal, "failed")
		assert.True(t, HasCode(err, CodeInternal))
		assert.False(t, HasCode(err, CodeNotFound))
	})

	t.Run("finds nested code through fmt wrapping", func(t *testing.T) {
		inner := New(CodeConstraintViolation, "debt too high")
		err := Wrap(fmt.Errorf("save: %w", inner), CodeBadRequest, "rejected")
		assert.True(t, HasCode(err, CodeConstraintViolation))
		assert.True(t, Is(err, CodeBadRequest))
	})

	t.Run("plain errors have no code", func(t *testing.T) {
		assert.False(t, HasCode(base, CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(base))
		assert.Empty(t, MessageOf(base))
	})
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "not here", New(CodeNotFound, "not here").Error())
	assert.Equal(t, "load: boom", Wrap(errors.New("boom"), CodeInternal, "load").Error())

	base := errors.New("x")
	assert.ErrorIs(t, Wrap(base, CodeInternal, "m"), base)
}
