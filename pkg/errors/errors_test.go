package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkedErrorsKeepTheirKind(t *testing.T) {
	err := NewError("plan probabilities sum to 0.5").
		WithHint("adjust plan probabilities").
		Mark(ErrConfiguration)

	wrapped := fmt.Errorf("load catalog: %w", err)

	assert.True(t, IsConfiguration(wrapped))
	assert.False(t, IsInvariantViolation(wrapped))
	assert.Contains(t, wrapped.Error(), "plan probabilities sum to 0.5")
	assert.NotContains(t, wrapped.Error(), "adjust plan probabilities")
	assert.Equal(t, []string{"adjust plan probabilities"}, Hints(wrapped))
}

func TestWithMessagePrefixesCause(t *testing.T) {
	err := WithError(fmt.Errorf("connection refused")).WithMessage("query plans").Mark(ErrDatabase)
	assert.Equal(t, "query plans: connection refused", err.Error())
	assert.True(t, IsDatabase(err))
	assert.False(t, IsValidation(err))
}

func TestKindMatchesByName(t *testing.T) {
	rebuilt := &Kind{name: "invariant violation"}
	assert.ErrorIs(t, rebuilt, ErrInvariantViolation)
	assert.NotErrorIs(t, rebuilt, ErrValidation)
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("scenario 2: %w", NewError("stream missing").Mark(ErrInvariantViolation))
	assert.Equal(t, ErrInvariantViolation, KindOf(err))
	assert.Nil(t, KindOf(fmt.Errorf("plain")))
	assert.Nil(t, KindOf(nil))
}
