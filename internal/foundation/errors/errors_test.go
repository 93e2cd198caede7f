package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryDefaults(t *testing.T) {
	cases := []struct {
		build     *ErrorBuilder
		severity  ErrorSeverity
		retryable bool
	}{
		{ConfigError("x"), SeverityFatal, false},
		{ValidationError("x"), SeverityFatal, false},
		{NetworkError("x"), SeverityError, true},
		{InventoryError("x"), SeverityWarning, false},
		{BuildError("x"), SeverityFatal, false},
		{StyleError("x"), SeverityError, false},
		{NewError(ErrorCategory("unknown"), "x"), SeverityError, false},
	}
	for _, tc := range cases {
		err := tc.build.Build()
		t.Run(string(err.Category()), func(t *testing.T) {
			assert.Equal(t, tc.severity, err.Severity())
			assert.Equal(t, tc.retryable, err.CanRetry())
		})
	}
}

func TestBuilderOverrides(t *testing.T) {
	err := InventoryError("no inventory").Fatal().Retryable().Build()
	assert.Equal(t, SeverityFatal, err.Severity())
	assert.True(t, err.CanRetry())

	err = NetworkError("slow").Warning().Build()
	assert.Equal(t, SeverityWarning, err.Severity())
}

func TestWrappingAndContext(t *testing.T) {
	cause := errors.New("connection refused")
	err := NetworkError("inventory fetch failed").
		WithCause(cause).
		WithContext("url", "https://docs.python.org/3.7/objects.inv").
		WithContext("attempt", 2).
		Build()

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "[network:error] inventory fetch failed: connection refused", err.Error())
	assert.Equal(t, []string{"attempt", "url"}, err.ContextKeys())
	v, ok := err.Value("attempt")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	wrapped := fmt.Errorf("load: %w", err)
	assert.True(t, HasCategory(wrapped, CategoryNetwork))
	assert.True(t, IsRetryable(wrapped))
	assert.False(t, HasCategory(errors.New("plain"), CategoryNetwork))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestBuildSnapshotsContext(t *testing.T) {
	b := ValidationError("bad value").WithContext("field", "language")
	first := b.Build()
	b.WithContext("field", "style")
	second := b.Build()

	v, _ := first.Value("field")
	assert.Equal(t, "language", v)
	v, _ = second.Value("field")
	assert.Equal(t, "style", v)
}

func TestIsMatchesCategoryAndMessage(t *testing.T) {
	err := fmt.Errorf("wrap: %w", StyleError("unknown style").WithContext("style", "x").Build())
	assert.ErrorIs(t, err, StyleError("unknown style").Build())
	assert.NotErrorIs(t, err, StyleError("other").Build())
	assert.NotErrorIs(t, err, BuildError("unknown style").Build())
}
