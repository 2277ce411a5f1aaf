package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorFormat(t *testing.T) {
	t.Parallel()

	plain := New(ErrCodeInvalidModelPath, "model path does not exist")
	assert.Equal(t, "[PRED_001] model path does not exist", plain.Error())

	detailed := plain.WithDetail("/tmp/missing")
	assert.Equal(t, "[PRED_001] model path does not exist: /tmp/missing", detailed.Error())
	assert.Empty(t, plain.Detail, "WithDetail must not mutate the receiver")
}

func TestWrapAndUnwrap(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("permission denied")
	wrapped := Wrap(cause, ErrCodeArtifactIO, "writing input artifact")

	require.NotNil(t, wrapped)
	assert.Equal(t, cause, stderrors.Unwrap(wrapped))
	assert.True(t, stderrors.Is(wrapped, cause))

	assert.Nil(t, Wrap(nil, ErrCodeArtifactIO, "ignored"))
}

func TestIsCode(t *testing.T) {
	t.Parallel()

	inner := New(ErrCodeEmptyOutput, "predictions file is empty")
	outer := Wrap(inner, ErrCodeExternalTool, "external tool failed")
	layered := fmt.Errorf("predict: %w", outer)

	assert.True(t, IsCode(layered, ErrCodeExternalTool))
	assert.True(t, IsCode(layered, ErrCodeEmptyOutput))
	assert.False(t, IsCode(layered, ErrCodeInvalidModelPath))
	assert.False(t, IsCode(nil, ErrCodeInternal))
}

func TestGetCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ErrorCode("OK")},
		{"app error", New(ErrCodeValidation, "bad input"), ErrCodeValidation},
		{"wrapped app error", fmt.Errorf("cli: %w", New(ErrCodeConfig, "bad config")), ErrCodeConfig},
		{"plain error", stderrors.New("boom"), ErrCodeInternal},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, GetCode(tc.err))
		})
	}
}
