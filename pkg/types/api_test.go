package types

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorWrapping(t *testing.T) {
	err := fmt.Errorf("dex header 1 at 0x1f0: %w", ErrSuspiciousLocationLength)
	require.ErrorIs(t, err, ErrSuspiciousLocationLength)
	assert.NotErrorIs(t, err, ErrInvalidDexSize)

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrKindCorrupt, kind)
	assert.Equal(t, "corrupt", kind.String())
}

func TestErrorCause(t *testing.T) {
	err := &Error{Kind: ErrKindCorrupt, Msg: "truncated oat file", Err: io.ErrUnexpectedEOF}
	assert.Equal(t, "truncated oat file: unexpected EOF", err.Error())
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))

	var nilErr *Error
	assert.Equal(t, "<nil>", nilErr.Error())
}

func TestKindOfPlainError(t *testing.T) {
	_, ok := KindOf(io.EOF)
	assert.False(t, ok)
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "format", ErrKindFormat.String())
	assert.Equal(t, "not found", ErrKindNotFound.String())
	assert.Equal(t, "state", ErrKindState.String())
	assert.Equal(t, "backend", ErrKindBackend.String())
	assert.Equal(t, "unknown", ErrKind(42).String())
}
