package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Format(t *testing.T) {
	assert.Equal(t, "tasks.Get: NOT_FOUND: task not found", E(CodeNotFound, "tasks.Get", "", ErrTaskNotFound).Error())
	assert.Equal(t, "INVALID_ARGUMENT: bad input", E(CodeInvalidArgument, "", "bad input", nil).Error())
	assert.Equal(t, "registry.Add: INTERNAL", E(CodeInternal, "registry.Add", "", nil).Error())
	assert.Equal(t, "CANCELED", E(CodeCanceled, "", "", nil).Error())
}

func TestError_UnwrapAndIs(t *testing.T) {
	err := fmt.Errorf("lookup: %w", E(CodeNotFound, "catalog.Get", "", ErrItemNotFound))
	assert.True(t, errors.Is(err, ErrItemNotFound))

	var domainErr *Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, CodeNotFound, domainErr.Code)
}

func TestCodeFrom(t *testing.T) {
	cases := []struct {
		err  error
		code ErrorCode
		ok   bool
	}{
		{nil, "", false},
		{errors.New("plain"), "", false},
		{ErrInvalidCursor, CodeInvalidArgument, true},
		{fmt.Errorf("wrap: %w", ErrTaskNotFound), CodeNotFound, true},
		{ErrDuplicateName, CodeAlreadyExists, true},
		{ErrTaskTerminal, CodeFailedPrecond, true},
		{ErrElicitationUnsupported, CodeNotImplemented, true},
		{ErrStoreClosed, CodeUnavailable, true},
		{E(CodeCanceled, "op", "stop", nil), CodeCanceled, true},
	}
	for _, tc := range cases {
		code, ok := CodeFrom(tc.err)
		assert.Equal(t, tc.ok, ok, "%v", tc.err)
		assert.Equal(t, tc.code, code, "%v", tc.err)
	}
}
