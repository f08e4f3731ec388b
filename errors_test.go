package pointkit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeError(t *testing.T) {
	cause := errors.New("unexpected token")

	err := &DecodeError{Path: "p.json", cause: cause}
	assert.Equal(t, "decode p.json: unexpected token", err.Error())
	assert.ErrorIs(t, err, cause)

	err = &DecodeError{cause: ErrEmptyInput}
	assert.Equal(t, "decode: empty input", err.Error())
	assert.ErrorIs(t, err, ErrEmptyInput)
}
