// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	tests := []struct{ in, out string }{
		{"0b6e8f5c-4bd7-4a53-9a4e-2f3fb1d6e8a1", "0b6e8f5c-4bd7-4a53-9a4e-2f3fb1d6e8a1"},
		{"0B6E8F5C-4BD7-4A53-9A4E-2F3FB1D6E8A1", "0b6e8f5c-4bd7-4a53-9a4e-2f3fb1d6e8a1"},
	}
	for _, test := range tests {
		id, err := ParseID(test.in)
		if assert.NoError(t, err, test.in) {
			assert.Equal(t, test.out, id)
		}
	}
}

func TestParseIDInvalid(t *testing.T) {
	for _, in := range []string{"", "not-a-uuid", "1234", "0b6e8f5c-4bd7-4a53-9a4e"} {
		_, err := ParseID(in)
		if assert.Error(t, err, in) {
			assert.IsType(t, ErrValidation{}, err)
			assert.Equal(t, http.StatusUnprocessableEntity, err.(ErrorStatus).HTTPStatus())
		}
	}
}
