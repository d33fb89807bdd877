// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"github.com/satori/go.uuid"
)

// ParseID checks that a record identifier from a URL is a UUID, and
// returns it in canonical lower-case hyphenated form.  Anything else
// is an ErrValidation.
func ParseID(s string) (string, error) {
	id, err := uuid.FromString(s)
	if err != nil {
		return "", ErrValidation{Field: "id", Message: "value is not a valid UUID"}
	}
	return id.String(), nil
}
