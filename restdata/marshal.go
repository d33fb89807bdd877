// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"io"
	"mime"
	"reflect"

	"github.com/ugorji/go/codec"
)

// JSONHandle returns a codec handle for the wire representation.
// Objects decoded into an interface{} become map[string]interface{}.
func JSONHandle() *codec.JsonHandle {
	h := &codec.JsonHandle{}
	h.MapType = reflect.TypeOf(map[string]interface{}(nil))
	return h
}

// Decode tries to decode a restdata object from a reader, such as an
// HTTP request or response.  out must be a pointer type.  A request
// with no Content-Type: is assumed to be JSON.
func Decode(contentType string, r io.Reader, out interface{}) error {
	if contentType == "" {
		contentType = JSONMediaType
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ErrBadRequest{Err: err}
	}

	// Promote to more specific types
	switch mediaType {
	case "text/json", JSONMediaType, V1JSONMediaType:
		mediaType = V1JSONMediaType
	default:
		return ErrUnsupportedMediaType{Type: mediaType}
	}

	decoder := codec.NewDecoder(r, JSONHandle())
	if err := decoder.Decode(out); err != nil {
		return ErrBadRequest{Err: err}
	}
	return nil
}

// DecodeObject decodes a request body that must be a JSON object.
func DecodeObject(contentType string, r io.Reader) (map[string]interface{}, error) {
	var body interface{}
	if err := Decode(contentType, r, &body); err != nil {
		return nil, err
	}
	obj, ok := body.(map[string]interface{})
	if !ok {
		return nil, ErrValidation{Message: "request body must be a JSON object"}
	}
	return obj, nil
}
