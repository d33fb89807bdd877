// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgrest

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/ugorji/go/codec"
)

// ErrorHTTP is a catch-all error for non-successes returned from the
// service.
type ErrorHTTP struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Status is the HTTP status line, e.g. "404 Not Found".
	Status string

	// Body is the raw response body.
	Body string
}

func (e ErrorHTTP) Error() string {
	return fmt.Sprintf("%v: %v", e.Status, e.Body)
}

// ErrorService is an error the service described in its own JSON
// error body.
type ErrorService struct {
	StatusCode int    `codec:"-"`
	Code       string `codec:"code"`
	Message    string `codec:"message"`
	Details    string `codec:"details"`
	Hint       string `codec:"hint"`
}

func (e ErrorService) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return fmt.Sprintf("service returned %v: %v", e.StatusCode, msg)
}

// checkHTTPStatus examines an HTTP response and returns an error if
// it is not successful.
func checkHTTPStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// Always collect the entire body; we will need it as a fallback
	// and can only parse it once.
	var body []byte
	var err error
	if resp.Body != nil {
		body, err = ioutil.ReadAll(resp.Body)
		if err != nil {
			return err
		}
	}

	// Take a shot at decoding it as a better error
	var errResp ErrorService
	decoder := codec.NewDecoder(bytes.NewReader(body), jsonHandle())
	if err := decoder.Decode(&errResp); err == nil && errResp.Message != "" {
		errResp.StatusCode = resp.StatusCode
		return errResp
	}

	return ErrorHTTP{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}
}
