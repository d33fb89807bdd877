// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

// This file contains a REST skeleton framework.
//
// The bulk of this is dealing with HTTP content type negotiation, and
// providing a standard way to deal with input and output values.
// Every resource is a resourceHandler with one function per HTTP
// method; the handler decodes the request body, calls the function,
// and turns its result or error into a response, so the functions
// themselves never touch the http.ResponseWriter.

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/diffeo/nebibs-backend/restdata"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ugorji/go/codec"
)

var typeMap = map[string]string{
	"text/json":              restdata.V1JSONMediaType,
	restdata.JSONMediaType:   restdata.V1JSONMediaType,
	restdata.V1JSONMediaType: restdata.V1JSONMediaType,
}

// errBadAccept is returned from negotiateResponse() if the Accept:
// header is malformed (and no more specific error applies).
var errBadAccept = errors.New("Invalid Accept: header")

// errNotAcceptable is returned from negotiateResponse() if the Accept:
// header does not mention any media types we can actually return.
type errNotAcceptable struct{}

func (e errNotAcceptable) Error() string {
	return "No acceptable representation for response"
}

func (e errNotAcceptable) HTTPStatus() int {
	return http.StatusNotAcceptable
}

// errMethodNotAllowed is used within the resourceHandler implementation
// to flag an error if a particular HTTP method is not allowed.  This
// corresponds exactly to the 405 Method Not Allowed HTTP status code.
type errMethodNotAllowed struct {
	Method string
}

func (e errMethodNotAllowed) Error() string {
	return fmt.Sprintf("Method %v not allowed", e.Method)
}

func (e errMethodNotAllowed) HTTPStatus() int {
	return http.StatusMethodNotAllowed
}

// responseCreated is returned as a value response from handler
// functions that want to indicate that a new resource was created.
type responseCreated struct {
	// Location holds the canonical URL to the newly created resource.
	Location string

	// Body contains the object sent in the body of the response.
	Body interface{}
}

// statusOf picks the HTTP status for an error returned from a handler
// function.  Errors that do not say otherwise are bugs in the handler.
func statusOf(err error) int {
	if errS, hasStatus := err.(restdata.ErrorStatus); hasStatus {
		return errS.HTTPStatus()
	}
	if errS, hasStatus := pkgerrors.Cause(err).(restdata.ErrorStatus); hasStatus {
		return errS.HTTPStatus()
	}
	return http.StatusInternalServerError
}

type resourceHandler struct {
	// Resource names this resource in logs and metrics, e.g.
	// "experiments".
	Resource string

	// Collection is true if this resource is a whole collection
	// rather than a single record.  It only changes the operation
	// names reported in logs and metrics.
	Collection bool

	// Context reads an HTTP request and produces a context object.
	Context func(req *http.Request) (*requestContext, error)

	// Log receives a line for every failed request that is not
	// the client's fault.
	Log logrus.FieldLogger

	// Get, if non-nil, returns a representation of the object.
	Get func(*requestContext) (interface{}, error)

	// Post, if non-nil, takes some arbitrary action, typically
	// creating a new resource.  The parameter is the decoded
	// request body.  The return can be any useful return value,
	// including responseCreated.
	Post func(*requestContext, map[string]interface{}) (interface{}, error)

	// Patch, if non-nil, partially updates the object.  The
	// parameter is the decoded request body.
	Patch func(*requestContext, map[string]interface{}) (interface{}, error)

	// Delete, if non-nil, deletes the object.  A nil return
	// produces 204 No Content.
	Delete func(*requestContext) (interface{}, error)
}

// operation names the operation a request performs, for logs and
// metrics.
func (h *resourceHandler) operation(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead:
		if h.Collection {
			return "list"
		}
		return "get"
	case http.MethodPost:
		return "create"
	case http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	default:
		return "other"
	}
}

func (h *resourceHandler) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	var (
		ctx          *requestContext
		in           map[string]interface{}
		out          interface{}
		err          error
		status       int
		responseType string
	)
	operation := h.operation(req.Method)

	// Recover from panics by sending an HTTP error.
	defer func() {
		if recovered := recover(); recovered != nil {
			response := restdata.ErrorResponse{}
			stack := response.FromPanic(recovered)
			h.logger().WithFields(logrus.Fields{
				"resource":  h.Resource,
				"operation": operation,
				"stack":     stack,
			}).Error(response.Detail)
			requestsTotal.WithLabelValues(h.Resource, operation, strconv.Itoa(http.StatusInternalServerError)).Inc()
			resp.Header().Set("Content-Type", restdata.JSONMediaType)
			resp.WriteHeader(http.StatusInternalServerError)
			encoder := codec.NewEncoder(resp, restdata.JSONHandle())
			_ = encoder.Encode(response)
		}
	}()

	// Start by trying to come up with a response type, even before
	// trying to parse the input.  This determines what format an
	// error message could be sent back as.
	responseType, err = negotiateResponse(req)
	if err != nil {
		// Gotta pick something
		responseType = restdata.JSONMediaType
		if _, isStatus := err.(restdata.ErrorStatus); !isStatus {
			err = restdata.ErrBadRequest{Err: err}
		}
	}

	// Get bits from URL parameters
	if err == nil {
		ctx, err = h.Context(req)
	}

	// Read the JSON body, if the method has one and we can use it
	hasBody := (req.Method == http.MethodPost && h.Post != nil) ||
		(req.Method == http.MethodPatch && h.Patch != nil)
	if err == nil && hasBody {
		contentType := req.Header.Get("Content-Type")
		in, err = restdata.DecodeObject(contentType, req.Body)
	}

	// Actually call the handler method
	if err == nil {
		// We will return this if the method is unexpected or
		// we don't have a handler for it
		err = errMethodNotAllowed{Method: req.Method}
		switch req.Method {
		case http.MethodGet, http.MethodHead:
			if h.Get != nil {
				out, err = h.Get(ctx)
			}
		case http.MethodPost:
			if h.Post != nil {
				out, err = h.Post(ctx, in)
			}
		case http.MethodPatch:
			if h.Patch != nil {
				out, err = h.Patch(ctx, in)
			}
		case http.MethodDelete:
			if h.Delete != nil {
				out, err = h.Delete(ctx)
			}
		}
	}

	// Fix up the final result based on what we know.
	if err != nil {
		status = statusOf(err)
		if _, notAllowed := err.(errMethodNotAllowed); notAllowed {
			resp.Header().Set("Allow", h.allowed())
		}
		errResp := restdata.ErrorResponse{}
		errResp.FromError(err)
		out = errResp
		if status >= http.StatusInternalServerError {
			h.logger().WithFields(logrus.Fields{
				"resource":  h.Resource,
				"operation": operation,
				"status":    status,
				"err":       err,
			}).Error("request failed")
		}
	} else if out == nil {
		status = http.StatusNoContent
	} else if created, isCreated := out.(responseCreated); isCreated {
		status = http.StatusCreated
		if created.Location != "" {
			resp.Header().Set("Location", created.Location)
		}
		out = created.Body
	} else {
		status = http.StatusOK
	}
	if req.Method == http.MethodHead {
		out = nil
	}
	requestsTotal.WithLabelValues(h.Resource, operation, strconv.Itoa(status)).Inc()

	// Actually send the response.  It is possible for the encoder
	// to fail, but by the point this happens we've already written
	// an HTTP status line, so there is nothing better to do than
	// drop the error.
	if out != nil {
		resp.Header().Set("Content-Type", responseType)
	}
	resp.WriteHeader(status)
	if out != nil {
		encoder := codec.NewEncoder(resp, restdata.JSONHandle())
		_ = encoder.Encode(out)
	}
}

func (h *resourceHandler) logger() logrus.FieldLogger {
	if h.Log == nil {
		return logrus.StandardLogger()
	}
	return h.Log
}

// allowed returns the value of an Allow: header for this resource.
func (h *resourceHandler) allowed() string {
	var methods []string
	if h.Get != nil {
		methods = append(methods, http.MethodGet, http.MethodHead)
	}
	if h.Post != nil {
		methods = append(methods, http.MethodPost)
	}
	if h.Patch != nil {
		methods = append(methods, http.MethodPatch)
	}
	if h.Delete != nil {
		methods = append(methods, http.MethodDelete)
	}
	return strings.Join(methods, ", ")
}

// negotiateResponse returns a supported MIME type for the response
// body, following the path laid out in RFC 7231 section 5.3.
func negotiateResponse(req *http.Request) (string, error) {
	accept := req.Header.Get("Accept")
	if accept == "" {
		accept = "*/*"
	}
	bestType := ""
	bestQ := 0.0
	mediaRanges := strings.Split(accept, ",")
	for _, mediaRange := range mediaRanges {
		mediaRange = strings.TrimSpace(mediaRange)
		if mediaRange == "" {
			continue
		}
		mediaType, params, err := mime.ParseMediaType(mediaRange)
		if err != nil {
			return "", err
		}

		// What is the "q" ("quality") parameter for this type?
		// If it is less than the best known so far, skip it
		q := 1.0
		if qStr, haveQ := params["q"]; haveQ {
			q, err = strconv.ParseFloat(qStr, 64)
			if err != nil {
				return "", err
			}
			if q < 0.0 || q > 1.0 {
				return "", errBadAccept
			}
		}
		if q < bestQ {
			continue
		}

		// This is acceptable if it's listed in the type
		// map; or it's one of a couple of specific wildcards.
		// Also need to handle wildcard precedence.  So:
		if mediaType == "*/*" {
			// Doesn't override anything.
			if q > bestQ {
				bestType = mediaType
				bestQ = q
			}
		} else if mediaType == "text/*" || mediaType == "application/*" {
			// Only overrides "*/*".
			if q > bestQ || bestType == "*/*" {
				bestType = mediaType
				bestQ = q
			}
		} else if _, knownType := typeMap[mediaType]; knownType {
			// Overrides any wildcard.  We want the first one
			// at a given q to win.
			if q > bestQ || bestType == "*/*" || bestType == "text/*" || bestType == "application/*" {
				bestType = mediaType
				bestQ = q
			}
		}
		// Otherwise we don't recognize this type at all, so
		// just drop it.
	}
	// If this failed to win, return an error
	if bestQ == 0.0 {
		return "", errNotAcceptable{}
	}
	switch bestType {
	case "*/*", "application/*":
		return restdata.JSONMediaType, nil
	case "text/*":
		return "text/json", nil
	default:
		return bestType, nil
	}
}
