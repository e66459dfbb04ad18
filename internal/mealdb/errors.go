package mealdb

import (
	"context"
	"errors"
	"fmt"
)

// Error kinds reported by Kind.
const (
	KindTransport = "transport"
	KindResponse  = "response"
	KindPayload   = "payload"
	KindCanceled  = "canceled"
)

// TransportError means the request could not be sent or no usable response arrived.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "transport error"
	}
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ResponseError means the endpoint answered with a non-2xx status.
type ResponseError struct {
	URL        string
	StatusCode int
}

func (e *ResponseError) Error() string {
	if e == nil {
		return "response error"
	}
	return fmt.Sprintf("received non-2xx status code %d from %s", e.StatusCode, e.URL)
}

// PayloadError means the body was read but did not describe a usable recipe.
type PayloadError struct {
	Reason string
	Err    error
}

func (e *PayloadError) Error() string {
	if e == nil {
		return "payload error"
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid payload: %s: %v", e.Reason, e.Err)
	}
	return "invalid payload: " + e.Reason
}

func (e *PayloadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Kind names the failure class of err for diagnostics. It returns "" for nil.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}

	var transportErr *TransportError
	var responseErr *ResponseError
	var payloadErr *PayloadError
	switch {
	case errors.As(err, &responseErr):
		return KindResponse
	case errors.As(err, &payloadErr):
		return KindPayload
	case errors.As(err, &transportErr):
		return KindTransport
	default:
		return KindTransport
	}
}
