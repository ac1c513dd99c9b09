package ido

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedMode = errors.New("unsupported operation mode")
	ErrMalformedFilter = errors.New("filter value contains a single quote")
)

// RemoteAPIError is returned when the invoke-method call reports a failure.
// Detail and Infobar are the ResponseCode and ResponseInfobar output
// parameters of the call.
type RemoteAPIError struct {
	Detail  string
	Infobar string
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("Trigger of IONAPI Method Failed : %s\r\n%s", e.Detail, e.Infobar)
}

// ParseError means the load response did not match the {"Items":[...]} envelope.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "parse load response: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
