package watson

import (
	"errors"
	"fmt"
)

// Kind classifies a failed call.
type Kind string

const (
	KindTransport   Kind = "transport"
	KindService     Kind = "service"
	KindDecode      Kind = "decode"
	KindUnsupported Kind = "unsupported"
	KindUnknown     Kind = "unknown"
)

// ErrUnsupported is returned by capabilities the client declares but does not implement.
var ErrUnsupported = errors.New("watson: capability not supported")

// ServiceError is a failure reported by the remote service, either as a
// {code, error, description} body or as a non-2xx status.
type ServiceError struct {
	Code        int    `json:"code"`
	Reason      string `json:"error"`
	Description string `json:"description"`
}

func (e *ServiceError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("watson: service error %d %s", e.Code, e.Reason)
	}
	return fmt.Sprintf("watson: service error %d %s: %s", e.Code, e.Reason, e.Description)
}

// TransportError means no response was received.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("watson: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError means a response body did not satisfy the model it was decoded into.
type DecodeError struct {
	Model string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("watson: decode %s: %v", e.Model, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// KindOf reports which kind of failure err is.
func KindOf(err error) Kind {
	var (
		svc       *ServiceError
		transport *TransportError
		dec       *DecodeError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &svc):
		return KindService
	case errors.As(err, &transport):
		return KindTransport
	case errors.As(err, &dec):
		return KindDecode
	case errors.Is(err, ErrUnsupported):
		return KindUnsupported
	default:
		return KindUnknown
	}
}

// IsKind reports whether err is of kind k.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
