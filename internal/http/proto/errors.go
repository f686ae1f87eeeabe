package proto

import "fmt"

// ErrorKind classifies a parse failure. Every kind is itself an error so
// callers can match with errors.Is(err, proto.ErrUnknownMethod).
type ErrorKind uint8

const (
	ErrIncomplete ErrorKind = iota + 1
	ErrUnknownMethod
	ErrInvalidTarget
	ErrUnrecognizedVersion
	ErrUnsupportedVersion
	ErrMalformedRequestLine
	ErrMalformedHeaderLine
	ErrUnknownHeaderName
	ErrTruncatedBody
	ErrInvalidUTF8
)

func (k ErrorKind) Error() string {
	switch k {
	case ErrIncomplete:
		return "incomplete message"
	case ErrUnknownMethod:
		return "unknown method"
	case ErrInvalidTarget:
		return "invalid request target"
	case ErrUnrecognizedVersion:
		return "unrecognized protocol version"
	case ErrUnsupportedVersion:
		return "unsupported protocol version"
	case ErrMalformedRequestLine:
		return "malformed request line"
	case ErrMalformedHeaderLine:
		return "malformed header line"
	case ErrUnknownHeaderName:
		return "unknown header name"
	case ErrTruncatedBody:
		return "truncated body"
	case ErrInvalidUTF8:
		return "invalid utf-8"
	default:
		return fmt.Sprintf("unknown parse error: %d", uint8(k))
	}
}

// ParseError carries the kind and a copy of the bytes that caused it.
type ParseError struct {
	Kind     ErrorKind
	Fragment []byte
}

func NewParseError(kind ErrorKind, fragment []byte) *ParseError {
	f := make([]byte, len(fragment))
	copy(f, fragment)
	return &ParseError{Kind: kind, Fragment: f}
}

func (e *ParseError) Error() string {
	if len(e.Fragment) == 0 {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %q", e.Kind.Error(), e.Fragment)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}
