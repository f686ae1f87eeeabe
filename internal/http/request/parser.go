package request

import (
	"bytes"
	"errors"
	"strconv"
	"unicode/utf8"

	"tinyhttpd/internal/http/header"
	"tinyhttpd/internal/http/proto"
)

var crlf = []byte("\r\n")

// Parse reads one request from the start of buf and returns it together with
// the bytes that follow it. buf is not modified and the returned Request does
// not alias it.
//
// Matching of the method, the version and header names is exact and
// case-sensitive. Only the headers known to package header are accepted.
//
// When buf holds a prefix of a valid request the error satisfies
// IsIncomplete and the caller should read more and call Parse again with the
// accumulated bytes.
func Parse(buf []byte) (*Request, []byte, error) {
	lineEnd := bytes.Index(buf, crlf)
	if lineEnd == -1 {
		return nil, nil, proto.NewParseError(proto.ErrIncomplete, nil)
	}

	req, err := parseRequestLine(buf[:lineEnd])
	if err != nil {
		return nil, nil, err
	}

	rest := buf[lineEnd+len(crlf):]
	headers, n, err := header.Parse(rest)
	if err != nil {
		return nil, nil, err
	}
	req.headers = headers
	rest = rest[n:]

	length, ok := contentLength(headers)
	if !ok {
		return req, rest, nil
	}

	if len(rest) < length {
		return nil, nil, proto.NewParseError(proto.ErrTruncatedBody, rest)
	}

	body := proto.BytesBody(rest[:length])
	req.body = &body
	return req, rest[length:], nil
}

// IsIncomplete reports whether err means more bytes are needed rather than
// that the input is malformed.
func IsIncomplete(err error) bool {
	return errors.Is(err, proto.ErrIncomplete) || errors.Is(err, proto.ErrTruncatedBody)
}

func parseRequestLine(line []byte) (*Request, error) {
	parts := bytes.Split(line, []byte{' '})
	if len(parts) != 3 {
		return nil, proto.NewParseError(proto.ErrMalformedRequestLine, line)
	}

	method, ok := proto.ParseMethod(parts[0])
	if !ok {
		return nil, proto.NewParseError(proto.ErrUnknownMethod, parts[0])
	}

	target := parts[1]
	if len(target) == 0 {
		return nil, proto.NewParseError(proto.ErrInvalidTarget, line)
	}
	if !utf8.Valid(target) {
		return nil, proto.NewParseError(proto.ErrInvalidUTF8, target)
	}

	version, ok := proto.ParseVersion(parts[2])
	if !ok {
		return nil, proto.NewParseError(proto.ErrUnrecognizedVersion, parts[2])
	}
	if !version.Supported() {
		return nil, proto.NewParseError(proto.ErrUnsupportedVersion, parts[2])
	}

	return &Request{
		method:  method,
		path:    string(target),
		version: version,
	}, nil
}

// contentLength returns the declared body length. A missing or non-numeric
// Content-Length means there is no body.
func contentLength(headers header.Table) (int, bool) {
	raw, ok := headers.ContentLength()
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(raw, 10, 31)
	if err != nil {
		return 0, false
	}
	return int(n), true
}
