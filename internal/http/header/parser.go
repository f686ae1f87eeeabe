package header

import (
	"bytes"
	"unicode/utf8"

	"tinyhttpd/internal/http/proto"
)

var crlf = []byte("\r\n")

// ParseLine parses one header line without its CRLF.
func ParseLine(line []byte) (Name, string, error) {
	colonIdx := bytes.IndexByte(line, ':')
	if colonIdx == -1 {
		return 0, "", proto.NewParseError(proto.ErrMalformedHeaderLine, line)
	}

	name, ok := ParseName(line[:colonIdx])
	if !ok {
		return 0, "", proto.NewParseError(proto.ErrUnknownHeaderName, line[:colonIdx])
	}

	value := bytes.TrimLeft(line[colonIdx+1:], " \t")
	if !utf8.Valid(value) {
		return 0, "", proto.NewParseError(proto.ErrInvalidUTF8, value)
	}

	return name, string(value), nil
}

// Parse reads header lines from the start of buf up to and including the
// blank line that ends the block. It returns the table and the number of
// bytes consumed. When buf ends before the blank line the error kind is
// proto.ErrIncomplete and nothing is consumed.
func Parse(buf []byte) (Table, int, error) {
	var table Table
	consumed := 0

	for {
		remaining := buf[consumed:]
		lineEnd := bytes.Index(remaining, crlf)
		if lineEnd == -1 {
			return Table{}, 0, proto.NewParseError(proto.ErrIncomplete, nil)
		}

		line := remaining[:lineEnd]
		consumed += lineEnd + len(crlf)

		if len(line) == 0 {
			return table, consumed, nil
		}

		name, value, err := ParseLine(line)
		if err != nil {
			return Table{}, 0, err
		}
		table.set(name, value)
	}
}
