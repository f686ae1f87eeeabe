package header

import (
	"bytes"
	"errors"
	"testing"

	"tinyhttpd/internal/http/proto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect Name
		ok     bool
	}{
		{"host", "Host", Host, true},
		{"user agent", "User-Agent", UserAgent, true},
		{"accept", "Accept", Accept, true},
		{"content type", "Content-Type", ContentType, true},
		{"content length", "Content-Length", ContentLength, true},
		{"lowercase host", "host", 0, false},
		{"unknown", "X-Custom", 0, false},
		{"trailing space", "Host ", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := ParseName([]byte(tt.input))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expect, n)
				assert.Equal(t, tt.input, n.String())
			}
		})
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		expectName  Name
		expectValue string
		expectErr   error
	}{
		{
			name:        "host",
			line:        "Host: localhost:4221",
			expectName:  Host,
			expectValue: "localhost:4221",
		},
		{
			name:        "no space after colon",
			line:        "Accept:*/*",
			expectName:  Accept,
			expectValue: "*/*",
		},
		{
			name:        "value keeps inner colons and trailing space",
			line:        "User-Agent: a:b:c ",
			expectName:  UserAgent,
			expectValue: "a:b:c ",
		},
		{
			name:      "missing colon",
			line:      "Host localhost",
			expectErr: proto.ErrMalformedHeaderLine,
		},
		{
			name:      "unknown name",
			line:      "X-Custom: value",
			expectErr: proto.ErrUnknownHeaderName,
		},
		{
			name:      "invalid utf-8",
			line:      "User-Agent: \xff\xfe",
			expectErr: proto.ErrInvalidUTF8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, v, err := ParseLine([]byte(tt.line))
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectName, n)
			assert.Equal(t, tt.expectValue, v)
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("empty block", func(t *testing.T) {
		table, n, err := Parse([]byte("\r\nrest"))
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, 0, table.Len())
	})

	t.Run("request headers", func(t *testing.T) {
		data := []byte("Host: localhost:4221\r\nUser-Agent: curl/7.64.1\r\nAccept: */*\r\n\r\nbody")
		table, n, err := Parse(data)
		require.NoError(t, err)
		assert.Equal(t, "body", string(data[n:]))

		var expect Table
		expect.SetHost("localhost:4221")
		expect.SetUserAgent("curl/7.64.1")
		expect.SetAccept("*/*")
		assert.True(t, expect.Equal(table))
	})

	t.Run("duplicate header keeps the last value", func(t *testing.T) {
		table, _, err := Parse([]byte("Host: a\r\nHost: b\r\n\r\n"))
		require.NoError(t, err)
		host, ok := table.Host()
		assert.True(t, ok)
		assert.Equal(t, "b", host)
		assert.Equal(t, 1, table.Len())
	})

	t.Run("missing blank line is incomplete", func(t *testing.T) {
		_, n, err := Parse([]byte("Host: a\r\n"))
		assert.ErrorIs(t, err, proto.ErrIncomplete)
		assert.Equal(t, 0, n)
	})

	t.Run("partial line is incomplete", func(t *testing.T) {
		_, _, err := Parse([]byte("Host: a"))
		assert.ErrorIs(t, err, proto.ErrIncomplete)
	})

	t.Run("error carries fragment", func(t *testing.T) {
		_, _, err := Parse([]byte("Cookie: x\r\n\r\n"))
		var perr *proto.ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, proto.ErrUnknownHeaderName, perr.Kind)
		assert.Equal(t, []byte("Cookie"), perr.Fragment)
	})
}

func TestTableAccessors(t *testing.T) {
	var table Table
	_, ok := table.ContentLength()
	assert.False(t, ok)

	table.SetContentType("text/plain")
	table.SetContentLength(42)
	table.SetContentLength(3)

	ct, ok := table.ContentType()
	assert.True(t, ok)
	assert.Equal(t, "text/plain", ct)

	cl, ok := table.ContentLength()
	assert.True(t, ok)
	assert.Equal(t, "3", cl)
	assert.Equal(t, 2, table.Len())

	assert.Equal(t, "Content-Type: text/plain\r\nContent-Length: 3\r\n", table.String())
}

func TestTableEqualIgnoresInsertionOrder(t *testing.T) {
	var a, b Table
	a.SetHost("h")
	a.SetAccept("*/*")
	b.SetAccept("*/*")
	b.SetHost("h")
	assert.True(t, a.Equal(b))

	b.SetUserAgent("ua")
	assert.False(t, a.Equal(b))
}

func TestRoundTripAnyOrder(t *testing.T) {
	var original Table
	original.SetHost("localhost:4221")
	original.SetUserAgent("curl/7.64.1")
	original.SetAccept("*/*")
	original.SetContentType("text/plain")
	original.SetContentLength(3)

	lines := bytes.SplitAfter(original.AppendTo(nil), crlf)
	lines = lines[:len(lines)-1]
	require.Len(t, lines, 5)

	orders := [][]int{
		{0, 1, 2, 3, 4},
		{4, 3, 2, 1, 0},
		{2, 0, 4, 1, 3},
		{1, 4, 0, 3, 2},
	}

	for _, order := range orders {
		var wire []byte
		for _, i := range order {
			wire = append(wire, lines[i]...)
		}
		wire = append(wire, crlf...)

		parsed, n, err := Parse(wire)
		require.NoError(t, err)
		assert.Equal(t, len(wire), n)
		assert.True(t, original.Equal(parsed), "order %v", order)
	}
}
