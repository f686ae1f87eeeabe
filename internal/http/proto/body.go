package proto

import "unicode/utf8"

// BodyKind tells text bodies from raw byte bodies.
type BodyKind uint8

const (
	BodyText BodyKind = iota
	BodyBytes
)

// Body is a message payload, either text or an opaque byte sequence.
// The zero value is an empty text body.
type Body struct {
	kind BodyKind
	text string
	data []byte
}

func TextBody(s string) Body {
	return Body{kind: BodyText, text: s}
}

// BytesBody copies b.
func BytesBody(b []byte) Body {
	data := make([]byte, len(b))
	copy(data, b)
	return Body{kind: BodyBytes, data: data}
}

func (b Body) Kind() BodyKind {
	return b.kind
}

// Len is the length in bytes, which is what Content-Length carries.
func (b Body) Len() int {
	if b.kind == BodyText {
		return len(b.text)
	}
	return len(b.data)
}

func (b Body) Bytes() []byte {
	if b.kind == BodyText {
		return []byte(b.text)
	}
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

func (b Body) AppendTo(dst []byte) []byte {
	if b.kind == BodyText {
		return append(dst, b.text...)
	}
	return append(dst, b.data...)
}

func (b Body) String() string {
	if b.kind == BodyText {
		return b.text
	}
	if utf8.Valid(b.data) {
		return string(b.data)
	}
	return "<binary>"
}

func (b Body) Equal(other Body) bool {
	return b.kind == other.kind && string(b.AppendTo(nil)) == string(other.AppendTo(nil))
}
