package header

import "strconv"

// Name is one of the header names the server understands. The set is closed;
// anything else on the wire is rejected by the parser.
type Name uint8

const (
	Host Name = iota
	UserAgent
	Accept
	ContentType
	ContentLength

	nameCount
)

var names = [nameCount]string{
	Host:          "Host",
	UserAgent:     "User-Agent",
	Accept:        "Accept",
	ContentType:   "Content-Type",
	ContentLength: "Content-Length",
}

func (n Name) String() string {
	if n < nameCount {
		return names[n]
	}
	return "Unknown"
}

// ParseName is case-sensitive: "host" is not Host.
func ParseName(b []byte) (Name, bool) {
	for i, name := range names {
		if string(b) == name {
			return Name(i), true
		}
	}
	return 0, false
}

// Table holds at most one value per Name. It is a plain value: copying a
// Table copies every entry, and == compares the set of name/value pairs.
type Table struct {
	values  [nameCount]string
	present [nameCount]bool
}

func (t *Table) set(n Name, v string) {
	t.values[n] = v
	t.present[n] = true
}

func (t Table) get(n Name) (string, bool) {
	return t.values[n], t.present[n]
}

func (t Table) Host() (string, bool)          { return t.get(Host) }
func (t Table) UserAgent() (string, bool)     { return t.get(UserAgent) }
func (t Table) Accept() (string, bool)        { return t.get(Accept) }
func (t Table) ContentType() (string, bool)   { return t.get(ContentType) }
func (t Table) ContentLength() (string, bool) { return t.get(ContentLength) }

func (t *Table) SetHost(v string)        { t.set(Host, v) }
func (t *Table) SetUserAgent(v string)   { t.set(UserAgent, v) }
func (t *Table) SetAccept(v string)      { t.set(Accept, v) }
func (t *Table) SetContentType(v string) { t.set(ContentType, v) }

func (t *Table) SetContentLength(n int) {
	t.set(ContentLength, strconv.Itoa(n))
}

// Len returns the number of headers present.
func (t Table) Len() int {
	n := 0
	for _, ok := range t.present {
		if ok {
			n++
		}
	}
	return n
}

// Each calls fn for every header present. Callers must not rely on the order.
func (t Table) Each(fn func(name Name, value string)) {
	for i := Name(0); i < nameCount; i++ {
		if t.present[i] {
			fn(i, t.values[i])
		}
	}
}

func (t Table) Equal(other Table) bool {
	return t == other
}

// AppendTo appends one "Name: value\r\n" line per header. The terminating
// blank line is not written.
func (t Table) AppendTo(dst []byte) []byte {
	t.Each(func(name Name, value string) {
		dst = append(dst, name.String()...)
		dst = append(dst, ':', ' ')
		dst = append(dst, value...)
		dst = append(dst, '\r', '\n')
	})
	return dst
}

func (t Table) String() string {
	return string(t.AppendTo(nil))
}
