package proto

type Version uint8

const (
	Version09 Version = iota
	Version10
	Version11
	Version2
	Version3
)

var versionNames = [...]string{
	Version09: "HTTP/0.9",
	Version10: "HTTP/1.0",
	Version11: "HTTP/1.1",
	Version2:  "HTTP/2",
	Version3:  "HTTP/3",
}

func (v Version) String() string {
	if int(v) < len(versionNames) {
		return versionNames[v]
	}
	return "HTTP/?"
}

// Supported reports whether the server speaks v. Only HTTP/1.1 is served.
func (v Version) Supported() bool {
	return v == Version11
}

// ParseVersion recognizes the five protocol strings. A recognized but
// unsupported version still returns ok so callers can tell it apart from garbage.
func ParseVersion(b []byte) (Version, bool) {
	for i, name := range versionNames {
		if string(b) == name {
			return Version(i), true
		}
	}
	return 0, false
}
