package proto

// Method is one of the request methods listed in RFC 9110 table 4.
type Method uint8

const (
	MethodGet Method = iota
	MethodHead
	MethodPost
	MethodPut
	MethodDelete
	MethodConnect
	MethodOptions
	MethodTrace
)

var methodNames = [...]string{
	MethodGet:     "GET",
	MethodHead:    "HEAD",
	MethodPost:    "POST",
	MethodPut:     "PUT",
	MethodDelete:  "DELETE",
	MethodConnect: "CONNECT",
	MethodOptions: "OPTIONS",
	MethodTrace:   "TRACE",
}

func (m Method) String() string {
	if int(m) < len(methodNames) {
		return methodNames[m]
	}
	return "UNKNOWN"
}

// ParseMethod matches b byte for byte against the known methods. "get" is not GET.
func ParseMethod(b []byte) (Method, bool) {
	for i, name := range methodNames {
		if string(b) == name {
			return Method(i), true
		}
	}
	return 0, false
}
