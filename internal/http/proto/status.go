package proto

import "strconv"

// Status is one of the response codes the server sends.
type Status uint16

const (
	StatusOK                  Status = 200
	StatusCreated             Status = 201
	StatusBadRequest          Status = 400
	StatusNotFound            Status = 404
	StatusInternalServerError Status = 500
)

func (s Status) Code() int {
	return int(s)
}

// Valid reports whether s is one of the declared statuses.
func (s Status) Valid() bool {
	return s.Reason() != ""
}

func (s Status) Reason() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusCreated:
		return "Created"
	case StatusBadRequest:
		return "Bad Request"
	case StatusNotFound:
		return "Not Found"
	case StatusInternalServerError:
		return "Internal Server Error"
	default:
		return ""
	}
}

func (s Status) String() string {
	return strconv.Itoa(int(s)) + " " + s.Reason()
}

// StatusLine is the first line of a response. The zero value is not valid,
// use NewStatusLine.
type StatusLine struct {
	Version Version
	Status  Status
}

func NewStatusLine(status Status) StatusLine {
	return StatusLine{Version: Version11, Status: status}
}

// AppendTo appends "HTTP/1.1 200 OK\r\n" to dst.
func (sl StatusLine) AppendTo(dst []byte) []byte {
	dst = append(dst, sl.Version.String()...)
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, int64(sl.Status), 10)
	dst = append(dst, ' ')
	dst = append(dst, sl.Status.Reason()...)
	return append(dst, '\r', '\n')
}

func (sl StatusLine) String() string {
	return string(sl.AppendTo(nil))
}
