package dispatcher

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"

	"tinyhttpd/internal/http/proto"
	"tinyhttpd/internal/http/request"
	"tinyhttpd/internal/http/response"
	"tinyhttpd/internal/router"

	"go.uber.org/zap"
)

var ErrRequestTooLarge = fmt.Errorf("request too large")

var headerEnd = []byte("\r\n\r\n")

// connection is owned by exactly one worker for its whole life.
//
// Reads park the goroutine on the runtime netpoller until the socket is
// readable, and net.Conn.Write only returns once every byte is written or the
// connection failed, so there is no would-block handling here.
type connection struct {
	conn           net.Conn
	handler        router.Handler
	logger         *zap.Logger
	readBuf        []byte
	pending        []byte
	maxRequestSize int
	readErr        error
	// discarding is set after a bad message until the blank line ending its
	// header block has been seen.
	discarding bool
}

func newConnection(conn net.Conn, handler router.Handler, bufferSize, maxRequestSize int, logger *zap.Logger) *connection {
	return &connection{
		conn:           conn,
		handler:        handler,
		logger:         logger,
		readBuf:        make([]byte, bufferSize),
		pending:        make([]byte, 0, bufferSize),
		maxRequestSize: maxRequestSize,
	}
}

// serve runs the read, parse, route, write loop. It returns nil when the peer
// closes the connection.
func (c *connection) serve() error {
	for {
		var resp *response.Response

		req, err := c.readRequest()
		switch {
		case err == nil:
			resp = c.handler.Serve(req)
		case isMessageError(err):
			c.logger.Info("failed to parse request", zap.Error(err))
			resp = response.InternalServerError().Build()
		case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
			return nil
		default:
			return fmt.Errorf("read request: %w", err)
		}

		if _, err = resp.WriteTo(c.conn); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
}

// readRequest parses the next request from the bytes already buffered and
// reads more whenever the parser asks for it. Bytes after a request are kept
// for the next call. After a malformed request the rest of that message, up
// to the blank line ending its headers, is dropped even when it spans several
// reads.
func (c *connection) readRequest() (*request.Request, error) {
	for {
		if c.discarding {
			c.skipBadMessage()
		}

		if !c.discarding && len(c.pending) > 0 {
			req, rest, err := request.Parse(c.pending)
			if err == nil {
				c.pending = c.pending[:copy(c.pending, rest)]
				return req, nil
			}
			if !request.IsIncomplete(err) {
				c.discarding = true
				return nil, err
			}
			if len(c.pending) >= c.maxRequestSize {
				size := len(c.pending)
				c.discarding = true
				return nil, fmt.Errorf("%w: %d bytes buffered", ErrRequestTooLarge, size)
			}
		}

		if c.readErr != nil {
			return nil, c.readErr
		}

		n, err := c.conn.Read(c.readBuf)
		c.pending = append(c.pending, c.readBuf[:n]...)
		if err != nil {
			c.readErr = err
		}
	}
}

// skipBadMessage drops pending bytes through the first blank line. Without
// one, only the last len(headerEnd)-1 bytes are kept so a terminator split
// across reads is still found.
func (c *connection) skipBadMessage() {
	if i := bytes.Index(c.pending, headerEnd); i >= 0 {
		c.pending = c.pending[:copy(c.pending, c.pending[i+len(headerEnd):])]
		c.discarding = false
		return
	}
	if keep := len(headerEnd) - 1; len(c.pending) > keep {
		c.pending = c.pending[:copy(c.pending, c.pending[len(c.pending)-keep:])]
	}
}

func isMessageError(err error) bool {
	var perr *proto.ParseError
	return errors.As(err, &perr) || errors.Is(err, ErrRequestTooLarge)
}
