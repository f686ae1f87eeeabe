package router

import (
	"errors"
	"strings"

	"tinyhttpd/internal/http/proto"
	"tinyhttpd/internal/http/request"
	"tinyhttpd/internal/http/response"

	"go.uber.org/zap"
)

const (
	echoPrefix  = "/echo/"
	filesPrefix = "/files/"
)

// NewDefault builds the server's routing table. Files are served from store.
func NewDefault(store FileStore, logger *zap.Logger) *Router {
	rt := New()
	rt.Handle("/", HandlerFunc(Root))
	rt.HandlePrefix(echoPrefix, HandlerFunc(Echo))
	rt.Handle("/user-agent", HandlerFunc(UserAgent))
	rt.HandlePrefix(filesPrefix, NewFiles(store, logger))
	return rt
}

func Root(*request.Request) *response.Response {
	return response.OK().Build()
}

// Echo answers with the part of the path after /echo/.
func Echo(req *request.Request) *response.Response {
	return response.OK().SetText(strings.TrimPrefix(req.Path(), echoPrefix)).Build()
}

func UserAgent(req *request.Request) *response.Response {
	ua, ok := req.Headers().UserAgent()
	if !ok {
		return response.BadRequest().Build()
	}
	return response.OK().SetText(ua).Build()
}

type files struct {
	store  FileStore
	logger *zap.Logger
}

// NewFiles serves GET and POST under /files/.
func NewFiles(store FileStore, logger *zap.Logger) Handler {
	return &files{store: store, logger: logger}
}

func (f *files) Serve(req *request.Request) *response.Response {
	name := strings.TrimPrefix(req.Path(), filesPrefix)

	switch req.Method() {
	case proto.MethodGet:
		return f.read(name)
	case proto.MethodPost:
		return f.write(name, req)
	default:
		return response.BadRequest().Build()
	}
}

func (f *files) read(name string) *response.Response {
	data, err := f.store.Read(name)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) || errors.Is(err, ErrInvalidName) {
			return response.NotFound().Build()
		}
		f.logger.Error("failed to read file", zap.String("name", name), zap.Error(err))
		return response.InternalServerError().Build()
	}
	return response.OK().SetBytes(data).Build()
}

func (f *files) write(name string, req *request.Request) *response.Response {
	body, ok := req.Body()
	if !ok {
		return response.BadRequest().Build()
	}

	if err := f.store.Write(name, body.Bytes()); err != nil {
		if errors.Is(err, ErrInvalidName) {
			return response.NotFound().Build()
		}
		f.logger.Error("failed to write file", zap.String("name", name), zap.Error(err))
		return response.InternalServerError().Build()
	}
	return response.Created().Build()
}
