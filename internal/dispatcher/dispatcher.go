package dispatcher

import (
	"context"
	"errors"
	"net"

	"tinyhttpd/internal/random"
	"tinyhttpd/internal/registry"
	"tinyhttpd/internal/router"

	"go.uber.org/zap"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultWorkers        = 4
	DefaultBufferSize     = 1024
	DefaultMaxRequestSize = 1 << 20
)

type Transport interface {
	Listen() (net.Listener, error)
	Serve(ctx context.Context, listener net.Listener) error
}

type Options struct {
	Address        string
	Workers        int
	BufferSize     int
	MaxRequestSize int
}

type dispatcher struct {
	address        string
	workers        int
	bufferSize     int
	maxRequestSize int
	handler        router.Handler
	logger         *zap.Logger
	ids            random.IDs
	conns          registry.Registry
}

func New(opts Options, handler router.Handler, logger *zap.Logger) Transport {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = DefaultBufferSize
	}
	if opts.MaxRequestSize < opts.BufferSize {
		opts.MaxRequestSize = max(DefaultMaxRequestSize, opts.BufferSize)
	}

	return &dispatcher{
		address:        opts.Address,
		workers:        opts.Workers,
		bufferSize:     opts.BufferSize,
		maxRequestSize: opts.MaxRequestSize,
		handler:        handler,
		logger:         logger,
		ids:            random.New(),
		conns:          registry.NewRegistry(),
	}
}

func (d *dispatcher) Listen() (net.Listener, error) {
	return net.Listen("tcp", d.address)
}

// Serve accepts connections until ctx is cancelled or the listener is closed.
// At most Workers connections are open at a time; further clients wait in
// the kernel backlog. On return every connection has been closed and every
// worker has exited.
func (d *dispatcher) Serve(ctx context.Context, listener net.Listener) error {
	d.logger.Info("dispatcher is starting",
		zap.Stringer("address", listener.Addr()),
		zap.Int("workers", d.workers),
	)

	ln := netutil.LimitListener(listener, d.workers)
	stop := context.AfterFunc(ctx, func() {
		if err := ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			d.logger.Warn("failed to close listener", zap.Error(err))
		}
	})
	defer stop()

	queue := make(chan net.Conn)
	var workers errgroup.Group
	for i := 0; i < d.workers; i++ {
		worker := i
		workers.Go(func() error {
			for conn := range queue {
				d.serveConn(worker, conn)
			}
			return nil
		})
	}

	d.acceptLoop(ln, queue)
	close(queue)

	if err := d.conns.CloseAll(); err != nil {
		d.logger.Debug("failed to close some connections", zap.Error(err))
	}
	err := workers.Wait()
	d.logger.Info("dispatcher stopped")
	return err
}

func (d *dispatcher) acceptLoop(ln net.Listener, queue chan<- net.Conn) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			d.logger.Warn("failed to accept connection", zap.Error(err))
			continue
		}
		queue <- conn
	}
}

func (d *dispatcher) serveConn(worker int, conn net.Conn) {
	defer func() {
		if err := conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			d.logger.Debug("failed to close connection", zap.Error(err))
		}
	}()

	id, err := d.ids.Next()
	if err != nil {
		id = conn.RemoteAddr().String()
	}
	logger := d.logger.With(
		zap.String("conn", id),
		zap.Int("worker", worker),
		zap.Stringer("remote", conn.RemoteAddr()),
	)

	if !d.conns.Register(id, conn) {
		logger.Debug("dropping connection, dispatcher is shutting down or id is taken")
		return
	}
	defer d.conns.Remove(id)

	logger.Debug("connection accepted")
	c := newConnection(conn, d.handler, d.bufferSize, d.maxRequestSize, logger)
	if err = c.serve(); err != nil {
		logger.Warn("connection closed with error", zap.Error(err))
		return
	}
	logger.Debug("connection closed")
}
