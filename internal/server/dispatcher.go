// Package server runs the accept loop. Every accepted connection is handed
// to a bounded goroutine pool and served there by fasthttp, so the loop
// itself only ever blocks in Accept or while waiting for a free worker.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fixture-gateway/internal/platform/logging"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// ErrStopped is returned by Serve once Shutdown has been called.
var ErrStopped = errors.New("dispatcher stopped")

const (
	minAcceptBackoff = 5 * time.Millisecond
	maxAcceptBackoff = time.Second
)

type Config struct {
	Name         string
	PoolSize     int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	KeepAlive    bool
}

type Dispatcher struct {
	pool    *ants.Pool
	http    *fasthttp.Server
	logger  *logging.Logger
	stopped atomic.Bool
	ln      atomic.Pointer[net.Listener]
}

// New builds a dispatcher serving handler. With KeepAlive off each
// connection carries exactly one request.
func New(cfg Config, handler http.Handler, logger *logging.Logger) (*Dispatcher, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.PoolSize < 1 {
		return nil, fmt.Errorf("worker pool size must be at least 1, got %d", cfg.PoolSize)
	}

	d := &Dispatcher{logger: logger}

	pool, err := ants.NewPool(cfg.PoolSize,
		ants.WithPanicHandler(func(rec any) {
			logger.Error("worker panic recovered", "panic", rec)
		}),
		ants.WithLogger(antsLogger{logger: logger}),
	)
	if err != nil {
		return nil, crerr.Wrap(err, "create worker pool")
	}
	d.pool = pool

	adapted := fasthttpadaptor.NewFastHTTPHandler(handler)
	d.http = &fasthttp.Server{
		Name:             cfg.Name,
		Handler:          d.trackRequest(adapted),
		ReadTimeout:      cfg.ReadTimeout,
		WriteTimeout:     cfg.WriteTimeout,
		IdleTimeout:      cfg.IdleTimeout,
		DisableKeepalive: !cfg.KeepAlive,
		Logger:           fasthttpLogger{logger: logger},
	}

	return d, nil
}

// Serve accepts connections from ln until Shutdown is called or a
// non-temporary accept error occurs. It always returns a non-nil error;
// after Shutdown that error is ErrStopped.
func (d *Dispatcher) Serve(ln net.Listener) error {
	// Publish ln before checking the flag so a concurrent Shutdown either
	// sees the listener or Serve sees the flag.
	d.ln.Store(&ln)
	if d.stopped.Load() {
		_ = ln.Close()
		return ErrStopped
	}
	d.logger.Info("dispatcher accepting", "addr", ln.Addr().String(), "workers", d.pool.Cap())

	var backoff time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if d.stopped.Load() {
				return ErrStopped
			}
			if isTemporary(err) {
				backoff = nextBackoff(backoff)
				d.logger.Warn("accept failed, retrying", "error", err, "backoff_ms", backoff.Milliseconds())
				time.Sleep(backoff)
				continue
			}
			return crerr.Wrap(err, "accept connection")
		}
		backoff = 0

		if d.stopped.Load() {
			_ = conn.Close()
			return ErrStopped
		}
		d.dispatch(conn)
	}
}

func (d *Dispatcher) dispatch(conn net.Conn) {
	remote := conn.RemoteAddr().String()
	d.logger.Debug("connection accepted", "remote_addr", remote)

	err := d.pool.Submit(func() {
		defer func() {
			if rec := recover(); rec != nil {
				d.logger.Error("connection handler panicked", "remote_addr", remote, "panic", rec)
				_ = conn.Close()
			}
		}()
		// ServeConn closes conn when it returns.
		if err := d.http.ServeConn(conn); err != nil {
			d.logger.Debug("connection closed with error", "remote_addr", remote, "error", err)
		}
	})
	if err != nil {
		d.logger.Warn("dispatch connection failed", "remote_addr", remote, "error", err)
		_ = conn.Close()
	}
}

// trackRequest logs the connection id fasthttp assigned and the worker
// that served it around every request.
func (d *Dispatcher) trackRequest(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		started := time.Now()
		d.logger.Debug("request start",
			"conn_id", ctx.ConnID(),
			"request_id", ctx.ID(),
			"busy_workers", d.pool.Running(),
		)
		next(ctx)
		d.logger.Debug("request end",
			"conn_id", ctx.ConnID(),
			"request_id", ctx.ID(),
			"status", ctx.Response.StatusCode(),
			"duration_ms", time.Since(started).Milliseconds(),
		)
	}
}

// Shutdown stops accepting, releases the listening socket and then waits
// for in-flight connections until ctx is done.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	if !d.stopped.CompareAndSwap(false, true) {
		return nil
	}

	var closeErr error
	if ln := d.ln.Load(); ln != nil {
		if err := (*ln).Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			closeErr = crerr.Wrap(err, "close listener")
		}
	}

	timeout := time.Duration(0)
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if timeout <= 0 {
		timeout = time.Millisecond
	}
	if err := d.pool.ReleaseTimeout(timeout); err != nil {
		d.logger.Warn("in-flight connections did not finish before shutdown deadline", "error", err)
		return errors.Join(closeErr, crerr.Wrap(err, "release worker pool"))
	}

	d.logger.Info("dispatcher stopped")
	return closeErr
}

type temporary interface {
	Temporary() bool
}

func isTemporary(err error) bool {
	var te temporary
	return errors.As(err, &te) && te.Temporary()
}

func nextBackoff(current time.Duration) time.Duration {
	if current == 0 {
		return minAcceptBackoff
	}
	current *= 2
	if current > maxAcceptBackoff {
		return maxAcceptBackoff
	}
	return current
}
