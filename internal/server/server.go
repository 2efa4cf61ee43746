// Package server implements the connection acceptor and per-client
// read/dispatch/write loop.
package server

import (
	"bufio"
	"errors"
	"io"
	"net"
	"sync"

	"github.com/akashmaji/literedis/internal/dispatch"
	"github.com/akashmaji/literedis/internal/logging"
	"github.com/akashmaji/literedis/internal/resp"
)

// Server listens on one TCP address and services each accepted
// connection independently, per the concurrency model: multiple
// parallel worker units, one per client, synchronized only through the
// store's coarse lock.
type Server struct {
	Ctx *dispatch.Context
	Log *logging.Logger

	listener net.Listener
	wg       sync.WaitGroup

	connsMu sync.Mutex
	conns   map[net.Conn]struct{}
}

func New(ctx *dispatch.Context) *Server {
	return &Server{
		Ctx:   ctx,
		Log:   logging.Default,
		conns: make(map[net.Conn]struct{}),
	}
}

// Serve listens on addr and blocks, accepting connections until the
// listener is closed (typically via Shutdown from a signal handler).
func (s *Server) Serve(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = ln
	s.Log.Info("literedis listening on %s", addr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				return nil
			}
			s.Log.Warn("accept error: %v", err)
			continue
		}
		s.addConn(conn)
		s.Ctx.Counters.ClientConnected()
		s.Ctx.Store.Mu.Lock()
		s.Ctx.Counters.ConnectionsTotal++
		s.Ctx.Store.Mu.Unlock()
		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

// Shutdown stops accepting new connections and closes every active one.
// Closing a socket does not wake a connection blocked in XREAD ... BLOCK:
// that connection returns only when its wait ends (a new stream entry or
// the block timeout), and Serve waits for it before returning.
func (s *Server) Shutdown() {
	if s.listener != nil {
		s.listener.Close()
	}
	s.connsMu.Lock()
	for c := range s.conns {
		c.Close()
	}
	s.connsMu.Unlock()
}

func (s *Server) addConn(c net.Conn) {
	s.connsMu.Lock()
	s.conns[c] = struct{}{}
	s.connsMu.Unlock()
}

func (s *Server) removeConn(c net.Conn) {
	s.connsMu.Lock()
	delete(s.conns, c)
	s.connsMu.Unlock()
}

func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		conn.Close()
		s.removeConn(conn)
		s.Ctx.Counters.ClientDisconnected()
	}()

	reader := bufio.NewReader(conn)
	writer := resp.NewWriter(conn)

	for {
		frame, err := resp.ReadCommand(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				// A malformed frame closes the connection; the client sees
				// nothing further to parse it against.
				writer.Write(resp.NewError("ERR Protocol error: " + err.Error()))
				writer.Flush()
			}
			return
		}

		s.Ctx.Store.Mu.Lock()
		reply := dispatch.Dispatch(s.Ctx, frame)
		s.Ctx.Store.Mu.Unlock()

		if err := writer.Write(reply); err != nil {
			return
		}
		if err := writer.Flush(); err != nil {
			return
		}
	}
}
