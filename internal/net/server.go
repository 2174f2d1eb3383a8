// Package net is the TCP front door: it accepts connections, parses wire
// frames, translates them into engine.Command values, and writes back a
// serialized engine.Response. It shares no mutable state with the engine
// goroutine other than the command channel itself, per spec.md §5's
// concurrency model.
package net

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"fenrir/internal/engine"
	"fenrir/internal/metrics"
	"fenrir/internal/workerpool"
	"fenrir/internal/wire"
)

const (
	maxFrameSize       = 4 * 1024
	defaultWorkerCount = 10
	defaultConnTimeout = 5 * time.Second
)

var ErrImproperConversion = errors.New("net: improper type conversion")

// Server accepts TCP connections, each carrying a sequence of wire frames,
// and forwards parsed commands to the engine's command channel.
type Server struct {
	address string
	port    int
	engine  chan<- engine.Command
	pool    *workerpool.Pool

	cancel context.CancelFunc

	sessionsMu sync.Mutex
	sessions   map[string]net.Conn
}

// New constructs a server bound to address:port, forwarding commands onto
// commands.
func New(address string, port int, commands chan<- engine.Command) *Server {
	return &Server{
		address:  address,
		port:     port,
		engine:   commands,
		pool:     workerpool.New(defaultWorkerCount),
		sessions: make(map[string]net.Conn),
	}
}

// Shutdown cancels the server's context, unwinding the accept loop and
// worker pool.
func (s *Server) Shutdown() {
	log.Info().Msg("server shutting down")
	if s.cancel != nil {
		s.cancel()
	}
}

// Run accepts connections until ctx is cancelled or a fatal error occurs in
// the worker pool, matching the teacher's tomb-supervised accept loop.
func (s *Server) Run(ctx context.Context) error {
	defer s.Shutdown()

	ctx, s.cancel = context.WithCancel(ctx)
	t, ctx := tomb.WithContext(ctx)

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", fmt.Sprintf("%s:%d", s.address, s.port))
	if err != nil {
		log.Error().Err(err).Msg("unable to start listener")
		return err
	}
	// Closing the listener once ctx is done unblocks a pending Accept, so the
	// loop below observes cancellation without waiting for another client.
	go func() {
		<-ctx.Done()
		if err := listener.Close(); err != nil {
			log.Error().Err(err).Msg("unable to close listener")
		}
	}()

	t.Go(func() error {
		s.pool.Setup(t, s.handleConnection)
		return nil
	})

	log.Info().Str("address", listener.Addr().String()).Msg("server running")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return nil
				default:
				}
				log.Error().Err(err).Msg("error accepting client")
				continue
			}
			log.Info().Str("address", conn.RemoteAddr().String()).Msg("client connected")
			s.addSession(conn)
			s.pool.AddTask(conn)
		}
	}
}

func (s *Server) addSession(conn net.Conn) {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	s.sessions[conn.RemoteAddr().String()] = conn
}

func (s *Server) deleteSession(addr string) {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	delete(s.sessions, addr)
}

// handleConnection reads exactly one frame off conn, dispatches it, writes
// the reply, and resubmits conn for its next frame — the teacher's
// one-task-per-read-then-requeue pattern, adapted onto the long-lived
// worker pool in internal/workerpool instead of one-shot respawned workers.
func (s *Server) handleConnection(t *tomb.Tomb, task any) error {
	conn, ok := task.(net.Conn)
	if !ok {
		return ErrImproperConversion
	}

	addr := conn.RemoteAddr().String()
	if err := conn.SetDeadline(time.Now().Add(defaultConnTimeout)); err != nil {
		log.Error().Err(err).Str("address", addr).Msg("failed setting deadline")
		conn.Close()
		s.deleteSession(addr)
		return nil
	}

	buf := make([]byte, maxFrameSize)
	n, err := conn.Read(buf)
	if err != nil {
		log.Info().Err(err).Str("address", addr).Msg("connection closed")
		conn.Close()
		s.deleteSession(addr)
		return nil
	}

	msg, err := wire.Parse(buf[:n])
	if err != nil {
		log.Error().Err(err).Str("address", addr).Msg("error parsing frame")
		conn.Close()
		s.deleteSession(addr)
		return nil
	}

	resp := s.dispatch(msg)
	if resp != nil {
		if _, err := conn.Write(resp); err != nil {
			log.Error().Err(err).Str("address", addr).Msg("error writing reply")
			conn.Close()
			s.deleteSession(addr)
			return nil
		}
	}

	s.pool.AddTask(conn)
	return nil
}

// dispatch turns one parsed wire message into an engine.Command, waits on
// its reply channel, and serializes the response back to wire bytes.
func (s *Server) dispatch(msg wire.Message) []byte {
	reply := make(chan engine.Response, 1)

	switch m := msg.(type) {
	case wire.HeartbeatMessage:
		return nil
	case wire.NewLimitOrderMessage:
		price, err := wire.ParsePrice(m.Price)
		if err != nil {
			return encodeError(err)
		}
		qty, err := wire.ParseQuantity(m.Qty)
		if err != nil {
			return encodeError(err)
		}
		s.engine <- engine.PlaceLimit{UserID: m.UserID, Side: m.Side, Price: price, Qty: qty, Reply: reply}
		metrics.OrdersPlaced.Inc()
	case wire.NewMarketOrderMessage:
		qty, err := wire.ParseQuantity(m.Qty)
		if err != nil {
			return encodeError(err)
		}
		s.engine <- engine.PlaceMarket{UserID: m.UserID, Side: m.Side, Qty: qty, Reply: reply}
		metrics.OrdersPlaced.Inc()
	case wire.CancelOrderMessage:
		s.engine <- engine.Cancel{UserID: m.UserID, OrderID: m.OrderID, Reply: reply}
		metrics.OrdersCancelled.Inc()
	case wire.GetDepthMessage:
		s.engine <- engine.GetDepth{N: int(m.N), Reply: reply}
	case wire.GetBalanceMessage:
		s.engine <- engine.GetBalance{UserID: m.UserID, Reply: reply}
	case wire.AddFundsMessage:
		amount, err := wire.ParseAmount(m.Amount, m.Currency)
		if err != nil {
			return encodeError(err)
		}
		s.engine <- engine.AddFunds{UserID: m.UserID, Currency: m.Currency, Amount: amount, Reply: reply}
	case wire.LogBookMessage:
		s.engine <- engine.LogBook{Reply: reply}
	default:
		return encodeError(wire.ErrInvalidMessageType)
	}

	resp := <-reply
	return encodeResponse(resp)
}
