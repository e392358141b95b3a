// Package discordipc is a client for Discord's local IPC socket, exposing a
// typed request/response and event-stream API over rich-presence activity,
// lobbies, relationships, voice settings, and overlay control.
//
// A [Client] discovers and opens the platform duplex stream (Unix domain
// socket or Windows named pipe), performs the versioned handshake, and
// transparently reconnects with exponential backoff. RPCs are correlated by
// nonce; unsolicited events are delivered through [Client.Events], a set of
// per-subsystem channels.
package discordipc

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"
)

// ///////////////////////////////////////////////
// Options
// ///////////////////////////////////////////////

// Option configures a [Client] at construction.
type Option func(*Client)

// WithLogger sets the logger the client reports connection lifecycle,
// protocol warnings, and dropped events through. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithSubscriptions selects which event classes to subscribe to on Ready.
// Defaults to no subscriptions.
func WithSubscriptions(subs Subscriptions) Option {
	return func(c *Client) { c.subs = subs }
}

// WithInstanceID pins connection discovery to a single IPC slot, mirroring
// the DISCORD_INSTANCE_ID environment variable (§4.2). An explicit option
// takes precedence over the environment variable.
func WithInstanceID(id string) Option {
	return func(c *Client) { c.instanceID = id }
}

// WithReconnectPolicy overrides the default 500ms-to-60s exponential backoff.
func WithReconnectPolicy(seed, max time.Duration) Option {
	return func(c *Client) { c.reconnectSeed, c.reconnectMax = seed, max }
}

// WithSendQueueCapacity overrides the default send queue bound of 100.
func WithSendQueueCapacity(n int) Option {
	return func(c *Client) { c.sendQueueCap = n }
}

// ///////////////////////////////////////////////
// Client
// ///////////////////////////////////////////////

// Client manages a connection to Discord's local IPC endpoint.
type Client struct {
	appID      string
	instanceID string
	pid        int
	subs       Subscriptions
	logger     *slog.Logger

	reconnectSeed time.Duration
	reconnectMax  time.Duration
	sendQueueCap  int

	pending *pendingMap
	queue   *sendQueue
	frames  chan ioMsg
	wheel   *Wheel

	nonceMu   sync.Mutex
	nextNonce uint64

	subscribeOnce *onceGate

	runOnce sync.Once
	closing chan struct{}
	done    chan struct{}

	terminalMu  sync.Mutex
	terminalErr error
}

// onceGate is a sync.Once that can be reset: the subscription engine must
// fire again on every reconnect's fresh READY, not just the first.
type onceGate struct {
	mu   sync.Mutex
	once sync.Once
}

func (g *onceGate) Do(f func()) {
	g.mu.Lock()
	o := &g.once
	g.mu.Unlock()
	o.Do(f)
}

func (g *onceGate) reset() {
	g.mu.Lock()
	g.once = sync.Once{}
	g.mu.Unlock()
}

// NewClient creates a Discord IPC client for the given application ID. Call
// [Client.Connect] to start the connection/reconnect loop.
func NewClient(appID string, opts ...Option) *Client {
	c := &Client{
		appID:         appID,
		pid:           os.Getpid(),
		logger:        slog.Default(),
		reconnectSeed: 500 * time.Millisecond,
		reconnectMax:  60 * time.Second,
		sendQueueCap:  100,
		pending:       newPendingMap(),
		frames:        make(chan ioMsg, 64),
		subscribeOnce: &onceGate{},
		closing:       make(chan struct{}),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.instanceID == "" {
		c.instanceID = os.Getenv("DISCORD_INSTANCE_ID")
	}
	c.queue = newSendQueue(c.sendQueueCap)
	c.wheel = newWheel(c.logger)
	return c
}

// Connect starts the connection/reconnect loop in the background and
// returns immediately; connection progress is observable through
// [Client.Events]'s User spoke.
func (c *Client) Connect() {
	c.runOnce.Do(func() {
		go c.run()
	})
}

// Close requests a clean shutdown: the send queue is closed, the current
// session (if any) is torn down, and no further RPC may be issued. It
// returns once the run loop has exited. Close does not close wheel
// channels: a subscriber's channel closes only when its own unsubscribe
// function is called.
func (c *Client) Close() error {
	close(c.closing)
	c.queue.shutdown()
	<-c.done
	return nil
}

// Wait blocks until the client's run loop has exited, either due to
// [Client.Close] or a terminal peer CLOSE frame. It returns the terminal
// error, if any (nil for a clean Close).
func (c *Client) Wait() error {
	<-c.done
	c.terminalMu.Lock()
	defer c.terminalMu.Unlock()
	return c.terminalErr
}

// Events returns the event wheel: per-subsystem channels for subscribing to
// inbound dispatch events and connection state.
func (c *Client) Events() *Wheel { return c.wheel }

func (c *Client) setTerminal(err error) {
	c.terminalMu.Lock()
	c.terminalErr = err
	c.terminalMu.Unlock()
}

// ///////////////////////////////////////////////
// Connection / reconnect loop (C2 + C3 orchestration)
// ///////////////////////////////////////////////

func (c *Client) run() {
	defer close(c.done)
	defer close(c.frames)
	go c.correlatorLoop()

	bo := newBackoff(c.reconnectSeed, c.reconnectMax)
	for {
		select {
		case <-c.closing:
			return
		default:
		}

		conn, err := connectToDiscord(c.instanceID)
		if err != nil {
			c.logger.Debug("connect failed", "error", err)
			if !c.sleepOrClosing(bo.next()) {
				return
			}
			continue
		}

		if err := c.handshake(conn); err != nil {
			c.logger.Warn("handshake failed", "error", err)
			conn.Close()
			if !c.sleepOrClosing(bo.next()) {
				return
			}
			continue
		}
		c.logger.Debug("connected to discord", "app_id", c.appID)
		bo.reset()
		c.subscribeOnce.reset()

		err = c.runSession(conn)
		if err == nil {
			return // clean Close()
		}

		var closeErr *CloseError
		if errors.As(err, &closeErr) {
			c.logger.Warn("connection closed by peer, not reconnecting", "message", closeErr.Message)
			c.setTerminal(closeErr)
			c.frames <- ioMsg{disconnectErr: closeErr}
			return
		}

		c.logger.Warn("disconnected, will retry", "error", err)
		c.frames <- ioMsg{disconnectErr: err}
		if !c.sleepOrClosing(bo.next()) {
			return
		}
	}
}

// sleepOrClosing sleeps for d, returning false immediately if Close() is
// called in the meantime.
func (c *Client) sleepOrClosing(d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-c.closing:
		return false
	}
}

// handshake sends the initial HANDSHAKE frame and validates the reply.
func (c *Client) handshake(conn net.Conn) error {
	payload, err := json.Marshal(map[string]any{"v": 1, "client_id": c.appID})
	if err != nil {
		return fmt.Errorf("marshaling handshake: %w", err)
	}
	frame, err := EncodeFrame(OpHandshake, payload)
	if err != nil {
		return fmt.Errorf("encoding handshake: %w", err)
	}
	if _, err := conn.Write(frame); err != nil {
		return fmt.Errorf("writing handshake: %w", err)
	}

	opcode, body, err := DecodeFrame(conn)
	if err != nil {
		return fmt.Errorf("reading handshake response: %w", err)
	}
	if opcode != OpFrame {
		return fmt.Errorf("unexpected handshake response opcode: %d", opcode)
	}

	var env rawEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("parsing handshake response: %w", err)
	}
	if env.Evt != nil && *env.Evt == EvtError {
		var data errorFrameData
		json.Unmarshal(env.Data, &data)
		return classifyAPIError(data.Code, data.Message)
	}

	// Discord's post-handshake reply is the one-and-only READY dispatch for
	// this connection. Hand it to the correlator (already running: run()
	// starts correlatorLoop before calling handshake) instead of discarding
	// it here, so the subscription engine fires and the user spoke
	// transitions to Connected before runSession starts the reader/writer.
	c.frames <- ioMsg{frameBody: body}
	return nil
}

// runSession owns one connected stream end to end: it starts the reader and
// writer goroutines (the I/O task of §5) and blocks until the session ends,
// either from a protocol/IO failure, a peer CLOSE, or a client-requested
// shutdown.
func (c *Client) runSession(conn net.Conn) error {
	sessionErr := make(chan error, 2)
	writerDone := make(chan struct{})

	go c.writerLoop(conn, writerDone, sessionErr)
	go c.readerLoop(conn, sessionErr)

	select {
	case err := <-sessionErr:
		close(writerDone)
		conn.Close()
		return err
	case <-c.closing:
		close(writerDone)
		conn.Close()
		<-sessionErr // drain the reader's resulting error (ignored: clean shutdown)
		return nil
	}
}

// writerLoop is the write half of the I/O task (§4.3 step 4-5): it pops
// frames off the send queue and writes them to the stream until the queue
// shuts down or the session ends.
func (c *Client) writerLoop(conn net.Conn, done <-chan struct{}, errCh chan<- error) {
	for {
		select {
		case <-done:
			return
		case <-c.queue.quit:
			return
		case frame, ok := <-c.queue.ch:
			if !ok {
				return
			}
			if _, err := conn.Write(frame); err != nil {
				select {
				case errCh <- fmt.Errorf("writing frame: %w", err):
				default:
				}
				return
			}
		}
	}
}

// readerLoop is the read half of the I/O task (§4.3 steps 3, 6): it decodes
// frames and dispatches by opcode. FRAME bodies are forwarded to the
// correlator; CLOSE is terminal; PING is answered with an immediate PONG;
// PONG is logged; a peer HANDSHAKE mid-session is corrupt.
func (c *Client) readerLoop(conn net.Conn, errCh chan<- error) {
	for {
		opcode, body, err := DecodeFrame(conn)
		if err != nil {
			select {
			case errCh <- err:
			default:
			}
			return
		}

		switch opcode {
		case OpFrame:
			select {
			case c.frames <- ioMsg{frameBody: body}:
			default:
				c.logger.Warn("dropping inbound frame: correlator queue full")
			}
		case OpClose:
			var data struct {
				Code    int32  `json:"code"`
				Message string `json:"message"`
			}
			json.Unmarshal(body, &data)
			select {
			case errCh <- &CloseError{Code: data.Code, Message: data.Message}:
			default:
			}
			return
		case OpPing:
			frame, err := EncodeFrame(OpPong, body)
			if err != nil {
				c.logger.Warn("encoding pong failed", "error", err)
				continue
			}
			if !c.queue.tryPush(frame) {
				c.logger.Warn("dropping pong: send queue full")
			}
		case OpPong:
			c.logger.Debug("pong received")
		case OpHandshake:
			select {
			case errCh <- ErrCorruptConnection:
			default:
			}
			return
		}
	}
}

// ///////////////////////////////////////////////
// RPC façade core (C8)
// ///////////////////////////////////////////////

// call sends an RPC and awaits its response, fulfilling the shared
// send_rpc contract of §4.8. Passing a nil out skips decoding the response
// data (for commands like SEND_ACTIVITY_JOIN_INVITE whose reply carries
// nothing the caller uses); the call still waits for that reply.
func (c *Client) call(cmd CommandKind, args any, out any) error {
	argsBytes, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("marshaling %s args: %w", cmd, err)
	}

	c.nonceMu.Lock()
	c.nextNonce++
	nonce := c.nextNonce
	c.nonceMu.Unlock()

	reply := make(chan rpcResult, 1)
	c.pending.insert(nonce, &pendingRPC{expected: cmd, reply: reply})

	env := outboundEnvelope{Cmd: cmd, Args: argsBytes, Nonce: fmt.Sprintf("%d", nonce)}
	body, err := json.Marshal(env)
	if err != nil {
		c.pending.remove(nonce)
		return fmt.Errorf("marshaling %s envelope: %w", cmd, err)
	}
	frame, err := EncodeFrame(OpFrame, body)
	if err != nil {
		c.pending.remove(nonce)
		return fmt.Errorf("encoding %s frame: %w", cmd, err)
	}

	if err := c.queue.push(frame); err != nil {
		c.pending.remove(nonce)
		return ErrNoConnection
	}

	select {
	case res := <-reply:
		if res.err != nil {
			return res.err
		}
		if out != nil && len(res.data) > 0 {
			if err := json.Unmarshal(res.data, out); err != nil {
				return fmt.Errorf("decoding %s response: %w", cmd, err)
			}
		}
		return nil
	case <-c.closing:
		return ErrChannelDisconnected
	}
}
