package discordipc

import (
	"encoding/json"
	"strconv"
	"sync"
)

// outboundEnvelope is the JSON body of an outbound FRAME: an RPC request or
// a SUBSCRIBE/UNSUBSCRIBE registration.
type outboundEnvelope struct {
	Cmd   CommandKind     `json:"cmd"`
	Args  json.RawMessage `json:"args,omitempty"`
	Nonce string          `json:"nonce"`
	Evt   EventKind       `json:"evt,omitempty"`
}

// pendingRPC is the NotifyItem of §3: a parked caller awaiting the response
// to the RPC it sent under this nonce.
type pendingRPC struct {
	expected CommandKind
	reply    chan rpcResult
}

type rpcResult struct {
	data json.RawMessage
	err  error
}

// ioMsg is the unified message the reader goroutine hands to the
// correlator: either an inbound FRAME body, or the synthesized
// Disconnected notification for a session that just ended.
type ioMsg struct {
	frameBody     []byte
	disconnectErr error
}

// pendingMap is the shared, mutex-guarded map of in-flight RPCs (§5). The
// façade holds push rights; the correlator holds sole pop rights, matching
// the ownership split in §3: "the correlator owns the pending map write
// access".
type pendingMap struct {
	mu    sync.Mutex
	items map[uint64]*pendingRPC
}

func newPendingMap() *pendingMap {
	return &pendingMap{items: make(map[uint64]*pendingRPC)}
}

func (p *pendingMap) insert(nonce uint64, item *pendingRPC) {
	p.mu.Lock()
	p.items[nonce] = item
	p.mu.Unlock()
}

func (p *pendingMap) pop(nonce uint64) (*pendingRPC, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	item, ok := p.items[nonce]
	if ok {
		delete(p.items, nonce)
	}
	return item, ok
}

func (p *pendingMap) remove(nonce uint64) {
	p.mu.Lock()
	delete(p.items, nonce)
	p.mu.Unlock()
}

// correlatorLoop is the sole consumer of the frames channel for the
// client's lifetime; it classifies every inbound message and either
// fulfils a pending RPC, routes an event to the wheel, or logs and
// discards an orphan (§4.5). It runs on a dedicated goroutine so a slow
// wheel subscriber never stalls the I/O loop directly — subscribers that
// block are isolated by the bounded per-spoke rings in wheel.go.
func (c *Client) correlatorLoop() {
	for msg := range c.frames {
		if msg.disconnectErr != nil {
			c.wheel.disconnected(msg.disconnectErr)
			continue
		}
		c.processFrame(msg.frameBody)
	}
}

func (c *Client) processFrame(body []byte) {
	var env rawEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.logger.Warn("correlator: malformed frame json", "error", err)
		return
	}

	switch {
	case env.Evt != nil && *env.Evt == EvtError:
		var data errorFrameData
		if len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, &data); err != nil {
				c.logger.Warn("correlator: malformed error payload", "error", err)
				return
			}
		}
		apiErr := classifyAPIError(data.Code, data.Message)
		if env.Nonce == nil {
			c.logger.Warn("correlator: orphan api error", "code", data.Code, "message", data.Message)
			return
		}
		nonce, err := strconv.ParseUint(*env.Nonce, 10, 64)
		if err != nil {
			c.logger.Warn("correlator: unparsable nonce on error frame", "nonce", *env.Nonce)
			return
		}
		if item, ok := c.pending.pop(nonce); ok {
			item.reply <- rpcResult{err: apiErr}
		} else {
			c.logger.Warn("correlator: api error for unknown nonce", "nonce", nonce)
		}

	case env.Evt != nil:
		if *env.Evt == EvtReady {
			c.subscribeOnce.Do(c.runSubscriptions)
		}
		c.wheel.dispatch(*env.Evt, env.Data)

	case env.Cmd == CmdSubscribe:
		c.logger.Debug("correlator: subscribe ack", "nonce", derefStr(env.Nonce))

	default:
		if env.Nonce == nil {
			c.logger.Warn("correlator: rpc response missing nonce", "cmd", env.Cmd)
			return
		}
		nonce, err := strconv.ParseUint(*env.Nonce, 10, 64)
		if err != nil {
			c.logger.Warn("correlator: unparsable nonce on response", "nonce", *env.Nonce)
			return
		}
		item, ok := c.pending.pop(nonce)
		if !ok {
			c.logger.Warn("correlator: response for unknown nonce", "nonce", nonce, "cmd", env.Cmd)
			return
		}
		if env.Cmd != item.expected {
			item.reply <- rpcResult{err: &MismatchedResponseError{Expected: item.expected, Actual: env.Cmd, Nonce: nonce}}
			return
		}
		item.reply <- rpcResult{data: env.Data}
	}
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
