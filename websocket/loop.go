package websocket

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/swindon-rs/tk-http-sub000/iobuf"
)

// Dispatcher receives each inbound application frame. Ping/Pong
// frames are handled by Loop itself and never reach Dispatcher.
type Dispatcher interface {
	Frame(frame Frame) error
}

// Packet is an outbound application message submitted to Loop.Send.
type Packet struct {
	Opcode  Opcode // OpcodeText or OpcodeBinary
	Payload []byte
}

// ErrInactivityTimeout is returned by Run when no frame has been
// received for config.InactivityTimeout.
var ErrInactivityTimeout = errors.New("websocket: inactivity timeout")

// Loop drives one hijacked connection as a bidirectional WebSocket frame
// stream, answering Ping automatically, pinging idle peers, and closing
// on prolonged silence. It polls both the input stream and an outbound
// channel, using the same errgroup reader/writer driver idiom as
// server.Proto/client.Proto.
type Loop struct {
	stream     *iobuf.Stream
	config     Config
	dispatcher Dispatcher
	masked     bool // true: this side emits masked frames (client)
	outbound   chan Packet

	writeMu  sync.Mutex   // serializes Out writes across reader/writer/watchdog
	lastSeen atomic.Int64 // UnixNano of last received frame
}

// emit writes one frame to the connection, serialized against any other
// goroutine emitting a frame at the same time.
func (l *Loop) emit(opcode Opcode, payload []byte) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	if err := EmitFrame(l.stream.Out, opcode, payload, l.masked); err != nil {
		return err
	}
	return l.stream.Flush()
}

// emitClose writes an echoed Close frame, serialized the same way.
func (l *Loop) emitClose(code uint16) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	if err := EmitClose(l.stream.Out, l.masked, code, ""); err != nil {
		return err
	}
	return l.stream.Flush()
}

// NewLoop builds a Loop over a hijacked stream. masked selects which
// side of the connection this Loop drives: true for a client (emits
// masked frames, expects unmasked ones), false for a server (emits
// unmasked, expects masked)
func NewLoop(stream *iobuf.Stream, config Config, dispatcher Dispatcher, masked bool) *Loop {
	l := &Loop{
		stream:     stream,
		config:     config,
		dispatcher: dispatcher,
		masked:     masked,
		outbound:   make(chan Packet, 16),
	}
	l.lastSeen.Store(time.Now().UnixNano())
	return l
}

// Send queues an application packet for transmission. Blocks if the
// outbound buffer is full; callers needing backpressure should size
// their own producer accordingly.
func (l *Loop) Send(p Packet) {
	l.outbound <- p
}

// Run drives the loop until the peer closes, an error occurs, or the
// inactivity timeout fires. It always closes the underlying transport
// before returning.
func (l *Loop) Run() error {
	group := new(errgroup.Group)
	done := make(chan struct{})

	group.Go(func() error {
		defer close(done)
		return l.readLoop()
	})
	group.Go(func() error {
		return l.writeLoop(done)
	})
	group.Go(func() error {
		return l.watchdog(done)
	})

	err := group.Wait()
	l.stream.Conn.Close()
	return err
}

func (l *Loop) receiveMasked() bool { return !l.masked }

func (l *Loop) readLoop() error {
	for {
		buf := l.stream.In.Bytes()
		frame, consumed, ok, err := ParseFrame(buf, l.receiveMasked(), l.config.MaxPacketSize)
		if err != nil {
			return err
		}
		if !ok {
			if _, err := l.stream.FillOnce(); err != nil {
				return err
			}
			continue
		}
		l.stream.In.Consume(consumed)
		l.lastSeen.Store(time.Now().UnixNano())

		switch frame.Opcode {
		case OpcodePing:
			if err := l.emit(OpcodePong, frame.Payload); err != nil {
				return err
			}
		case OpcodePong:
			// liveness only; no dispatcher callback.
		case OpcodeClose:
			if err := l.emitClose(frame.CloseCode); err != nil {
				return err
			}
			return nil
		default:
			if err := l.dispatcher.Frame(frame); err != nil {
				return err
			}
		}
	}
}

func (l *Loop) writeLoop(done <-chan struct{}) error {
	for {
		// Drain any already-queued packets before honoring done, so a
		// Send that raced with the peer's Close is not dropped.
		select {
		case p := <-l.outbound:
			if err := l.writePacket(p); err != nil {
				return err
			}
			continue
		default:
		}

		select {
		case <-done:
			return nil
		case p := <-l.outbound:
			if err := l.writePacket(p); err != nil {
				return err
			}
		}
	}
}

func (l *Loop) writePacket(p Packet) error {
	return l.emit(p.Opcode, p.Payload)
}

func (l *Loop) watchdog(done <-chan struct{}) error {
	interval := l.config.PingInterval
	if interval <= 0 {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return nil
		case <-ticker.C:
			silence := time.Since(time.Unix(0, l.lastSeen.Load()))
			if silence >= l.config.InactivityTimeout {
				return ErrInactivityTimeout
			}
			if silence >= l.config.PingInterval {
				if err := l.emit(OpcodePing, nil); err != nil {
					return err
				}
			}
		}
	}
}
