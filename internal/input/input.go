// Package input reads raw terminal bytes and turns them into control state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report key repeats, so a key counts as down for a short window.
const keyHoldDuration = 30 * time.Millisecond

// Input represents the current frame's key state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	UpLeft  bool
	UpRight bool
	Up      bool
	Space   bool
	Enter   bool
	Debug   bool
	Closed  bool // The reader hit EOF (disconnected client or closed stdin)
	Pressed []byte
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit    time.Time
	left    time.Time
	right   time.Time
	upLeft  time.Time
	upRight time.Time
	up      time.Time
	space   time.Time
	enter   time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
	now    func() time.Time
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:  make(chan byte, 128),
		now: time.Now,
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
func ReadInput(s *Stream) Input {
	now := s.now()
	buf := s.drain()

	var debug bool
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.up = now
				i += 2
				continue
			case 'C':
				s.state.right = now
				i += 2
				continue
			case 'D':
				s.state.left = now
				i += 2
				continue
			}
		}

		if b == 'b' || b == 'B' {
			debug = true
			continue
		}
		applyByteToState(&s.state, b, now)
	}

	held := func(t time.Time) bool {
		return now.Sub(t) < keyHoldDuration
	}

	return Input{
		Quit:    held(s.state.quit),
		Left:    held(s.state.left),
		Right:   held(s.state.right),
		UpLeft:  held(s.state.upLeft),
		UpRight: held(s.state.upRight),
		Up:      held(s.state.up),
		Space:   held(s.state.space),
		Enter:   held(s.state.enter),
		Debug:   debug,
		Closed:  s.closed,
		Pressed: buf,
	}
}

// ResetKeyInput forgets all held keys, so a key used to leave a screen
// does not leak into the next one.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// drain collects every byte currently buffered in the channel.
func (s *Stream) drain() []byte {
	var buf []byte
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				return buf
			}
			buf = append(buf, b)
		default:
			return buf
		}
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'i', 'I':
		state.up = now
	case 'u', 'U':
		state.upLeft = now
	case 'o', 'O':
		state.upRight = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	}
}
