// Package input turns raw terminal bytes into per-frame control state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// Input represents the current frame's input state.
// Left, Right, Thrust, Brake and Fire are held states; Confirm, Quit and
// Debug are only set on the frame the key arrived.
type Input struct {
	Left   bool
	Right  bool
	Thrust bool
	Brake  bool
	Fire   bool

	Confirm bool
	Quit    bool
	Debug   bool
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left   time.Time
	right  time.Time
	thrust time.Time
	brake  time.Time
	fire   time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The stream reports Quit once r is exhausted.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
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

func newStream() *Stream {
	return &Stream{
		ch: make(chan byte, 128),
	}
}

// Reset forgets held keys and discards bytes that have not been read yet.
// Used when switching screens so a held key does not leak into the next one.
func (s *Stream) Reset() {
	s.state = keyState{}
	for {
		select {
		case _, ok := <-s.ch:
			if !ok {
				s.closed = true
				return
			}
		default:
			return
		}
	}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
// Uses key state persistence to allow detecting simultaneous key combinations.
func ReadInput(s *Stream) Input {
	return s.read(time.Now())
}

func (s *Stream) read(now time.Time) Input {
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	var in Input
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.thrust = now
			case 'B':
				s.state.brake = now
			case 'C':
				s.state.right = now
			case 'D':
				s.state.left = now
			}
			i += 2
			continue
		}

		applyByte(&s.state, &in, b, now)
	}

	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	in.Thrust = now.Sub(s.state.thrust) < keyHoldDuration
	in.Brake = now.Sub(s.state.brake) < keyHoldDuration
	in.Fire = now.Sub(s.state.fire) < keyHoldDuration
	if s.closed {
		in.Quit = true
	}
	return in
}

// applyByte updates held key timestamps and sets the pressed-this-frame flags.
func applyByte(state *keyState, in *Input, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'i', 'I':
		state.thrust = now
	case 's', 'S', 'k', 'K':
		state.brake = now
	case ' ':
		state.fire = now
		in.Confirm = true
	case '\n', '\r':
		in.Confirm = true
	case 'f', 'F':
		in.Debug = true
	}
}
