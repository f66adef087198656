package bramble

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

const esc = 0x1b

// KeyParser splits a raw terminal byte stream into key tokens. Single bytes
// are upper-cased. Escape sequences of the form ESC '[' X and ESC '[' X '~'
// are kept whole; a sequence cut off at the end of a chunk is held until the
// next Feed. A lone ESC, including one that ends a chunk, is its own token.
type KeyParser struct {
	pending []byte
}

// Feed parses data and appends the complete tokens to dst.
func (p *KeyParser) Feed(dst []string, data []byte) []string {
	buf := data
	if len(p.pending) > 0 {
		buf = append(p.pending, data...)
		p.pending = nil
	}
	for i := 0; i < len(buf); {
		c := buf[i]
		if c != esc || i+1 >= len(buf) || buf[i+1] != '[' {
			dst = append(dst, strings.ToUpper(string(rune(c))))
			i++
			continue
		}
		// ESC '[' seen; need at least the final byte.
		if i+2 >= len(buf) {
			p.pending = append(p.pending[:0], buf[i:]...)
			break
		}
		n := 3
		if isDigit(buf[i+2]) {
			if i+3 >= len(buf) {
				p.pending = append(p.pending[:0], buf[i:]...)
				break
			}
			if buf[i+3] == '~' {
				n = 4
			}
		}
		dst = append(dst, string(buf[i:i+n]))
		i += n
	}
	return dst
}

// Pending reports whether a partial escape sequence is buffered.
func (p *KeyParser) Pending() bool { return len(p.pending) > 0 }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// SerialKeys is a KeySource reading from a byte stream, typically stdin. A
// background goroutine performs the blocking reads and hands chunks over a
// buffered channel that ReadAvailable drains without blocking.
type SerialKeys struct {
	chunks chan []byte

	mu     sync.Mutex
	err    error
	fd     int
	state  *term.State
	closed bool
}

// NewSerialKeys starts reading from r.
func NewSerialKeys(r io.Reader) *SerialKeys {
	k := &SerialKeys{chunks: make(chan []byte, 64), fd: -1}
	go k.readLoop(r)
	return k
}

// OpenStdinKeys switches the controlling terminal to raw mode, so keys
// arrive without line buffering or echo, and reads keys from stdin. Close
// restores the terminal.
func OpenStdinKeys() (*SerialKeys, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("bramble: stdin is not a terminal")
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("bramble: raw terminal: %w", err)
	}
	k := NewSerialKeys(os.Stdin)
	k.fd, k.state = fd, state
	return k, nil
}

func (k *SerialKeys) readLoop(r io.Reader) {
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case k.chunks <- chunk:
			default:
				log.Printf("bramble: key buffer full, dropped %d bytes", n)
			}
		}
		if err != nil {
			if err != io.EOF {
				k.mu.Lock()
				k.err = err
				k.mu.Unlock()
			}
			return
		}
	}
}

// ReadAvailable returns every byte received since the last call.
func (k *SerialKeys) ReadAvailable() []byte {
	var out []byte
	for {
		select {
		case chunk := <-k.chunks:
			out = append(out, chunk...)
		default:
			return out
		}
	}
}

// Err returns the read error that stopped the stream, if any.
func (k *SerialKeys) Err() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.err
}

// Close restores the terminal if it was put in raw mode. The reader
// goroutine exits at the next read error or end of stream.
func (k *SerialKeys) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return nil
	}
	k.closed = true
	if k.state != nil {
		return term.Restore(k.fd, k.state)
	}
	return nil
}
