package terminal

import (
	"errors"
	"io"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/muesli/cancelreader"
	"github.com/rileyhilliard/nerdminer/internal/logger"
	"golang.org/x/term"
)

// Control bytes that arrive as data while the terminal is raw.
const (
	keyInterrupt = 0x03 // Ctrl+C
	keyEOT       = 0x04 // Ctrl+D
)

// keyBuffer bounds presses queued between polls.
const keyBuffer = 64

// KeyReader delivers single key presses without waiting for a newline.
// Reading happens on a background goroutine so PollKey never blocks longer
// than its timeout.
type KeyReader struct {
	fd       int
	state    *term.State
	cr       cancelreader.CancelReader
	keys     chan rune
	done     chan struct{}
	onSignal func()
	log      logger.Logger

	closeOnce sync.Once
}

// KeyReaderOption configures a KeyReader.
type KeyReaderOption func(*KeyReader)

// WithInterrupt registers fn to run when Ctrl+C or Ctrl+D is pressed. Raw
// mode turns those into plain bytes instead of signals.
func WithInterrupt(fn func()) KeyReaderOption {
	return func(k *KeyReader) {
		k.onSignal = fn
	}
}

// WithKeyLogger sets the logger for read errors.
func WithKeyLogger(l logger.Logger) KeyReaderOption {
	return func(k *KeyReader) {
		k.log = l
	}
}

// OpenKeyReader puts f into raw mode when it is a terminal and starts
// reading from it. When f is not a terminal, input is read as-is.
func OpenKeyReader(f *os.File, opts ...KeyReaderOption) (*KeyReader, error) {
	k := &KeyReader{
		fd:   int(f.Fd()),
		keys: make(chan rune, keyBuffer),
		done: make(chan struct{}),
		log:  logger.Noop(),
	}
	for _, opt := range opts {
		opt(k)
	}

	if term.IsTerminal(k.fd) {
		state, err := term.MakeRaw(k.fd)
		if err != nil {
			return nil, err
		}
		k.state = state
	}

	cr, err := cancelreader.NewReader(f)
	if err != nil {
		k.restore()
		return nil, err
	}
	k.cr = cr

	go k.readLoop(cr)
	return k, nil
}

// newKeyReader reads from r without touching terminal state.
func newKeyReader(r io.Reader, opts ...KeyReaderOption) (*KeyReader, error) {
	k := &KeyReader{
		fd:   -1,
		keys: make(chan rune, keyBuffer),
		done: make(chan struct{}),
		log:  logger.Noop(),
	}
	for _, opt := range opts {
		opt(k)
	}
	cr, err := cancelreader.NewReader(r)
	if err != nil {
		return nil, err
	}
	k.cr = cr
	go k.readLoop(cr)
	return k, nil
}

// Raw reports whether the reader switched the terminal into raw mode.
func (k *KeyReader) Raw() bool {
	return k.state != nil
}

// PollKey waits up to timeout for a key press. After input ends it reports
// no key once the timeout elapses.
func (k *KeyReader) PollKey(timeout time.Duration) (rune, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	keys := k.keys
	for {
		select {
		case r, ok := <-keys:
			if ok {
				return r, true
			}
			keys = nil
		case <-timer.C:
			return 0, false
		}
	}
}

// Close stops reading and restores the terminal.
func (k *KeyReader) Close() error {
	var err error
	k.closeOnce.Do(func() {
		k.cr.Cancel()
		<-k.done
		err = k.cr.Close()
		if rerr := k.restore(); rerr != nil && err == nil {
			err = rerr
		}
	})
	return err
}

func (k *KeyReader) restore() error {
	if k.state == nil {
		return nil
	}
	err := term.Restore(k.fd, k.state)
	k.state = nil
	return err
}

func (k *KeyReader) readLoop(r io.Reader) {
	defer close(k.done)
	defer close(k.keys)

	buf := make([]byte, 256)
	var pending []byte
	for {
		n, err := r.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			pending = k.dispatch(pending)
		}
		if err != nil {
			if !errors.Is(err, cancelreader.ErrCanceled) && !errors.Is(err, io.EOF) {
				k.log.Debug("key read stopped: %v", err)
			}
			return
		}
	}
}

// dispatch decodes complete runes from p and returns the undecoded tail.
func (k *KeyReader) dispatch(p []byte) []byte {
	for len(p) > 0 {
		if !utf8.FullRune(p) {
			return p
		}
		r, size := utf8.DecodeRune(p)
		p = p[size:]

		if r == keyInterrupt || r == keyEOT {
			if k.onSignal != nil {
				k.onSignal()
			}
			continue
		}

		select {
		case k.keys <- r:
		default:
			// Drop presses nobody is polling for.
		}
	}
	return nil
}

// IdleKeyReader never produces keys. It stands in when stdin cannot be read.
type IdleKeyReader struct{}

// PollKey sleeps for timeout and reports no key.
func (IdleKeyReader) PollKey(timeout time.Duration) (rune, bool) {
	time.Sleep(timeout)
	return 0, false
}

// Close is a no-op.
func (IdleKeyReader) Close() error { return nil }
