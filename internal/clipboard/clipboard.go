// Package clipboard exports text to a host clipboard.
//
// A write has exactly two outcomes: nil for success or an error matching
// ErrClipboard. Failures are reported once and never retried.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	atotto "github.com/atotto/clipboard"
)

var (
	ErrClipboard   = errors.New("clipboard write failed")
	ErrUnsupported = errors.New("no clipboard utility available on this host")
)

// Sink accepts text for the clipboard.
type Sink interface {
	WriteText(text string) error
}

// Error wraps the cause of a failed write.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", ErrClipboard, e.Err)
}

func (e *Error) Unwrap() []error { return []error{ErrClipboard, e.Err} }

// Copy writes text to sink in the background. The returned channel receives
// exactly one value and is then closed. Cancelling ctx stops waiting for a
// result; the underlying write is not interrupted.
func Copy(ctx context.Context, sink Sink, text string) <-chan error {
	out := make(chan error, 1)
	done := make(chan error, 1)

	go func() {
		done <- sink.WriteText(text)
	}()

	go func() {
		defer close(out)
		select {
		case err := <-done:
			if err != nil {
				out <- &Error{Err: err}
				return
			}
			out <- nil
		case <-ctx.Done():
			out <- &Error{Err: ctx.Err()}
		}
	}()

	return out
}

// CopyWait is Copy followed by a receive.
func CopyWait(ctx context.Context, sink Sink, text string) error {
	return <-Copy(ctx, sink, text)
}

// System writes to the operating system clipboard through pbcopy, clip.exe,
// xclip, xsel, wl-copy or termux-clipboard-set, whichever the host provides.
type System struct{}

func (System) WriteText(text string) error {
	if atotto.Unsupported {
		return ErrUnsupported
	}
	return atotto.WriteAll(text)
}

// Available reports whether the host exposes a clipboard utility.
func (System) Available() bool { return !atotto.Unsupported }

// Memory keeps the last written text in process.
type Memory struct {
	mu   sync.Mutex
	text string
	n    int
}

func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	m.n++
	return nil
}

// Text returns the last written text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Writes returns how many writes the sink accepted.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.n
}

// Failing rejects every write with Err.
type Failing struct {
	Err error
}

func (f Failing) WriteText(string) error {
	if f.Err == nil {
		return ErrUnsupported
	}
	return f.Err
}
