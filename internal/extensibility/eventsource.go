// Package extensibility provides input sources that feed button events into
// a core.Machine.
package extensibility

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"
	"unicode"

	"github.com/comalice/calcx"
)

// ChannelEventSource is an EventSource implementation backed by a Go channel.
// Provides a simple way to feed external events into Machine.Run.
type ChannelEventSource struct {
	ch chan calcx.Event
}

// Events returns the receive-only channel for events.
func (s *ChannelEventSource) Events() <-chan calcx.Event {
	return s.ch
}

// NewChannelEventSource creates a new ChannelEventSource with the given channel.
func NewChannelEventSource(ch chan calcx.Event) *ChannelEventSource {
	return &ChannelEventSource{ch: ch}
}

// ReaderEventSource reads key presses from an io.Reader, one rune per key.
// Whitespace is skipped. Keys without a button are passed to the error
// callback and skipped. The channel closes at EOF, on a read error or when
// the context is cancelled.
type ReaderEventSource struct {
	ch    chan calcx.Event
	onErr func(error)

	mu  sync.Mutex
	err error
}

// NewReaderEventSource starts reading r. onErr may be nil.
func NewReaderEventSource(ctx context.Context, r io.Reader, onErr func(error)) *ReaderEventSource {
	s := &ReaderEventSource{
		ch:    make(chan calcx.Event),
		onErr: onErr,
	}
	go s.run(ctx, bufio.NewReader(r))
	return s
}

// Events returns the event channel.
func (s *ReaderEventSource) Events() <-chan calcx.Event {
	return s.ch
}

// Err returns the read error that stopped the source, if any. It is only
// meaningful after the event channel has been closed.
func (s *ReaderEventSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *ReaderEventSource) run(ctx context.Context, r *bufio.Reader) {
	defer close(s.ch)
	for {
		key, _, err := r.ReadRune()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.setErr(err)
			}
			return
		}
		if unicode.IsSpace(key) {
			continue
		}
		event, err := calcx.ParseKey(key)
		if err != nil {
			if s.onErr != nil {
				s.onErr(err)
			}
			continue
		}
		select {
		case s.ch <- event:
		case <-ctx.Done():
			s.setErr(ctx.Err())
			return
		}
	}
}

func (s *ReaderEventSource) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}
