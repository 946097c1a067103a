package production

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/comalice/calcx"
	"github.com/comalice/calcx/internal/core"
)

// PublishedEvent bundles an event with the display it produced.
type PublishedEvent struct {
	Event    calcx.Event
	Metadata core.MachineMetadata
}

// ChannelPublisher forwards display updates to a Go channel.
// Non-blocking publish with drop on backpressure.
type ChannelPublisher struct {
	ch chan<- PublishedEvent
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- PublishedEvent) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

func (p *ChannelPublisher) Publish(ctx context.Context, event calcx.Event, metadata core.MachineMetadata) error {
	select {
	case p.ch <- PublishedEvent{Event: event, Metadata: metadata}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil // Non-blocking drop
	}
}

func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}

// WriterPublisher is the terminal display: it writes the secondary and
// primary lines to w after every event.
type WriterPublisher struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterPublisher creates a WriterPublisher writing to w.
func NewWriterPublisher(w io.Writer) *WriterPublisher {
	return &WriterPublisher{w: w}
}

func (p *WriterPublisher) Publish(ctx context.Context, event calcx.Event, metadata core.MachineMetadata) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := fmt.Fprintf(p.w, "%-12s %24s\n%37s\n", event, metadata.Secondary, metadata.Primary); err != nil {
		return fmt.Errorf("write display: %w", err)
	}
	return nil
}

func (p *WriterPublisher) Close() error {
	return nil
}
