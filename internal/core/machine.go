// Package core provides the calculator runtime: a Machine owns one
// calcx.State, feeds it button events one at a time and hands the results
// to the pluggable collaborators (persister, display publisher, visualizer).
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/comalice/calcx"
)

// Pluggable component interfaces. Implementations live in internal/production
// and internal/extensibility.

type EventSource interface {
	Events() <-chan calcx.Event
}

type Persister interface {
	Save(ctx context.Context, snapshot MachineSnapshot) error
	Load(ctx context.Context, machineID string) (MachineSnapshot, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event calcx.Event, metadata MachineMetadata) error
	Close() error
}

type Visualizer interface {
	ExportDOT(edges []calcx.Edge, current calcx.Phase) string
	ExportJSON(edges []calcx.Edge) ([]byte, error)
}

// MachineSnapshot is the serializable record of one calculator.
type MachineSnapshot struct {
	MachineID string         `json:"machineID" yaml:"machineID"`
	State     calcx.Snapshot `json:"state" yaml:"state"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
}

// MachineMetadata describes the display after one event.
type MachineMetadata struct {
	MachineID  string    `json:"machineID" yaml:"machineID"`
	Transition string    `json:"transition" yaml:"transition"`
	Primary    string    `json:"primary" yaml:"primary"`
	Secondary  string    `json:"secondary" yaml:"secondary"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
}

// ErrCorruptSnapshot marks a saved record that exists but cannot be decoded.
// Persisters wrap decode failures with it.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// ErrNoPersister is returned by Save and Load on a machine built without WithPersister.
var ErrNoPersister = errors.New("no persister configured")

// Option applies configuration to Machine via functional options pattern.
type Option func(*Machine)

// Machine is the runtime owner of a calculator state.
// Events are applied one at a time; Render and State may be called
// concurrently with Send from a render loop.
type Machine struct {
	id    string
	mu    sync.RWMutex
	state calcx.State

	logger     *slog.Logger
	persister  Persister
	publisher  EventPublisher
	visualizer Visualizer
}

// NewMachine creates a machine in the initial state.
func NewMachine(id string, opts ...Option) *Machine {
	m := &Machine{
		id:     id,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ID returns the machine ID used as the persistence key.
func (m *Machine) ID() string {
	return m.id
}

// Send applies one button event.
//
// An invariant violation is not returned: it is logged at error level and
// becomes part of the state, shown on the display until Clear. Only events
// that no button can produce are rejected.
func (m *Machine) Send(ctx context.Context, event calcx.Event) error {
	m.mu.Lock()
	prev := m.state
	next, err := calcx.Apply(prev, event)
	if err != nil {
		var invErr *calcx.InvariantError
		if !errors.As(err, &invErr) {
			m.mu.Unlock()
			return fmt.Errorf("send %s: %w", event, err)
		}
		m.logger.Error("calculator invariant violated",
			slog.String("machine", m.id),
			slog.String("event", event.String()),
			slog.String("phase", prev.Phase().String()),
			slog.String("state", invErr.Snapshot.String()),
			slog.Any("error", err),
		)
	}
	m.state = next
	m.mu.Unlock()

	primary, secondary := calcx.Render(next)
	transition := fmt.Sprintf("%s -> %s", prev.Phase(), next.Phase())
	m.logger.Debug("event applied",
		slog.String("machine", m.id),
		slog.String("event", event.String()),
		slog.String("transition", transition),
		slog.String("primary", primary),
	)

	if m.publisher != nil {
		md := MachineMetadata{
			MachineID:  m.id,
			Transition: transition,
			Primary:    primary,
			Secondary:  secondary,
			Timestamp:  time.Now(),
		}
		if err := m.publisher.Publish(ctx, event, md); err != nil {
			m.logger.Warn("publish display update", slog.String("machine", m.id), slog.Any("error", err))
		}
	}
	return nil
}

// Run feeds events from src into the machine until src closes or ctx is done.
// Rejected events are logged and skipped.
func (m *Machine) Run(ctx context.Context, src EventSource) error {
	events := src.Events()
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := m.Send(ctx, event); err != nil {
				m.logger.Warn("event rejected", slog.String("machine", m.id), slog.Any("error", err))
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Render returns the current display lines.
func (m *Machine) Render() (primary, secondary string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return calcx.Render(m.state)
}

// State returns a copy of the current state.
func (m *Machine) State() calcx.State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Phase returns the current phase.
func (m *Machine) Phase() calcx.Phase {
	return m.State().Phase()
}

// Restore replaces the current state with one rebuilt from snap.
func (m *Machine) Restore(snap calcx.Snapshot) {
	s := calcx.FromSnapshot(snap)
	if s.Phase() == calcx.PhaseInconsistent {
		m.logger.Warn("restored inconsistent calculator state",
			slog.String("machine", m.id),
			slog.String("state", snap.String()),
		)
	}
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// Save persists the current state.
func (m *Machine) Save(ctx context.Context) error {
	if m.persister == nil {
		return ErrNoPersister
	}
	snapshot := MachineSnapshot{
		MachineID: m.id,
		State:     m.State().Snapshot(),
		Timestamp: time.Now(),
	}
	if err := m.persister.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("save machine %q: %w", m.id, err)
	}
	return nil
}

// Load restores the last saved state. A machine that was never saved, or
// whose record cannot be decoded, keeps its current state.
func (m *Machine) Load(ctx context.Context) error {
	if m.persister == nil {
		return ErrNoPersister
	}
	snapshot, err := m.persister.Load(ctx, m.id)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			m.logger.Debug("no saved state", slog.String("machine", m.id))
			return nil
		}
		if errors.Is(err, ErrCorruptSnapshot) {
			m.logger.Warn("saved state unreadable, starting fresh",
				slog.String("machine", m.id),
				slog.Any("error", err),
			)
			return nil
		}
		return fmt.Errorf("load machine %q: %w", m.id, err)
	}
	if snapshot.MachineID != m.id {
		return fmt.Errorf("machine ID mismatch: have %q, snapshot %q", m.id, snapshot.MachineID)
	}
	m.Restore(snapshot.State)
	return nil
}

// Visualize returns the Graphviz DOT rendering of the transition chart with
// the current phase highlighted.
func (m *Machine) Visualize() string {
	if m.visualizer == nil {
		return "ERROR: No visualizer configured. Use WithVisualizer(&production.DefaultVisualizer{})"
	}
	return m.visualizer.ExportDOT(calcx.Chart(), m.State().Phase())
}

// Close releases the publisher.
func (m *Machine) Close() error {
	if m.publisher == nil {
		return nil
	}
	return m.publisher.Close()
}
