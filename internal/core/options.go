// Package core provides the calculator runtime.
// Options for configuring Machine instances.
package core

import (
	"log/slog"

	"github.com/comalice/calcx"
)

// WithLogger configures the Machine's logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithPersister configures the Machine with a custom Persister.
func WithPersister(p Persister) Option {
	return func(m *Machine) {
		m.persister = p
	}
}

// WithPublisher configures the Machine with a custom EventPublisher.
func WithPublisher(pb EventPublisher) Option {
	return func(m *Machine) {
		m.publisher = pb
	}
}

// WithVisualizer configures the Machine with a custom Visualizer.
func WithVisualizer(v Visualizer) Option {
	return func(m *Machine) {
		m.visualizer = v
	}
}

// WithState starts the Machine from s instead of the initial state.
func WithState(s calcx.State) Option {
	return func(m *Machine) {
		m.state = s
	}
}
