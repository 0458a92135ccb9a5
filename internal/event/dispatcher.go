package event

import (
	"backoffice/internal/infrastructure/monitoring"
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Event is any payload delivered on the bus. Listeners may mutate it.
type Event any

// Stoppable events let a listener prevent delivery to the listeners after it.
type Stoppable interface {
	IsPropagationStopped() bool
}

// Base can be embedded in event payloads to make them Stoppable.
type Base struct {
	stopped bool
}

func (b *Base) StopPropagation() {
	b.stopped = true
}

func (b *Base) IsPropagationStopped() bool {
	return b.stopped
}

type Listener func(ctx context.Context, name string, e Event) error

type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[string][]Listener
	logger    *slog.Logger
}

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Dispatcher{
		listeners: make(map[string][]Listener),
		logger:    logger.With("component", "EventDispatcher"),
	}
}

func (d *Dispatcher) Subscribe(name string, l Listener) {
	if l == nil {
		panic("listener cannot be nil")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[name] = append(d.listeners[name], l)
	d.logger.Debug("Listener subscribed", slog.String("event", name), slog.Int("listeners", len(d.listeners[name])))
}

func (d *Dispatcher) HasListeners(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners[name]) > 0
}

// Dispatch delivers e to the listeners of name in subscription order and
// returns the first listener error.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, e Event) error {
	d.mu.RLock()
	listeners := append([]Listener(nil), d.listeners[name]...)
	d.mu.RUnlock()

	logCtx := d.logger.With(slog.String("event", name))
	if len(listeners) == 0 {
		logCtx.WarnContext(ctx, "Dispatching event without listeners")
	}

	for i, l := range listeners {
		if err := l(ctx, name, e); err != nil {
			logCtx.ErrorContext(ctx, "Event listener failed", slog.Int("listener", i), slog.Any("error", err))
			monitoring.RecordDispatch(name, monitoring.OutcomeError)
			return fmt.Errorf("dispatch %s: %w", name, err)
		}
		if s, ok := e.(Stoppable); ok && s.IsPropagationStopped() {
			logCtx.DebugContext(ctx, "Event propagation stopped", slog.Int("listener", i))
			monitoring.RecordDispatch(name, monitoring.OutcomeStopped)
			return nil
		}
	}

	logCtx.DebugContext(ctx, "Event dispatched", slog.Int("listeners", len(listeners)))
	monitoring.RecordDispatch(name, monitoring.OutcomeSuccess)
	return nil
}
