package event

import (
	"context"
	"fmt"
	"log/slog"
)

// Dispatcher fans lifecycle events out to registered handler modules.
// Delivery order for one event is registration order. A handler failure
// (error or panic) is logged and never reaches the code that fired the
// event; the state change that triggered it is already committed.
type Dispatcher struct {
	logger   *slog.Logger
	handlers []Handler
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{logger: logger}
}

// Register adds a handler module to the end of the delivery order.
func (d *Dispatcher) Register(h Handler) {
	d.handlers = append(d.handlers, h)
	d.logger.Info("handler module registered", "module", h.Name())
}

// Dispatch delivers evt to every registered handler in registration order.
// Each handler runs isolated: its result is logged per handler and a
// failure does not stop delivery to the remaining handlers.
func (d *Dispatcher) Dispatch(ctx context.Context, evt Event) {
	for _, h := range d.handlers {
		if err := d.invoke(ctx, h, evt); err != nil {
			d.logger.Error("handler module failed",
				"module", h.Name(), "event", string(evt.Type), "error", err)
			continue
		}
		d.logger.Debug("handler module notified",
			"module", h.Name(), "event", string(evt.Type))
	}
}

func (d *Dispatcher) invoke(ctx context.Context, h Handler, evt Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h.Handle(ctx, evt)
}

// Go runs fn on its own goroutine with panic containment. Handler modules
// use it for outbound work so that a crash in async integration code cannot
// take the server down or affect other handlers.
func Go(logger *slog.Logger, name string, fn func()) {
	if logger == nil {
		logger = slog.Default()
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("async handler task panicked", "task", name, "panic", r)
			}
		}()
		fn()
	}()
}
