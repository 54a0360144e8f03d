// Package event is an in-process dispatcher. Listeners register at boot,
// publishers fire by name; there is no persistence and no ordering guarantee
// across distinct events.
package event

import "sync"

// Handler receives the payload the publisher fired.
type Handler func(payload interface{})

// Dispatcher routes fired events to their listeners.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[string][]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[string][]Handler)}
}

func (d *Dispatcher) Listen(name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[name] = append(d.listeners[name], h)
}

func (d *Dispatcher) snapshot(name string) []Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]Handler(nil), d.listeners[name]...)
}

// Fire runs every listener for name in registration order, on the caller's
// goroutine.
func (d *Dispatcher) Fire(name string, payload interface{}) {
	for _, h := range d.snapshot(name) {
		h(payload)
	}
}

// FireAsync runs each listener on its own goroutine and returns immediately.
func (d *Dispatcher) FireAsync(name string, payload interface{}) {
	for _, h := range d.snapshot(name) {
		go h(payload)
	}
}

// Flush drops all listeners. Tests use this between cases.
func (d *Dispatcher) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = make(map[string][]Handler)
}

var defaultDispatcher = NewDispatcher()

// Listen registers a handler on the process-wide dispatcher.
func Listen(name string, h Handler) { defaultDispatcher.Listen(name, h) }

// Fire dispatches on the process-wide dispatcher, synchronously.
func Fire(name string, payload interface{}) { defaultDispatcher.Fire(name, payload) }

// FireAsync dispatches on the process-wide dispatcher without waiting.
func FireAsync(name string, payload interface{}) { defaultDispatcher.FireAsync(name, payload) }

// Flush clears the process-wide dispatcher.
func Flush() { defaultDispatcher.Flush() }
