package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-ledger/internal/application/ledger"
)

var _ ledger.EventBus = (*EventRecorder)(nil)

// EventRecorder bus de eventos que acumula lo publicado. Para tests.
type EventRecorder struct {
	mu     sync.Mutex
	events []ledger.Event
}

// NewEventRecorder construye un recorder vacío.
func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

// Publish acumula el evento.
func (r *EventRecorder) Publish(_ context.Context, event ledger.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events devuelve una copia de lo publicado hasta ahora.
func (r *EventRecorder) Events() []ledger.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ledger.Event(nil), r.events...)
}

// Names devuelve solo los nombres de los eventos publicados, en orden.
func (r *EventRecorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.events))
	for i, e := range r.events {
		names[i] = e.Name
	}
	return names
}
