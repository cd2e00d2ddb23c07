// Package events implementa un bus de eventos de dominio en proceso.
// Los suscriptores se registran al arranque; Publish los invoca en orden y
// nunca propaga errores al caso de uso que emitió el evento.
package events

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

var _ ledger.EventBus = (*Bus)(nil)

// Handler función suscriptora de eventos.
type Handler func(ctx context.Context, event ledger.Event)

// Bus bus de eventos en memoria. Seguro para uso concurrente.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
}

// NewBus construye un bus vacío.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registra un handler. Pensado para el arranque; es válido llamarlo
// en caliente.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish entrega el evento a todos los suscriptores en orden de registro,
// de forma síncrona. Un suscriptor que necesite trabajo pesado debe despachar
// a su propia goroutine.
func (b *Bus) Publish(ctx context.Context, event ledger.Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, event)
	}
}

// LoggingHandler suscriptor que deja traza estructurada de cada evento.
func LoggingHandler(log *logger.Logger) Handler {
	return func(_ context.Context, event ledger.Event) {
		ev := log.Info().Str("event", event.Name).Time("at", event.At)
		if event.Stock != nil {
			ev = ev.Str("stock_id", event.Stock.ID).Str("quantity", event.Stock.Quantity.String())
		}
		if event.Movement != nil {
			ev = ev.Str("movement_id", event.Movement.ID).Str("reason", event.Movement.Reason)
		}
		if event.Transaction != nil {
			ev = ev.Str("transaction_id", event.Transaction.ID).Str("state", string(event.Transaction.State))
		}
		ev.Msg("evento de inventario")
	}
}
