package events

import (
	"sync"
)

// Handler recibe los eventos de un topic.
type Handler func(topic string, payload map[string]any)

// Bus bus de eventos en proceso. Publish es best-effort: sin suscriptores es un
// no-op y un handler que entra en pánico no afecta al publicador.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewBus construye el bus vacío.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// Subscribe registra un handler para un topic.
func (b *Bus) Subscribe(topic string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], h)
}

// Publish entrega el payload a todos los suscriptores del topic, en orden de
// suscripción y de forma síncrona.
func (b *Bus) Publish(topic string, payload map[string]any) {
	b.mu.RLock()
	hs := append([]Handler(nil), b.handlers[topic]...)
	b.mu.RUnlock()
	for _, h := range hs {
		func() {
			defer func() { _ = recover() }()
			h(topic, payload)
		}()
	}
}
