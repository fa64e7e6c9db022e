package input

import "sync"

// Unsubscribe removes a handler. Calling it more than once is harmless.
type Unsubscribe func()

type subscription[T any] struct {
	id int
	fn func(T)
}

type handlers[T any] struct {
	subs []subscription[T]
}

func (h *handlers[T]) add(id int, fn func(T)) {
	h.subs = append(h.subs, subscription[T]{id: id, fn: fn})
}

func (h *handlers[T]) remove(id int) {
	for i, s := range h.subs {
		if s.id == id {
			h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
			return
		}
	}
}

// Bus fans host events out to subscribers.
type Bus struct {
	mu      sync.Mutex
	next    int
	keys    handlers[KeyEvent]
	pointer handlers[PointerEvent]
	resize  handlers[ResizeEvent]
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) OnKey(fn func(KeyEvent)) Unsubscribe {
	if b == nil {
		return func() {}
	}
	return subscribe(b, &b.keys, fn)
}

func (b *Bus) OnPointer(fn func(PointerEvent)) Unsubscribe {
	if b == nil {
		return func() {}
	}
	return subscribe(b, &b.pointer, fn)
}

func (b *Bus) OnResize(fn func(ResizeEvent)) Unsubscribe {
	if b == nil {
		return func() {}
	}
	return subscribe(b, &b.resize, fn)
}

func (b *Bus) DispatchKey(ev KeyEvent) {
	if b != nil {
		dispatch(b, &b.keys, ev)
	}
}

func (b *Bus) DispatchPointer(ev PointerEvent) {
	if b != nil {
		dispatch(b, &b.pointer, ev)
	}
}

func (b *Bus) DispatchResize(ev ResizeEvent) {
	if b != nil {
		dispatch(b, &b.resize, ev)
	}
}

// Listeners reports the number of live subscriptions across all event kinds.
func (b *Bus) Listeners() int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.keys.subs) + len(b.pointer.subs) + len(b.resize.subs)
}

func subscribe[T any](b *Bus, h *handlers[T], fn func(T)) Unsubscribe {
	if fn == nil {
		return func() {}
	}
	b.mu.Lock()
	b.next++
	id := b.next
	h.add(id, fn)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			h.remove(id)
			b.mu.Unlock()
		})
	}
}

func dispatch[T any](b *Bus, h *handlers[T], ev T) {
	// snapshot so handlers can unsubscribe while being called
	b.mu.Lock()
	subs := h.subs
	b.mu.Unlock()
	for _, s := range subs {
		s.fn(ev)
	}
}
