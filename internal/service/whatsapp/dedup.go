package whatsapp

import "sync"

const handledMessageCapacity = 1024

// handledMessages remembers the most recent inbound message ids so that
// webhook redeliveries do not run a command twice.
type handledMessages struct {
	mu    sync.Mutex
	ids   map[string]struct{}
	order []string
	next  int
}

func newHandledMessages(capacity int) *handledMessages {
	return &handledMessages{
		ids:   make(map[string]struct{}, capacity),
		order: make([]string, capacity),
	}
}

// claim reports whether id is seen for the first time and records it.
// Messages without an id are always claimable.
func (h *handledMessages) claim(id string) bool {
	if id == "" {
		return true
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.ids[id]; ok {
		return false
	}
	if evicted := h.order[h.next]; evicted != "" {
		delete(h.ids, evicted)
	}
	h.order[h.next] = id
	h.next = (h.next + 1) % len(h.order)
	h.ids[id] = struct{}{}
	return true
}

// release forgets id so a later redelivery is processed again.
func (h *handledMessages) release(id string) {
	if id == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.ids, id)
}
