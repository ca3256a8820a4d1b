package events

import "sync"

// events a listener may lag behind before Send blocks
const listenerBuffer = 1024

type Receiver struct {
	mu        sync.Mutex
	listeners []chan interface{}
}

func New() *Receiver {
	return &Receiver{
		listeners: make([]chan interface{}, 0),
	}
}

func (er *Receiver) Listen() <-chan interface{} {
	er.mu.Lock()
	defer er.mu.Unlock()

	ch := make(chan interface{}, listenerBuffer)
	er.listeners = append(er.listeners, ch)
	return ch
}

// Send queues the event on every listener and only blocks on one that is
// listenerBuffer events behind. Workers call it concurrently, listeners see
// events in a single global order.
func (er *Receiver) Send(event interface{}) {
	er.mu.Lock()
	defer er.mu.Unlock()

	for _, ch := range er.listeners {
		ch <- event
	}
}

func (er *Receiver) Close() {
	er.mu.Lock()
	defer er.mu.Unlock()

	for _, ch := range er.listeners {
		close(ch)
	}
	er.listeners = make([]chan interface{}, 0)
}
