// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package resource

import (
	"sync"

	"github.com/devblok/litecraft/core"
)

// result is what a decode job hands back to the owning goroutine,
// either pixels or an error.
type result struct {
	id     ID
	pixels *core.Pixels
	err    error
}

// handoff is an unbounded many producer, single consumer queue.
// Producers never wait for the consumer and the consumer never
// waits for producers.
type handoff struct {
	mutex sync.Mutex
	queue []result
}

func (h *handoff) push(r result) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.queue = append(h.queue, r)
}

// drain takes everything queued so far.
func (h *handoff) drain() []result {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if len(h.queue) == 0 {
		return nil
	}
	results := h.queue
	h.queue = nil
	return results
}

func (h *handoff) len() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.queue)
}
