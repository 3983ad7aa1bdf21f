package reactive

import (
	"sort"
	"sync"
)

// Scheduler receives watchers whose deps changed in deferred mode. It must
// guarantee deduplicated, ascending-id-ordered eventual invocation of run.
type Scheduler interface {
	Enqueue(w *Watcher)
}

// queueScheduler is the default scheduler: an id-deduplicated queue flushed
// in ascending watcher-id order, so ancestors (created first) run before
// descendants. A watcher enqueued mid-flush is spliced into the current
// flush if its turn has not passed, otherwise it waits for the next one.
type queueScheduler struct {
	mu       sync.Mutex
	queue    []*Watcher
	has      map[uint64]bool
	circular map[uint64]int
	flushing bool
	index    int
}

var defaultScheduler = &queueScheduler{has: make(map[uint64]bool)}

// enqueueWatcher routes non-sync, non-lazy updates to the default scheduler.
// In synchronous mode (Async false, no open batch) the queue drains
// immediately, so the write that caused the update returns only after every
// affected watcher ran.
func enqueueWatcher(w *Watcher) {
	defaultScheduler.Enqueue(w)
}

func (s *queueScheduler) Enqueue(w *Watcher) {
	s.mu.Lock()
	if s.has[w.id] {
		s.mu.Unlock()
		return
	}
	s.has[w.id] = true

	if !s.flushing {
		s.queue = append(s.queue, w)
	} else {
		s.circular[w.id]++
		if s.circular[w.id] > maxUpdateCount {
			delete(s.has, w.id)
			s.mu.Unlock()
			if DevMode {
				warn("possible infinite update loop in watcher %q", w.expression)
			}
			return
		}
		// Splice by id so the running flush picks it up in order.
		i := len(s.queue) - 1
		for i > s.index && s.queue[i].id > w.id {
			i--
		}
		s.queue = append(s.queue, nil)
		copy(s.queue[i+2:], s.queue[i+1:])
		s.queue[i+1] = w
	}
	flushNow := !Async && batchDepth() == 0 && !s.flushing
	s.mu.Unlock()

	if flushNow {
		s.flush()
	}
}

// Flush drains the queue, running every queued watcher in ascending id
// order. Hosts running in Async mode call this once per logical tick.
// Flushing is re-entrant safe: a flush triggered inside a flush is a no-op.
func Flush() {
	defaultScheduler.flush()
}

func (s *queueScheduler) flush() {
	s.mu.Lock()
	if s.flushing || len(s.queue) == 0 {
		s.mu.Unlock()
		return
	}
	s.flushing = true
	s.circular = make(map[uint64]int)
	sort.Slice(s.queue, func(i, j int) bool { return s.queue[i].id < s.queue[j].id })

	ran := 0
	for s.index = 0; s.index < len(s.queue); s.index++ {
		w := s.queue[s.index]
		// Cleared before the run so the watcher can re-queue itself.
		delete(s.has, w.id)
		s.mu.Unlock()
		w.run()
		ran++
		s.mu.Lock()
	}

	s.queue = s.queue[:0]
	s.index = 0
	s.flushing = false
	s.mu.Unlock()

	stats.flushes.Add(1)
	devFlush(ran)
	if Debug.LogFlushes {
		debugf("scheduler flushed %d watchers", ran)
	}
}

// depth returns the number of currently queued watchers.
func (s *queueScheduler) depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}
