package search

import (
	"sync"

	"github.com/herohde/tak/pkg/eval"
	"github.com/herohde/tak/pkg/tak"
)

// Bag is an unordered, growable collection that reuses freed slots before growing,
// avoiding reallocation churn for a dispatcher that continuously creates and retires work
// items.
type Bag[T any] struct {
	items  []*T
	unused []int
}

func (b *Bag[T]) Len() int {
	return len(b.items) - len(b.unused)
}

// Push stores v and returns its slot index.
func (b *Bag[T]) Push(v T) int {
	if n := len(b.unused); n > 0 {
		idx := b.unused[n-1]
		b.unused = b.unused[:n-1]
		b.items[idx] = &v
		return idx
	}
	b.items = append(b.items, &v)
	return len(b.items) - 1
}

// Remove evicts the item at idx, freeing the slot for reuse.
func (b *Bag[T]) Remove(idx int) {
	if idx < 0 || idx >= len(b.items) || b.items[idx] == nil {
		return
	}
	b.items[idx] = nil
	b.unused = append(b.unused, idx)
}

// Get returns a pointer to the item at idx, or false if the slot is empty.
func (b *Bag[T]) Get(idx int) (*T, bool) {
	if idx < 0 || idx >= len(b.items) || b.items[idx] == nil {
		return nil, false
	}
	return b.items[idx], true
}

// Each calls fn for every live item in the bag, in slot order.
func (b *Bag[T]) Each(fn func(idx int, v *T)) {
	for i, v := range b.items {
		if v != nil {
			fn(i, v)
		}
	}
}

// jobStatus tracks a queued young-brother search's lifecycle in a workBag.
type jobStatus uint8

const (
	waiting jobStatus = iota
	active
)

type job struct {
	ply    tak.Ply
	status jobStatus
	fn     func(tak.Ply, *KillerTable) (eval.Evaluation, []tak.Ply)
}

// result is one young-brother search's outcome.
type result struct {
	ply   tak.Ply
	score eval.Evaluation
	pv    []tak.Ply
}

// workBag is the shared pool of pending young-brother searches for one split node. Workers
// take() a waiting job, run it and finish() it; the owning goroutine ranges over results
// and may prune() jobs still waiting once a cutoff makes them moot. results is buffered to
// its full capacity so finish() never blocks even if the owner stops consuming early.
type workBag struct {
	mu      sync.Mutex
	bag     Bag[job]
	pending int

	results chan result
}

func newWorkBag(plies []tak.Ply, fn func(tak.Ply, *KillerTable) (eval.Evaluation, []tak.Ply)) *workBag {
	w := &workBag{results: make(chan result, len(plies))}
	for _, p := range plies {
		w.bag.Push(job{ply: p, status: waiting, fn: fn})
	}
	w.pending = len(plies)
	if w.pending == 0 {
		close(w.results)
	}
	return w
}

// take claims one waiting job for the calling worker, or reports none left.
func (w *workBag) take() (int, job, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx := -1
	w.bag.Each(func(i int, j *job) {
		if idx == -1 && j.status == waiting {
			idx = i
		}
	})
	if idx == -1 {
		return 0, job{}, false
	}
	j, _ := w.bag.Get(idx)
	j.status = active
	return idx, *j, true
}

// finish records idx's result and retires it. Closes results once every job queued has
// either finished or been pruned.
func (w *workBag) finish(idx int, score eval.Evaluation, pv []tak.Ply) {
	w.mu.Lock()
	defer w.mu.Unlock()

	j, _ := w.bag.Get(idx)
	w.bag.Remove(idx)
	w.pending--

	// Sent under the lock so prune never sees pending reach zero before this result is in
	// results; results has room for every job, so the send never blocks.
	w.results <- result{ply: j.ply, score: score, pv: pv}
	if w.pending == 0 {
		close(w.results)
	}
}

// prune abandons every job still waiting, typically once a beta cutoff makes the rest of
// the split moot. Jobs already claimed by a worker are left to finish normally.
func (w *workBag) prune() {
	w.mu.Lock()
	defer w.mu.Unlock()

	var stale []int
	w.bag.Each(func(i int, j *job) {
		if j.status == waiting {
			stale = append(stale, i)
		}
	})
	for _, i := range stale {
		w.bag.Remove(i)
		w.pending--
	}
	if len(stale) > 0 && w.pending == 0 {
		close(w.results)
	}
}

// Dispatcher runs a bounded pool of persistent worker goroutines that drain workBags
// pushed onto a shared queue. It implements Young Brothers Wait: the caller always
// searches a node's eldest child sequentially to establish a real alpha bound before
// offering the remaining siblings to the pool, so parallel search never runs ahead of a
// meaningful bound to prune against.
//
// Each worker goroutine owns one KillerTable slot: a worker's jobs accumulate killer moves
// into its own table rather than the shared root, so no job ever mutates a KillerTable
// another goroutine is reading or writing. ResetKillersFrom and MergeKillersInto move
// history between the root table and the worker slots at iteration boundaries; the caller
// must not have any Split in flight while calling either.
type Dispatcher struct {
	queue chan *workBag
	done  chan struct{}
	wg    sync.WaitGroup

	maxPly   int
	killerMu sync.Mutex
	killers  []*KillerTable
}

// NewDispatcher starts workers persistent goroutines draining the dispatch queue, each
// with its own killer table sized for up to maxPly plies-from-root. workers <= 0 is
// treated as 1.
func NewDispatcher(workers, maxPly int) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	d := &Dispatcher{
		queue:   make(chan *workBag, workers),
		done:    make(chan struct{}),
		maxPly:  maxPly,
		killers: make([]*KillerTable, workers),
	}
	for i := range d.killers {
		d.killers[i] = NewKillerTable(maxPly)
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.loop(i)
	}
	return d
}

func (d *Dispatcher) loop(worker int) {
	defer d.wg.Done()
	for {
		select {
		case <-d.done:
			return
		case w, ok := <-d.queue:
			if !ok {
				return
			}
			d.drain(w, d.killers[worker])
		}
	}
}

func (d *Dispatcher) drain(w *workBag, wk *KillerTable) {
	for {
		idx, j, ok := w.take()
		if !ok {
			return
		}
		score, pv := j.fn(j.ply, wk)
		w.finish(idx, score, pv)
	}
}

// ResetKillersFrom overwrites every worker's killer table with a fresh clone of root. Call
// at the start of each iterative-deepening depth so workers start from whatever the
// previous depth's merge taught the root, rather than accumulating unbounded history.
func (d *Dispatcher) ResetKillersFrom(root *KillerTable) {
	d.killerMu.Lock()
	defer d.killerMu.Unlock()
	for i := range d.killers {
		d.killers[i] = root.Clone()
	}
}

// MergeKillersInto folds every worker's accumulated killer moves into root. Call once a
// depth's search has fully returned, so root reflects what every worker's subtrees learned
// before the next depth resets them.
func (d *Dispatcher) MergeKillersInto(root *KillerTable) {
	d.killerMu.Lock()
	defer d.killerMu.Unlock()
	for _, wk := range d.killers {
		root.Merge(wk)
	}
}

// Split searches plies concurrently via the worker pool and returns a channel of their
// results, plus a prune function the caller should invoke as soon as a beta cutoff makes
// the rest of the batch moot. The channel is buffered to len(plies) and closes once every
// job has finished or been pruned, so it is always safe to stop ranging over it early.
func (d *Dispatcher) Split(plies []tak.Ply, fn func(tak.Ply, *KillerTable) (eval.Evaluation, []tak.Ply)) (<-chan result, func()) {
	w := newWorkBag(plies, fn)
	if w.pending == 0 {
		return w.results, func() {}
	}

	select {
	case d.queue <- w:
	default:
		// Pool saturated: drain this batch on a dedicated goroutine rather than block the
		// caller, which would otherwise stall the sequential eldest-child search above it.
		// Its killer table starts empty and is discarded once the batch finishes -- a rare
		// fallback path, not worth the locking to fold back into root.
		go d.drain(w, NewKillerTable(d.maxPly))
	}
	return w.results, w.prune
}

// Close stops every worker goroutine. The Dispatcher must not be used afterwards.
func (d *Dispatcher) Close() {
	close(d.done)
	d.wg.Wait()
}
