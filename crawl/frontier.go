package crawl

import (
	"container/heap"
	"strings"
	"sync"

	"github.com/psd2scout/apiscout"
	"github.com/psd2scout/apiscout/bloom"
)

// Compile-time interface verification.
var _ apiscout.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory crawl work list with priority ordering and
// Bloom filter deduplication. It is safe for concurrent use.
//
// Ordering is fully deterministic: higher priority first, then lower
// depth, then discovery order. This matters because the priority
// decides which pages get scanned before the page budget runs out.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue *entryHeap
	seq   int
}

// NewFrontier creates a Frontier sized for n expected URLs with the
// given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &entryHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.NewFilter(n, fpRate),
		queue: h,
	}
}

// Push adds a link to the frontier.
// Returns false if the URL has already been seen. Fragments are
// stripped before deduplication, so URLs differing only by fragment
// are duplicates.
func (f *Frontier) Push(link apiscout.DiscoveredLink) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := stripFragment(link.URL)
	if f.seen.Test(url) {
		return false
	}
	f.seen.Add(url)

	link.URL = url
	heap.Push(f.queue, entry{link: link, seq: f.seq})
	f.seq++
	return true
}

// Pop returns the next link by priority.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (apiscout.DiscoveredLink, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return apiscout.DiscoveredLink{}, false
	}
	e, _ := heap.Pop(f.queue).(entry)
	return e.link, true
}

// Len returns the number of links in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if the URL has been queued or processed.
// Fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(stripFragment(rawURL))
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}

// entry pairs a link with its discovery sequence number so equal
// priorities pop in discovery order.
type entry struct {
	link apiscout.DiscoveredLink
	seq  int
}

// entryHeap implements heap.Interface ordered by priority descending,
// depth ascending, discovery sequence ascending.
type entryHeap []entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].link.Priority != h[j].link.Priority {
		return h[i].link.Priority > h[j].link.Priority
	}
	if h[i].link.Depth != h[j].link.Depth {
		return h[i].link.Depth < h[j].link.Depth
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) {
	e, _ := x.(entry)
	*h = append(*h, e)
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
