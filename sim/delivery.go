package sim

import (
	"container/heap"
	"fmt"
)

// ScheduledDelivery is a restock request with its arrival day.
type ScheduledDelivery struct {
	DueDay  int
	Request RestockRequest
	seq     uint64
}

// deliveryHeap orders deliveries by due day, then by scheduling order.
type deliveryHeap []ScheduledDelivery

func (h deliveryHeap) Len() int { return len(h) }
func (h deliveryHeap) Less(i, j int) bool {
	if h[i].DueDay != h[j].DueDay {
		return h[i].DueDay < h[j].DueDay
	}
	return h[i].seq < h[j].seq
}
func (h deliveryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *deliveryHeap) Push(x any) {
	*h = append(*h, x.(ScheduledDelivery))
}

func (h *deliveryHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// DeliveryScheduler holds restock deliveries in arrival order.
type DeliveryScheduler struct {
	queue   deliveryHeap
	nextSeq uint64
}

// NewDeliveryScheduler creates an empty scheduler.
func NewDeliveryScheduler() *DeliveryScheduler {
	return &DeliveryScheduler{queue: make(deliveryHeap, 0)}
}

// Schedule enqueues each request to arrive leadTime() days after day.
// leadTime is drawn once per request. The new entries are returned.
func (s *DeliveryScheduler) Schedule(reqs []RestockRequest, day int, leadTime func() int) []ScheduledDelivery {
	out := make([]ScheduledDelivery, 0, len(reqs))
	for _, r := range reqs {
		s.nextSeq++
		d := ScheduledDelivery{DueDay: day + leadTime(), Request: r, seq: s.nextSeq}
		heap.Push(&s.queue, d)
		out = append(out, d)
	}
	return out
}

// PopDue removes and returns every request due on day, in scheduling order
// for ties. A delivery due before day means a day was skipped and panics.
func (s *DeliveryScheduler) PopDue(day int) []RestockRequest {
	var due []RestockRequest
	for s.queue.Len() > 0 && s.queue[0].DueDay <= day {
		d := heap.Pop(&s.queue).(ScheduledDelivery)
		if d.DueDay < day {
			panic(fmt.Sprintf("delivery: %q was due on day %d, popped on day %d", d.Request.Drug, d.DueDay, day))
		}
		due = append(due, d.Request)
	}
	return due
}

// Pending returns the number of deliveries in flight.
func (s *DeliveryScheduler) Pending() int {
	return s.queue.Len()
}
