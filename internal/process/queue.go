package process

// Queue is an intrusive doubly-linked FIFO of Records. A Record belongs
// to at most one Queue at a time; moving a Record between queues is the
// caller's responsibility (Remove from the old queue, Enqueue onto the
// new one).
type Queue struct {
	head, tail *Record
	length     int
}

// NewQueue returns an empty queue.
func NewQueue() *Queue { return &Queue{} }

// Len reports the number of records currently queued.
func (q *Queue) Len() int { return q.length }

// Empty reports whether the queue holds no records.
func (q *Queue) Empty() bool { return q.length == 0 }

// Enqueue appends r to the tail of the queue.
func (q *Queue) Enqueue(r *Record) {
	r.prev, r.next = nil, nil
	if q.tail == nil {
		q.head, q.tail = r, r
	} else {
		r.prev = q.tail
		q.tail.next = r
		q.tail = r
	}
	q.length++
}

// Dequeue removes and returns the record at the head of the queue, or
// nil if the queue is empty.
func (q *Queue) Dequeue() *Record {
	r := q.head
	if r == nil {
		return nil
	}
	q.Remove(r)
	return r
}

// Peek returns the head of the queue without removing it, or nil if the
// queue is empty.
func (q *Queue) Peek() *Record {
	return q.head
}

// Remove detaches r from the queue. r must currently belong to this
// queue; membership is not checked, so a record that does not is still
// unlinked from its own neighbours and this queue's length is still
// decremented.
func (q *Queue) Remove(r *Record) {
	if r.prev != nil {
		r.prev.next = r.next
	} else if q.head == r {
		q.head = r.next
	}
	if r.next != nil {
		r.next.prev = r.prev
	} else if q.tail == r {
		q.tail = r.prev
	}
	r.prev, r.next = nil, nil
	q.length--
}

// ToSlice returns the queue's records head-to-tail, for display and
// testing. It does not mutate the queue.
func (q *Queue) ToSlice() []*Record {
	out := make([]*Record, 0, q.length)
	for r := q.head; r != nil; r = r.next {
		out = append(out, r)
	}
	return out
}

// DrainReadyByArrival removes and returns every record whose arrival
// time has been reached by clock, in original queue order. Records are
// collected into a slice before any are removed, so the traversal
// cursor is never invalidated by mutating the list mid-walk.
func (q *Queue) DrainReadyByArrival(clock uint) []*Record {
	var ready []*Record
	for r := q.head; r != nil; r = r.next {
		if r.Ready(clock) {
			ready = append(ready, r)
		}
	}
	for _, r := range ready {
		q.Remove(r)
	}
	return ready
}
