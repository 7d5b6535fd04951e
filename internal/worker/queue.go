package worker

// jobQueue is an unbounded FIFO of jobs backed by a ring buffer. It is not
// safe for concurrent use; the pool guards it with its own lock.
type jobQueue struct {
	buf  []Job
	head int
	size int
}

const minQueueCap = 16

func (q *jobQueue) Len() int {
	return q.size
}

// Push appends j to the tail of the queue, growing the buffer when full.
func (q *jobQueue) Push(j Job) {
	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.size)%len(q.buf)] = j
	q.size++
}

// Pop removes and returns the job at the head of the queue. The second return
// value is false when the queue is empty.
func (q *jobQueue) Pop() (Job, bool) {
	if q.size == 0 {
		return nil, false
	}
	j := q.buf[q.head]
	q.buf[q.head] = nil
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	if q.size == 0 {
		q.head = 0
	}
	return j, true
}

func (q *jobQueue) grow() {
	capacity := len(q.buf) * 2
	if capacity < minQueueCap {
		capacity = minQueueCap
	}
	buf := make([]Job, capacity)
	for i := 0; i < q.size; i++ {
		buf[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = buf
	q.head = 0
}
