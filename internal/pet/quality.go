package pet

// QualityLog is a fixed-capacity ring of the most recent framework qualities.
// Average divides by the full capacity, so unwritten (zero) slots count.
type QualityLog struct {
	values []int
	last   int // index of the newest value, -1 when nothing was pushed
}

// NewQualityLog creates a zeroed log. Capacity below 1 is raised to 1.
func NewQualityLog(capacity int) *QualityLog {
	if capacity < 1 {
		capacity = 1
	}
	return &QualityLog{
		values: make([]int, capacity),
		last:   -1,
	}
}

// Push overwrites the oldest slot with v.
func (q *QualityLog) Push(v int) {
	q.last = (q.last + 1) % len(q.values)
	q.values[q.last] = v
}

// Average is the integer mean over all slots.
func (q *QualityLog) Average() int {
	sum := 0
	for _, v := range q.values {
		sum += v
	}
	return sum / len(q.values)
}

// Capacity returns the number of slots.
func (q *QualityLog) Capacity() int {
	return len(q.values)
}

// Latest returns the newest value, or false when empty.
func (q *QualityLog) Latest() (int, bool) {
	if q.last < 0 {
		return 0, false
	}
	return q.values[q.last], true
}

// Values returns a copy of the slots, oldest first.
func (q *QualityLog) Values() []int {
	n := len(q.values)
	out := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, q.values[(q.last+i+n)%n])
	}
	return out
}
