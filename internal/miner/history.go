package miner

// DefaultHistorySize is the number of per-second rate samples kept for the graph.
const DefaultHistorySize = 20

// RateHistory is a fixed-size FIFO of per-second hash rate samples.
// It is not safe for concurrent use; the owner serializes access.
type RateHistory struct {
	data  []float64
	head  int
	count int
	size  int
}

// NewRateHistory creates a history with the given capacity.
func NewRateHistory(size int) *RateHistory {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &RateHistory{
		data: make([]float64, size),
		size: size,
	}
}

// Push appends a sample, evicting the oldest once the buffer is full.
func (r *RateHistory) Push(value float64) {
	r.data[r.head] = value
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// Len returns the number of stored samples.
func (r *RateHistory) Len() int {
	return r.count
}

// Last returns the last count samples in chronological order (oldest first).
func (r *RateHistory) Last(count int) []float64 {
	if count <= 0 || r.count == 0 {
		return nil
	}
	if count > r.count {
		count = r.count
	}

	result := make([]float64, count)

	// head is the next write position, so the newest sample sits at head-1
	start := (r.head - count + r.size) % r.size
	for i := 0; i < count; i++ {
		result[i] = r.data[(start+i)%r.size]
	}
	return result
}

// All returns every stored sample, oldest first.
func (r *RateHistory) All() []float64 {
	return r.Last(r.count)
}
