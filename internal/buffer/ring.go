package buffer

// Ring is a ring buffer keeping the last x values.
type Ring struct {
	index  int
	count  int
	values []float64
}

// NewRing creates a new ring with the given buffer size.
func NewRing(size int) *Ring {
	return &Ring{
		values: make([]float64, size),
	}
}

// Push adds a value to the ring, evicting the oldest one when full.
func (r *Ring) Push(v float64) {
	r.values[r.index] = v
	r.index = (r.index + 1) % len(r.values)
	r.count++
}

// Size returns the number of values currently held.
func (r *Ring) Size() int {
	if r.count < len(r.values) {
		return r.count
	}
	return len(r.values)
}

// Full reports whether the ring has wrapped at least once.
func (r *Ring) Full() bool {
	return r.count >= len(r.values)
}

// Get returns the held values ordered oldest to newest.
func (r *Ring) Get() []float64 {
	size := r.Size()
	out := make([]float64, size)
	start := 0
	if r.Full() {
		start = r.index
	}
	for i := 0; i < size; i++ {
		out[i] = r.values[(start+i)%len(r.values)]
	}
	return out
}
