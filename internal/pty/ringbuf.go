package pty

// RingBuffer keeps the most recent size bytes written to it.
type RingBuffer struct {
	data  []byte
	size  int
	write int
}

// NewRingBuffer creates a new ring buffer with the given size
func NewRingBuffer(size int) *RingBuffer {
	return &RingBuffer{
		data: make([]byte, size),
		size: size,
	}
}

// Write writes data to the ring buffer
func (rb *RingBuffer) Write(p []byte) {
	for _, b := range p {
		rb.data[rb.write] = b
		rb.write = (rb.write + 1) % rb.size
	}
}

// String returns the buffer contents from oldest to newest.
func (rb *RingBuffer) String() string {
	result := make([]byte, rb.size)
	for i := 0; i < rb.size; i++ {
		result[i] = rb.data[(rb.write+i)%rb.size]
	}
	// Trim leading null bytes from an underfilled buffer.
	start := 0
	for start < len(result) && result[start] == 0 {
		start++
	}
	return string(result[start:])
}
