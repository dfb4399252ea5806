package cbor

import "sync"

// ByteBuffer is a reusable byte buffer recycled through a pool. The
// rendering paths (Diag, JSON) use it to keep steady-state allocations
// flat.
type ByteBuffer struct {
	B []byte
}

var byteBufferPool = sync.Pool{
	New: func() any {
		return &ByteBuffer{B: make([]byte, 0, 64)}
	},
}

// GetByteBuffer returns an empty buffer from the pool.
func GetByteBuffer() *ByteBuffer {
	b := byteBufferPool.Get().(*ByteBuffer)
	b.Reset()
	return b
}

// PutByteBuffer returns a buffer to the pool. The caller must not use
// it afterwards.
func PutByteBuffer(b *ByteBuffer) {
	byteBufferPool.Put(b)
}

// Len returns the number of buffered bytes.
func (b *ByteBuffer) Len() int { return len(b.B) }

// Bytes returns the buffered bytes.
func (b *ByteBuffer) Bytes() []byte { return b.B }

// Reset truncates the buffer without releasing its capacity.
func (b *ByteBuffer) Reset() { b.B = b.B[:0] }

// Write appends p, implementing io.Writer. It never fails.
func (b *ByteBuffer) Write(p []byte) (int, error) {
	b.B = append(b.B, p...)
	return len(p), nil
}

// WriteString appends s.
func (b *ByteBuffer) WriteString(s string) {
	b.B = append(b.B, s...)
}

// WriteByte appends c.
func (b *ByteBuffer) WriteByte(c byte) error {
	b.B = append(b.B, c)
	return nil
}
