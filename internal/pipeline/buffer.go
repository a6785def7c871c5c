// Package pipeline provides the sample FIFOs that connect the stream to the
// transform engine.
package pipeline

import (
	"errors"
	"fmt"
)

// ErrCapacity is returned when a write would take a buffer past its limit.
var ErrCapacity = errors.New("buffer capacity exceeded")

// Sample is the set of element types a Buffer can hold.
type Sample interface {
	~int16 | ~float64
}

// Buffer is a contiguous FIFO of samples with an optional capacity limit.
//
// Unread samples are always stored contiguously so stages can operate on
// them in place through Samples. Buffer is not safe for concurrent use.
type Buffer[T Sample] struct {
	data  []T
	start int
	limit int
}

// NewBuffer creates a buffer with the given initial capacity. A limit of
// zero or less disables the capacity check in Write.
func NewBuffer[T Sample](capacity, limit int) *Buffer[T] {
	if capacity < 1 {
		capacity = defaultCapacity
	}
	if limit > 0 && capacity > limit {
		capacity = limit
	}

	return &Buffer[T]{
		data:  make([]T, 0, capacity),
		limit: limit,
	}
}

// Len returns the number of unread samples.
func (b *Buffer[T]) Len() int {
	return len(b.data) - b.start
}

// Limit returns the capacity limit, or zero when unlimited.
func (b *Buffer[T]) Limit() int {
	return b.limit
}

// Capacity returns the number of samples the backing array can hold
// without reallocating.
func (b *Buffer[T]) Capacity() int {
	return cap(b.data) - b.start
}

// Fits reports whether n more samples can be written within the limit.
func (b *Buffer[T]) Fits(n int) bool {
	return b.limit <= 0 || b.Len()+n <= b.limit
}

// Write appends samples. If the result would exceed the limit the buffer is
// left untouched and ErrCapacity is returned.
func (b *Buffer[T]) Write(samples []T) error {
	if len(samples) == 0 {
		return nil
	}
	if !b.Fits(len(samples)) {
		return fmt.Errorf("%w: %d buffered + %d new > limit %d",
			ErrCapacity, b.Len(), len(samples), b.limit)
	}

	b.reserve(len(samples))
	b.data = append(b.data, samples...)
	return nil
}

// Pad appends n zero samples regardless of the limit.
func (b *Buffer[T]) Pad(n int) {
	if n <= 0 {
		return
	}

	b.reserve(n)
	var zero T
	for range n {
		b.data = append(b.data, zero)
	}
}

// Samples returns the unread samples. The slice aliases the buffer and is
// only valid until the next mutating call.
func (b *Buffer[T]) Samples() []T {
	return b.data[b.start:]
}

// Read removes and returns up to n samples.
func (b *Buffer[T]) Read(n int) []T {
	if n > b.Len() {
		n = b.Len()
	}
	if n <= 0 {
		return []T{}
	}

	result := make([]T, n)
	copy(result, b.data[b.start:])
	b.Discard(n)
	return result
}

// ReadInto removes up to len(dst) samples into dst and returns the count.
func (b *Buffer[T]) ReadInto(dst []T) int {
	n := copy(dst, b.data[b.start:])
	b.Discard(n)
	return n
}

// Discard drops up to n samples from the front.
func (b *Buffer[T]) Discard(n int) {
	if n <= 0 {
		return
	}
	if n >= b.Len() {
		b.Clear()
		return
	}

	b.start += n
	if b.start >= compactThreshold && b.start*bufferGrowthFactor >= cap(b.data) {
		b.compact()
	}
}

// Clear removes all samples and keeps the backing array.
func (b *Buffer[T]) Clear() {
	b.data = b.data[:0]
	b.start = 0
}

// Release drops the backing array.
func (b *Buffer[T]) Release() {
	b.data = nil
	b.start = 0
}

// reserve makes room for n more samples, compacting before growing.
func (b *Buffer[T]) reserve(n int) {
	if len(b.data)+n <= cap(b.data) {
		return
	}
	if b.start > 0 && b.Len()+n <= cap(b.data) {
		b.compact()
		return
	}

	// Calculate new capacity (double until sufficient)
	newCapacity := max(cap(b.data), defaultCapacity)
	for newCapacity < b.Len()+n {
		newCapacity *= bufferGrowthFactor
	}

	newData := make([]T, b.Len(), newCapacity)
	copy(newData, b.data[b.start:])
	b.data = newData
	b.start = 0
}

func (b *Buffer[T]) compact() {
	n := copy(b.data, b.data[b.start:])
	b.data = b.data[:n]
	b.start = 0
}
