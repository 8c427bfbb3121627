package util

import "sync/atomic"

// SafeCounter is a counter that can be read from another goroutine while a
// carving run updates it.
type SafeCounter struct {
	value atomic.Int64
}

// NewSafeCounter creates a counter starting at zero.
func NewSafeCounter() *SafeCounter {
	return &SafeCounter{}
}

// Increment adds one and returns the new value.
func (sc *SafeCounter) Increment() int {
	return int(sc.value.Add(1))
}

// Add adds delta and returns the new value.
func (sc *SafeCounter) Add(delta int) int {
	return int(sc.value.Add(int64(delta)))
}

// Reset sets the counter back to zero.
func (sc *SafeCounter) Reset() {
	sc.value.Store(0)
}

// Value returns the current value.
func (sc *SafeCounter) Value() int {
	return int(sc.value.Load())
}

// SafeFlag is a boolean that is polled by a long-running loop and raised by
// another goroutine.
type SafeFlag struct {
	value atomic.Bool
}

// NewSafeFlag creates a lowered flag.
func NewSafeFlag() *SafeFlag {
	return &SafeFlag{}
}

// Raise sets the flag. It reports whether this call changed it.
func (sf *SafeFlag) Raise() bool {
	return sf.value.CompareAndSwap(false, true)
}

// Lower clears the flag.
func (sf *SafeFlag) Lower() {
	sf.value.Store(false)
}

// IsSet reports whether the flag is raised.
func (sf *SafeFlag) IsSet() bool {
	return sf.value.Load()
}
