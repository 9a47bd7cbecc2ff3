package frame

// Retention is how far back, in seconds, a Window keeps timestamps.
const Retention = 1.0

// Window holds the frame timestamps of the trailing second. Its length is the
// frame rate over that second.
//
// The zero value is ready to use.
type Window struct {
	stamps []float64
	head   int
}

// Append records a frame at timestamp and drops every retained timestamp
// older than timestamp-Retention. Timestamps must be non-decreasing.
func (w *Window) Append(timestamp float64) {
	w.stamps = append(w.stamps, timestamp)

	cutoff := timestamp - Retention
	for w.head < len(w.stamps) && w.stamps[w.head] < cutoff {
		w.head++
	}

	// compact once the evicted prefix is at least half the backing slice
	if w.head > 0 && w.head*2 >= len(w.stamps) {
		n := copy(w.stamps, w.stamps[w.head:])
		w.stamps = w.stamps[:n]
		w.head = 0
	}
}

func (w *Window) Count() int {
	return len(w.stamps) - w.head
}

func (w *Window) Reset() {
	w.stamps = w.stamps[:0]
	w.head = 0
}
