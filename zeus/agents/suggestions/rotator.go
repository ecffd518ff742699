package suggestions

// WindowSize is the number of suggestions shown at once.
const WindowSize = 4

// Rotator is a ring over the suggestion pool. It is not safe for concurrent
// use; the owning session serialises access.
type Rotator struct {
	queue []string
}

func NewRotator(pool []string) *Rotator {
	r := &Rotator{}
	r.Reset(pool)
	return r
}

// Reset replaces the pool; the window becomes its first WindowSize entries.
func (r *Rotator) Reset(pool []string) {
	r.queue = append([]string(nil), pool...)
}

// Rotate moves the first WindowSize entries to the tail. Pools that fit in a
// single window are left alone.
func (r *Rotator) Rotate() {
	if len(r.queue) <= WindowSize {
		return
	}
	next := make([]string, 0, len(r.queue))
	next = append(next, r.queue[WindowSize:]...)
	next = append(next, r.queue[:WindowSize]...)
	r.queue = next
}

// Window is the visible slice of the pool.
func (r *Rotator) Window() []string {
	return r.Peek(WindowSize)
}

// Peek returns the first min(n, len(pool)) entries of the current pool.
func (r *Rotator) Peek(n int) []string {
	if n > len(r.queue) {
		n = len(r.queue)
	}
	if n <= 0 {
		return []string{}
	}
	return append([]string(nil), r.queue[:n]...)
}

// Pool returns a copy of the pool in its current order.
func (r *Rotator) Pool() []string {
	return append([]string(nil), r.queue...)
}

func (r *Rotator) Len() int {
	return len(r.queue)
}
