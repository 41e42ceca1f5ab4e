package vicsek

import "github.com/SebastianHodge/Vicsek-Simulation-of-Collective-Motion-of-Populations-of-Organisms/pkg/geometry"

// History is a fixed-capacity FIFO of past positions.
// The backing array holds MaxTrailLength points so pushes never allocate;
// the live cap is the limit passed to Push.
type History struct {
	buf   [MaxTrailLength]geometry.Vector2D
	start int
	n     int
}

// Len returns the number of stored points.
func (h *History) Len() int {
	return h.n
}

// At returns the i-th point, 0 being the oldest.
func (h *History) At(i int) geometry.Vector2D {
	if i < 0 || i >= h.n {
		panic("vicsek: history index out of range")
	}
	return h.buf[(h.start+i)%MaxTrailLength]
}

// Push appends p and evicts the oldest points until at most limit remain.
// A limit of zero or less empties the history.
func (h *History) Push(p geometry.Vector2D, limit int) {
	if limit <= 0 {
		h.Clear()
		return
	}
	limit = min(limit, MaxTrailLength)
	h.Trim(limit - 1)
	h.buf[(h.start+h.n)%MaxTrailLength] = p
	h.n++
}

// Trim evicts the oldest points until at most limit remain.
func (h *History) Trim(limit int) {
	limit = max(limit, 0)
	if h.n <= limit {
		return
	}
	drop := h.n - limit
	h.start = (h.start + drop) % MaxTrailLength
	h.n = limit
}

// Clear drops every point.
func (h *History) Clear() {
	h.start, h.n = 0, 0
}

// AppendTo appends the points oldest first to dst.
func (h *History) AppendTo(dst []geometry.Vector2D) []geometry.Vector2D {
	for i := 0; i < h.n; i++ {
		dst = append(dst, h.buf[(h.start+i)%MaxTrailLength])
	}
	return dst
}

// Points returns a copy of the points, oldest first.
func (h *History) Points() []geometry.Vector2D {
	return h.AppendTo(make([]geometry.Vector2D, 0, h.n))
}
