package navigation

// openSet is an indexed binary min-heap of arena indices ordered by (f, seq)
// seq is assigned once on first insertion, so equal f pops in insertion order
// Each node records its heap slot, which makes decrease-key O(log n)
type openSet struct {
	items []int32
	nodes []node
}

func (h *openSet) reset(nodes []node) {
	h.items = h.items[:0]
	h.nodes = nodes
}

func (h *openSet) len() int {
	return len(h.items)
}

func (h *openSet) less(i, j int) bool {
	a, b := &h.nodes[h.items[i]], &h.nodes[h.items[j]]
	if a.f != b.f {
		return a.f < b.f
	}
	return a.seq < b.seq
}

func (h *openSet) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.nodes[h.items[i]].heapIdx = int32(i)
	h.nodes[h.items[j]].heapIdx = int32(j)
}

func (h *openSet) push(idx int32) {
	h.items = append(h.items, idx)
	i := len(h.items) - 1
	h.nodes[idx].heapIdx = int32(i)
	h.up(i)
}

func (h *openSet) pop() int32 {
	n := len(h.items) - 1
	top := h.items[0]
	h.swap(0, n)
	h.items = h.items[:n]
	h.nodes[top].heapIdx = -1
	if n > 0 {
		h.down(0)
	}
	return top
}

// decreased restores heap order after the node's f dropped
func (h *openSet) decreased(idx int32) {
	h.up(int(h.nodes[idx].heapIdx))
}

// Sift up
func (h *openSet) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			break
		}
		h.swap(i, parent)
		i = parent
	}
}

// Sift down
func (h *openSet) down(i int) {
	n := len(h.items)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		smallest := left
		if right := left + 1; right < n && h.less(right, left) {
			smallest = right
		}
		if !h.less(smallest, i) {
			break
		}
		h.swap(i, smallest)
		i = smallest
	}
}
