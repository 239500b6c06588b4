package storage

// slot is the metadata of one cache position. When valid is false the slot
// is never dirty and its bytes are never read.
type slot struct {
	pageNum uint32
	dirty   bool
	valid   bool
}

// slotTable is the direct-mapped cache: CacheCapacity slots backed by one
// contiguous buffer.
type slotTable struct {
	buf   []byte
	slots [CacheCapacity]slot
}

func newSlotTable() *slotTable {
	return &slotTable{buf: make([]byte, CacheSize)}
}

// slotIndex maps a page number to its only candidate slot.
func slotIndex(pageNum uint32) int {
	return int(pageNum % CacheCapacity)
}

// bytes returns the live region of slot idx. Callers inside the pager must
// copy out of it; it is never handed to users.
func (t *slotTable) bytes(idx int) []byte {
	off := idx * PageSize
	return t.buf[off : off+PageSize : off+PageSize]
}

// holds reports whether slot idx currently caches pageNum.
func (t *slotTable) holds(idx int, pageNum uint32) bool {
	s := &t.slots[idx]
	return s.valid && s.pageNum == pageNum
}

func (t *slotTable) fill(idx int, pageNum uint32) {
	t.slots[idx] = slot{pageNum: pageNum, valid: true}
}

// invalidate drops the slot. pageNum is left stale on purpose.
func (t *slotTable) invalidate(idx int) {
	t.slots[idx].valid = false
	t.slots[idx].dirty = false
}

// resident returns the number of valid slots.
func (t *slotTable) resident() int {
	n := 0
	for i := range t.slots {
		if t.slots[i].valid {
			n++
		}
	}
	return n
}
