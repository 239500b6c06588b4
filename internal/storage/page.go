package storage

import (
	"fmt"

	"github.com/OneOfOne/xxhash"
)

// Page is a detached snapshot of one logical page. It is never a view into
// the pager's cache: changing Data has no effect until the page is handed
// back to WritePage with Dirty set.
type Page struct {
	Number uint32
	Dirty  bool
	Data   [PageSize]byte
}

// Fill sets every byte of the page to b and marks it dirty.
func (p *Page) Fill(b byte) {
	for i := range p.Data {
		p.Data[i] = b
	}
	p.Dirty = true
}

// Offset is the byte position of the page in the backing file.
func (p *Page) Offset() int64 {
	return pageOffset(p.Number)
}

// Digest is the xxhash64 of the page bytes.
func (p *Page) Digest() uint64 {
	return xxhash.Checksum64(p.Data[:])
}

func (p *Page) String() string {
	return fmt.Sprintf("page{number=%d dirty=%v}", p.Number, p.Dirty)
}

func pageOffset(pageNum uint32) int64 {
	return int64(pageNum) * PageSize
}
