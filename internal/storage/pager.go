package storage

import (
	"fmt"
	"log/slog"
)

// Pager mediates all access to a page file through a fixed, direct-mapped
// cache of CacheCapacity slots.
//
// A Pager is not safe for concurrent use. Wrap it in a SyncPager or confine
// it to one goroutine.
type Pager struct {
	store    *FileStore
	cache    *slotTable
	numPages uint32
	stats    Stats
	log      *slog.Logger
	closed   bool
}

// Stats are process-lifetime counters of a Pager.
type Stats struct {
	Hits       uint64 // GetPage served from a slot that already held the page
	Misses     uint64 // GetPage that had to read the backing file
	Evictions  uint64 // valid slots displaced by a different page
	WriteBacks uint64 // dirty slots persisted on eviction
}

type Option func(*Pager)

// WithLogger sets the logger used for debug tracing of slot traffic.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pager) {
		if l != nil {
			p.log = l
		}
	}
}

// Open opens an existing page file. The page count is fixed at
// ceil(size/PageSize) for the lifetime of the Pager.
func Open(path string, opts ...Option) (*Pager, error) {
	store, err := OpenFileStore(path)
	if err != nil {
		return nil, err
	}

	size, err := store.Size()
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	p := &Pager{
		store:    store,
		cache:    newSlotTable(),
		numPages: uint32((size + PageSize - 1) / PageSize),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.log.Debug("pager: open", "path", path, "size", size, "pages", p.numPages)
	return p, nil
}

// GetPage returns an independent copy of page pageNum, loading it into its
// slot first when needed. The returned page is never dirty.
func (p *Pager) GetPage(pageNum uint32) (*Page, error) {
	if p.closed {
		return nil, ErrPagerClosed
	}
	if pageNum >= p.numPages {
		return nil, fmt.Errorf("%w: %d (pages=%d)", ErrOutOfRange, pageNum, p.numPages)
	}

	idx := slotIndex(pageNum)
	s := &p.cache.slots[idx]

	if s.valid && s.pageNum != pageNum {
		if err := p.evict(idx); err != nil {
			return nil, err
		}
	}

	if !s.valid {
		if err := p.store.ReadPage(pageNum, p.cache.bytes(idx)); err != nil {
			return nil, err
		}
		p.cache.fill(idx, pageNum)
		p.stats.Misses++
		p.log.Debug("pager: load", "page", pageNum, "slot", idx)
	} else {
		p.stats.Hits++
	}

	page := &Page{Number: pageNum}
	copy(page.Data[:], p.cache.bytes(idx))
	return page, nil
}

// WritePage copies a dirty page into its slot and persists it immediately.
// A clean page is a no-op. The page count is not changed, even when the page
// lies past the end of the file.
func (p *Pager) WritePage(page *Page) error {
	if p.closed {
		return ErrPagerClosed
	}
	if page == nil || !page.Dirty {
		return nil
	}

	idx := slotIndex(page.Number)
	s := &p.cache.slots[idx]

	// Another page owns the slot: give it its write-back before reuse.
	if s.valid && s.pageNum != page.Number {
		if err := p.evict(idx); err != nil {
			return err
		}
	}

	buf := p.cache.bytes(idx)
	copy(buf, page.Data[:])
	p.cache.fill(idx, page.Number)

	if err := p.store.WritePage(page.Number, buf); err != nil {
		// The slot now differs from disk.
		s.dirty = true
		return err
	}
	p.log.Debug("pager: write", "page", page.Number, "slot", idx)
	return nil
}

// Flush writes the cached bytes of pageNum to the backing file and syncs it.
// Page numbers at or past the page count are ignored. When the slot does not
// hold pageNum nothing is written, but the file is still synced.
func (p *Pager) Flush(pageNum uint32) error {
	if p.closed {
		return ErrPagerClosed
	}
	if pageNum >= p.numPages {
		return nil
	}

	idx := slotIndex(pageNum)
	if p.cache.holds(idx, pageNum) {
		if err := p.store.WritePage(pageNum, p.cache.bytes(idx)); err != nil {
			return err
		}
		p.cache.slots[idx].dirty = false
		p.log.Debug("pager: flush", "page", pageNum, "slot", idx)
	} else {
		p.log.Debug("pager: flush skipped, page not resident", "page", pageNum, "slot", idx)
	}

	return p.store.Sync()
}

// evict empties slot idx, writing its bytes back to the page it holds when
// the slot is dirty.
func (p *Pager) evict(idx int) error {
	s := &p.cache.slots[idx]
	if s.valid && s.dirty {
		if err := p.store.WritePage(s.pageNum, p.cache.bytes(idx)); err != nil {
			return err
		}
		p.stats.WriteBacks++
		p.log.Debug("pager: write-back", "page", s.pageNum, "slot", idx)
	}
	if s.valid {
		p.stats.Evictions++
		p.log.Debug("pager: evict", "page", s.pageNum, "slot", idx)
	}
	p.cache.invalidate(idx)
	return nil
}

// Close releases the backing file. Dirty slots are not flushed.
func (p *Pager) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	return p.store.Close()
}

func (p *Pager) NumPages() uint32 { return p.numPages }

func (p *Pager) CacheHits() uint64 { return p.stats.Hits }

func (p *Pager) Stats() Stats { return p.stats }

// Resident returns how many slots currently hold a page.
func (p *Pager) Resident() int { return p.cache.resident() }

func (p *Pager) Path() string { return p.store.Path() }
