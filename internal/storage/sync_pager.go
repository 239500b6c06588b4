package storage

import "sync"

// SyncPager serializes every call to a Pager behind one mutex.
type SyncPager struct {
	mu sync.Mutex
	p  *Pager
}

func NewSyncPager(p *Pager) *SyncPager {
	return &SyncPager{p: p}
}

func (s *SyncPager) GetPage(pageNum uint32) (*Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.GetPage(pageNum)
}

func (s *SyncPager) WritePage(page *Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.WritePage(page)
}

func (s *SyncPager) Flush(pageNum uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Flush(pageNum)
}

func (s *SyncPager) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Stats()
}

func (s *SyncPager) NumPages() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.NumPages()
}

func (s *SyncPager) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Close()
}
