package storage

import (
	"errors"
)

const (
	OneB  = 1 << 0  // 1
	OneKB = 1 << 10 // 1,024

	PageSize      = 4 * OneKB                // 4,096 (4 KiB)
	CacheCapacity = 100                      // slots
	CacheSize     = PageSize * CacheCapacity // 409,600
)

const (
	FileMode0644 = 0o644
	FileMode0664 = 0o664
	FileMode0755 = 0o755
)

var (
	ErrOpen        = errors.New("storage: cannot open backing file")
	ErrOutOfRange  = errors.New("storage: page number out of range")
	ErrStorageIO   = errors.New("storage: I/O error")
	ErrPagerClosed = errors.New("storage: pager is closed")
	ErrFileExists  = errors.New("storage: backing file already exists")
)
